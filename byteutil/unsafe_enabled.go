//go:build (amd64 || arm64 || ppc64le || riscv64) && !purego && !nounsafe

package byteutil

import "unsafe"

// sliceHeader 与 runtime 中切片的内存布局一致
type sliceHeader struct {
	data unsafe.Pointer
	len  int
	cap  int
}

// load64 在小端架构上直接做一次非对齐的 8 字节读取。
// 调用方保证 i+8 <= len(b)。
func load64(b []byte, i int) uint64 {
	return *(*uint64)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(b)), i))
}

// AppendUint64Unchecked 把 value 写到 buf[len(buf)] 并将 len 加 1，不检查也不扩充容量。
//
// Precondition: cap(buf) >= len(buf)+1。
// 违反时会越界写入底层数组之后的内存，行为未定义。
// 适用于调用方已经通过 Reserve 一次性预留好总容量的编码循环。
func AppendUint64Unchecked(buf []uint64, value uint64) []uint64 {
	assertCapacity(buf, 1)
	h := (*sliceHeader)(unsafe.Pointer(&buf))
	*(*uint64)(unsafe.Add(h.data, uintptr(h.len)<<3)) = value
	h.len++
	return buf
}

// append8Unchecked 连续写入 8 个 value，最后一次性更新 len。
// 调用方保证 cap(buf) >= len(buf)+8。
func append8Unchecked(buf []uint64, value uint64) []uint64 {
	assertCapacity(buf, 8)
	h := (*sliceHeader)(unsafe.Pointer(&buf))
	p := unsafe.Add(h.data, uintptr(h.len)<<3)
	for i := uintptr(0); i < 8; i++ {
		*(*uint64)(unsafe.Add(p, i<<3)) = value
	}
	h.len += 8
	return buf
}
