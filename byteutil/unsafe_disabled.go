//go:build !(amd64 || arm64 || ppc64le || riscv64) || purego || nounsafe

package byteutil

import "encoding/binary"

func load64(b []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(b[i:])
}

// AppendUint64Unchecked 把 value 写到 buf[len(buf)] 并将 len 加 1，不扩充容量。
//
// Precondition: cap(buf) >= len(buf)+1。
// 在不使用 unsafe 的构建中，违反前置条件会触发切片越界 panic。
func AppendUint64Unchecked(buf []uint64, value uint64) []uint64 {
	assertCapacity(buf, 1)
	n := len(buf)
	buf = buf[:n+1]
	buf[n] = value
	return buf
}

func append8Unchecked(buf []uint64, value uint64) []uint64 {
	assertCapacity(buf, 8)
	n := len(buf)
	buf = buf[:n+8]
	tail := buf[n:]
	_ = tail[7] // bounds check hint to compiler; see golang.org/issue/14808
	for i := range tail {
		tail[i] = value
	}
	return buf
}
