// Package byteutil 提供 uint64 的变长（1~8 字节，小端）读写，
// 以及 []uint64 的批量追加原语。
//
// 这里的函数分为两类：
//   - 自带检查的接口（WriteUintLEChecked、ReadUintLEChecked、AppendUint64、Append8Uint64），
//     任何输入都不会破坏内存；
//   - 不做检查的接口（WriteUintLE、ReadUintLE、AppendUint64Unchecked），
//     前置条件由调用方保证，违反时的行为未定义。
//
// 编码本身不携带宽度信息，调用方需要自行记录每个值使用的宽度。
package byteutil

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"slices"
)

// MaxWidth 是单个值最多占用的字节数
const MaxWidth = 8

var (
	ErrInvalidWidth      = errors.New("byteutil: width out of range [1, 8]")
	ErrValueOverflow     = errors.New("byteutil: value does not fit in width")
	ErrOffsetOutOfRange  = errors.New("byteutil: offset beyond buffer length")
	errNegativeReserveSz = errors.New("byteutil: negative reserve size")
)

// WriteUintLE 将 value 的低 width 个字节以小端序追加到 buf 末尾，返回新的切片。
// len 恰好增加 width；cap 之内 len 之后可能残留多写的字节，它们不属于逻辑内容。
//
// Precondition: 1 <= width <= 8
func WriteUintLE(buf []byte, value uint64, width int) []byte {
	assertWidth(width)
	if width == MaxWidth {
		return binary.LittleEndian.AppendUint64(buf, value)
	}
	n := len(buf)
	// 先整体写 8 字节，再截断到 n+width
	return binary.LittleEndian.AppendUint64(buf, value)[:n+width]
}

// ReadUintLE 从 buf[offset:] 读取一个小端 uint64。
// 剩余不足 8 字节时只读取剩余部分，高位补零，绝不会越过 len(buf)。
//
// Precondition: offset <= len(buf)，否则 panic
func ReadUintLE(buf []byte, offset uint32) uint64 {
	assertOffset(buf, offset)
	if uint64(offset)+MaxWidth <= uint64(len(buf)) {
		return load64(buf, int(offset))
	}
	return readTail(buf[offset:])
}

// readTail 读取不足 8 字节的尾部
func readTail(b []byte) uint64 {
	var x uint64
	for i := len(b) - 1; i >= 0; i-- {
		x <<= 8
		x |= uint64(b[i])
	}
	return x
}

// ReadUintLEWidth 读取 offset 处宽度为 width 的值，丢弃属于后续值的高位字节。
func ReadUintLEWidth(buf []byte, offset uint32, width int) uint64 {
	return ReadUintLE(buf, offset) & Mask(width)
}

// Append8Uint64 向 buf 追加 8 个 value。
// 容量由函数自己预留，因此任何 buf 都可以安全调用。
func Append8Uint64(buf []uint64, value uint64) []uint64 {
	buf = Reserve(buf, 8)
	return append8Unchecked(buf, value)
}

// AppendUint64 是 AppendUint64Unchecked 的安全版本：先预留 1 个位置再写入。
func AppendUint64(buf []uint64, value uint64) []uint64 {
	return AppendUint64Unchecked(Reserve(buf, 1), value)
}

// Reserve 保证 cap(buf) >= len(buf)+n，内容与 len 保持不变。
func Reserve(buf []uint64, n int) []uint64 {
	if n < 0 {
		panic(errNegativeReserveSz)
	}
	if cap(buf)-len(buf) >= n {
		return buf
	}
	return slices.Grow(buf, n)
}

// ReserveBytes 与 Reserve 相同，作用于 []byte
func ReserveBytes(buf []byte, n int) []byte {
	if n < 0 {
		panic(errNegativeReserveSz)
	}
	if cap(buf)-len(buf) >= n {
		return buf
	}
	return slices.Grow(buf, n)
}

// WriteUintLEChecked 在写入前校验 width 以及 value 是否能被 width 个字节表示。
func WriteUintLEChecked(buf []byte, value uint64, width int) ([]byte, error) {
	if width < 1 || width > MaxWidth {
		return buf, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if value&^Mask(width) != 0 {
		return buf, fmt.Errorf("%w: %#x in %d bytes", ErrValueOverflow, value, width)
	}
	return WriteUintLE(buf, value, width), nil
}

// ReadUintLEChecked 在 offset 越界时返回错误而不是 panic。
func ReadUintLEChecked(buf []byte, offset uint32) (uint64, error) {
	if uint64(offset) > uint64(len(buf)) {
		return 0, fmt.Errorf("%w: offset %d, len %d", ErrOffsetOutOfRange, offset, len(buf))
	}
	return ReadUintLE(buf, offset), nil
}

// WidthOf 返回表示 value 所需的最小字节数，0 也占 1 字节。
func WidthOf(value uint64) int {
	if value == 0 {
		return 1
	}
	return (bits.Len64(value) + 7) / 8
}

// Mask 返回低 width 个字节全为 1 的掩码。
func Mask(width int) uint64 {
	if width >= MaxWidth {
		return ^uint64(0)
	}
	return uint64(1)<<(8*uint(width)) - 1
}
