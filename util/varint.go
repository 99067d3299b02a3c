// uvarint 用于列块头部的计数和长度字段，小整数只占 1 个字节。

package util

import (
	"encoding/binary"
	"errors"
)

var (
	ErrBufferTooSmall = errors.New("uvarint: buffer too small")
	ErrValueTooLarge  = errors.New("uvarint: value overflows uint64")
)

// AppendUvarint 将 x 以 uvarint 编码追加到 buf
func AppendUvarint(buf []byte, x uint64) []byte {
	return binary.AppendUvarint(buf, x)
}

// ReadUvarint 从 buf[offset:] 解码一个 uvarint，返回值和读取的字节数。
func ReadUvarint(buf []byte, offset int) (uint64, int, error) {
	if offset < 0 || offset > len(buf) {
		return 0, 0, ErrBufferTooSmall
	}
	x, n := binary.Uvarint(buf[offset:])
	if n > 0 {
		return x, n, nil
	}
	if n == 0 {
		return 0, 0, ErrBufferTooSmall
	}
	return 0, 0, ErrValueTooLarge
}

// UvarintLen 返回 x 编码后的字节数
func UvarintLen(x uint64) int {
	n := 1
	for x >= 0x80 {
		x >>= 7
		n++
	}
	return n
}
