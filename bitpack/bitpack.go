// Package bitpack 将固定位宽的整数紧凑地打包进 []uint64 字流中，低位优先。
package bitpack

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/xmh1011/go-varwidth/byteutil"
)

const wordBits = 64

var (
	ErrInvalidBitWidth = errors.New("bitpack: bit width out of range [1, 64]")
	ErrShortBuffer     = errors.New("bitpack: source too short")
)

// WordCount 返回 count 个 bitWidth 位的值打包后占用的字数
func WordCount(count, bitWidth int) int {
	return (count*bitWidth + wordBits - 1) / wordBits
}

// MaxBits 返回能够表示 src 中所有值的最小位宽，src 全为 0 时返回 0。
func MaxBits(src []uint64) int {
	var or uint64
	for _, v := range src {
		or |= v
	}
	return bits.Len64(or)
}

func lowMask(bitWidth int) uint64 {
	if bitWidth >= wordBits {
		return ^uint64(0)
	}
	return uint64(1)<<uint(bitWidth) - 1
}

// Pack 将 src 中每个值的低 bitWidth 位依次写入字流并追加到 dst。
// 所需容量一次性预留，循环内部不再检查容量。
func Pack(dst, src []uint64, bitWidth int) ([]uint64, error) {
	if bitWidth < 1 || bitWidth > wordBits {
		return dst, fmt.Errorf("%w: %d", ErrInvalidBitWidth, bitWidth)
	}
	dst = byteutil.Reserve(dst, WordCount(len(src), bitWidth))

	var (
		mask  = lowMask(bitWidth)
		width = uint(bitWidth)
		word  uint64
		used  uint
	)
	for _, v := range src {
		v &= mask
		word |= v << used
		used += width
		if used >= wordBits {
			dst = byteutil.AppendUint64Unchecked(dst, word)
			used -= wordBits
			// v 中没能放进上一个字的高位部分
			word = 0
			if used > 0 {
				word = v >> (width - used)
			}
		}
	}
	if used > 0 {
		dst = byteutil.AppendUint64Unchecked(dst, word)
	}
	return dst, nil
}

// Unpack 从 src 中解出 count 个 bitWidth 位的值并追加到 dst。
func Unpack(dst, src []uint64, bitWidth, count int) ([]uint64, error) {
	if bitWidth < 1 || bitWidth > wordBits {
		return dst, fmt.Errorf("%w: %d", ErrInvalidBitWidth, bitWidth)
	}
	if need := WordCount(count, bitWidth); len(src) < need {
		return dst, fmt.Errorf("%w: need %d words, have %d", ErrShortBuffer, need, len(src))
	}
	dst = byteutil.Reserve(dst, count)

	mask := lowMask(bitWidth)
	width := uint(bitWidth)
	var pos uint
	for i := 0; i < count; i++ {
		idx := pos / wordBits
		off := pos % wordBits
		v := src[idx] >> off
		if off+width > wordBits {
			v |= src[idx+1] << (wordBits - off)
		}
		dst = byteutil.AppendUint64Unchecked(dst, v&mask)
		pos += width
	}
	return dst, nil
}

// Fill 向 dst 追加 n 个 value，每 8 个为一组批量写入。
func Fill(dst []uint64, value uint64, n int) []uint64 {
	for ; n >= 8; n -= 8 {
		dst = byteutil.Append8Uint64(dst, value)
	}
	if n <= 0 {
		return dst
	}
	dst = byteutil.Reserve(dst, n)
	for ; n > 0; n-- {
		dst = byteutil.AppendUint64Unchecked(dst, value)
	}
	return dst
}
