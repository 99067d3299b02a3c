//go:build varwidth_debug

package byteutil

import "fmt"

// 使用 -tags varwidth_debug 构建时，不做检查的接口在违反前置条件时立即 panic。

func assertWidth(width int) {
	if width < 1 || width > MaxWidth {
		panic(fmt.Errorf("%w: %d", ErrInvalidWidth, width))
	}
}

func assertOffset(buf []byte, offset uint32) {
	if uint64(offset) > uint64(len(buf)) {
		panic(fmt.Errorf("%w: offset %d, len %d", ErrOffsetOutOfRange, offset, len(buf)))
	}
}

func assertCapacity(buf []uint64, n int) {
	if cap(buf)-len(buf) < n {
		panic(fmt.Errorf("byteutil: capacity violation: len %d, cap %d, need %d more", len(buf), cap(buf), n))
	}
}
