//go:build !varwidth_debug

package byteutil

// 默认构建下不做任何前置条件检查，这些函数会被内联为空。

func assertWidth(int) {}

func assertOffset([]byte, uint32) {}

func assertCapacity([]uint64, int) {}
