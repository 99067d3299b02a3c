package byteutil

import (
	"encoding/binary"
	"testing"
)

func BenchmarkWriteUintLE(b *testing.B) {
	buf := make([]byte, 0, 8*1024)
	for n := 0; n < b.N; n++ {
		if len(buf) > 7*1024 {
			buf = buf[:0]
		}
		buf = WriteUintLE(buf, uint64(n), n%MaxWidth+1)
	}
}

// 逐字节写入作为对照
func BenchmarkWriteUintLEBytewise(b *testing.B) {
	buf := make([]byte, 0, 8*1024)
	for n := 0; n < b.N; n++ {
		if len(buf) > 7*1024 {
			buf = buf[:0]
		}
		x := uint64(n)
		for i := 0; i < n%MaxWidth+1; i++ {
			buf = append(buf, byte(x))
			x >>= 8
		}
	}
}

func BenchmarkReadUintLE(b *testing.B) {
	buf := make([]byte, 4096)
	binary.LittleEndian.PutUint64(buf, 0x0102030405060708)
	var sink uint64
	for n := 0; n < b.N; n++ {
		sink += ReadUintLE(buf, uint32(n&4095))
	}
	_ = sink
}

func BenchmarkAppendUint64Unchecked(b *testing.B) {
	buf := make([]uint64, 0, 1024)
	for n := 0; n < b.N; n++ {
		if len(buf) == cap(buf) {
			buf = buf[:0]
		}
		buf = AppendUint64Unchecked(buf, uint64(n))
	}
}

func BenchmarkAppend(b *testing.B) {
	buf := make([]uint64, 0, 1024)
	for n := 0; n < b.N; n++ {
		if len(buf) == cap(buf) {
			buf = buf[:0]
		}
		buf = append(buf, uint64(n))
	}
}

func BenchmarkAppend8Uint64(b *testing.B) {
	buf := make([]uint64, 0, 1024)
	for n := 0; n < b.N; n++ {
		if len(buf)+8 > cap(buf) {
			buf = buf[:0]
		}
		buf = Append8Uint64(buf, uint64(n))
	}
}
