/*
Footer structure:
┌───────────────────────────┬─────────────┐
│ Checksum (murmur3 Sum64)  │ MagicNumber │
├───────────────────────────┼─────────────┤
│          8 字节            │    8 字节    │
└───────────────────────────┴─────────────┘
*/

package column

import (
	"fmt"

	"github.com/twmb/murmur3"

	"github.com/xmh1011/go-varwidth/byteutil"
	"github.com/xmh1011/go-varwidth/log"
)

const (
	footerSize  = 16
	magicNumber = uint64(0x6874646977726176) // "varwidth" 按小端写入
)

// Footer 位于列块末尾，记录前面全部字节的校验和以及 magic number。
type Footer struct {
	Checksum    uint64
	MagicNumber uint64
}

func newFooter(payload []byte) Footer {
	return Footer{
		Checksum:    murmur3.Sum64(payload),
		MagicNumber: magicNumber,
	}
}

// AppendTo 将 Footer 以固定 16 字节追加到 buf
func (f *Footer) AppendTo(buf []byte) []byte {
	buf = byteutil.WriteUintLE(buf, f.Checksum, 8)
	return byteutil.WriteUintLE(buf, f.MagicNumber, 8)
}

// DecodeFrom 从 data 的最后 16 字节解析 Footer
func (f *Footer) DecodeFrom(data []byte) error {
	if len(data) < footerSize {
		log.Errorf("block too small to contain footer: %d bytes", len(data))
		return fmt.Errorf("%w: %d bytes, need at least %d", ErrCorrupted, len(data), footerSize)
	}

	start := uint32(len(data) - footerSize)
	f.Checksum = byteutil.ReadUintLE(data, start)
	f.MagicNumber = byteutil.ReadUintLE(data, start+8)
	if f.MagicNumber != magicNumber {
		log.Errorf("bad magic number: %#x", f.MagicNumber)
		return fmt.Errorf("%w: %#x", ErrBadMagic, f.MagicNumber)
	}
	return nil
}

// Verify 校验 payload 的 murmur3 摘要
func (f *Footer) Verify(payload []byte) error {
	if sum := murmur3.Sum64(payload); sum != f.Checksum {
		log.Errorf("checksum mismatch: stored %#x, computed %#x", f.Checksum, sum)
		return fmt.Errorf("%w: stored %#x, computed %#x", ErrChecksumMismatch, f.Checksum, sum)
	}
	return nil
}
