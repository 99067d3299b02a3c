/*
Column block layout:
┌─────────┬──────────────────┬───────────────────┬─────────────────┬─────────┐
│ count   │ zero bitmap      │ width words       │ value bytes     │ Footer  │
│ uvarint │ uvarint len+data │ uvarint n + n*8 B │ uvarint len+data│ 16 字节  │
└─────────┴──────────────────┴───────────────────┴─────────────────┴─────────┘
*/

package column

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"

	"github.com/xmh1011/go-varwidth/bitpack"
	"github.com/xmh1011/go-varwidth/byteutil"
	"github.com/xmh1011/go-varwidth/config"
	"github.com/xmh1011/go-varwidth/log"
	"github.com/xmh1011/go-varwidth/util"
)

// 宽度取值 1~8，存储 width-1 只需要 3 位
const widthBits = 3

var (
	ErrBlockFull        = errors.New("column: block is full")
	ErrCorrupted        = errors.New("column: corrupted block")
	ErrBadMagic         = errors.New("column: bad magic number")
	ErrChecksumMismatch = errors.New("column: checksum mismatch")
)

// Block 是一组 uint64 值的列式存储单元。
// 0 值只在位图中占 1 位；其余值按最小宽度写入，宽度作为并行数组单独按 3 位打包。
type Block struct {
	values    []uint64
	maxValues int
}

// NewBlock 创建一个容量上限取自配置的空列块
func NewBlock() *Block {
	return NewBlockWithLimit(config.GetMaxBlockValues())
}

func NewBlockWithLimit(maxValues int) *Block {
	return &Block{
		values:    make([]uint64, 0),
		maxValues: maxValues,
	}
}

// Append 追加一个值，超过上限时返回 ErrBlockFull
func (b *Block) Append(v uint64) error {
	if !b.CanAppend() {
		return fmt.Errorf("%w: %d values", ErrBlockFull, b.maxValues)
	}
	b.values = append(b.values, v)
	return nil
}

func (b *Block) CanAppend() bool {
	return b.maxValues <= 0 || len(b.values) < b.maxValues
}

func (b *Block) Len() int {
	return len(b.values)
}

// Values 返回内部切片，调用方不应修改
func (b *Block) Values() []uint64 {
	return b.values
}

// Reset 清空列块以便复用
func (b *Block) Reset() {
	b.values = b.values[:0]
}

// EstimateSize 估算编码后的字节数
func (b *Block) EstimateSize() int {
	size := footerSize + util.UvarintLen(uint64(len(b.values)))
	size += 8 + (len(b.values)+63)/64*8 + 2 // bitmap
	nonZero, valueBytes := 0, 0
	for _, v := range b.values {
		if v != 0 {
			nonZero++
			valueBytes += byteutil.WidthOf(v)
		}
	}
	size += 2 + bitpack.WordCount(nonZero, widthBits)*8
	size += util.UvarintLen(uint64(valueBytes)) + valueBytes
	return size
}

// Encode 将列块编码为字节序列
func (b *Block) Encode() ([]byte, error) {
	count := len(b.values)
	zeros := bitset.New(uint(count))
	widths := make([]uint64, 0, count)
	var data []byte
	for i, v := range b.values {
		if v == 0 {
			zeros.Set(uint(i))
			continue
		}
		w := byteutil.WidthOf(v)
		widths = append(widths, uint64(w-1))
		data = byteutil.WriteUintLE(data, v, w)
	}

	bitmap, err := zeros.MarshalBinary()
	if err != nil {
		log.Errorf("marshal zero bitmap failed: %s", err.Error())
		return nil, fmt.Errorf("marshal zero bitmap: %w", err)
	}
	widthWords, err := bitpack.Pack(nil, widths, widthBits)
	if err != nil {
		return nil, fmt.Errorf("pack widths: %w", err)
	}

	buf := make([]byte, 0, b.EstimateSize())
	buf = util.AppendUvarint(buf, uint64(count))
	buf = util.AppendUvarint(buf, uint64(len(bitmap)))
	buf = append(buf, bitmap...)
	buf = util.AppendUvarint(buf, uint64(len(widthWords)))
	for _, word := range widthWords {
		buf = byteutil.WriteUintLE(buf, word, 8)
	}
	buf = util.AppendUvarint(buf, uint64(len(data)))
	buf = append(buf, data...)

	footer := newFooter(buf)
	return footer.AppendTo(buf), nil
}

// EncodeTo 将编码结果写入 w，返回写入的字节数
func (b *Block) EncodeTo(w io.Writer) (int64, error) {
	data, err := b.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		log.Errorf("write column block failed: %s", err.Error())
		return int64(n), fmt.Errorf("write column block: %w", err)
	}
	return int64(n), nil
}

// DecodeFrom 读取 r 中的全部内容并解码
func (b *Block) DecodeFrom(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		log.Errorf("read column block failed: %s", err.Error())
		return fmt.Errorf("read column block: %w", err)
	}
	return b.Decode(data)
}

// Decode 校验并解码一个完整的列块，成功后替换当前内容
func (b *Block) Decode(data []byte) error {
	var footer Footer
	if err := footer.DecodeFrom(data); err != nil {
		return err
	}
	payload := data[:len(data)-footerSize]
	if err := footer.Verify(payload); err != nil {
		return err
	}

	d := decoder{buf: payload}
	count := d.uvarint("count")

	bitmap := d.bytes("zero bitmap")
	zeros := &bitset.BitSet{}
	if d.err == nil {
		if err := checkBitmapHeader(bitmap, count); err != nil {
			d.fail("zero bitmap: %s", err.Error())
		} else if err := zeros.UnmarshalBinary(bitmap); err != nil {
			d.fail("zero bitmap: %s", err.Error())
		} else if uint64(zeros.Len()) != count {
			d.fail("zero bitmap covers %d values, header says %d", zeros.Len(), count)
		}
	}

	numWords := d.uvarint("width words")
	if d.err == nil && numWords > uint64(len(payload)-d.off)/8 {
		d.fail("width words: %d words exceed remaining %d bytes", numWords, len(payload)-d.off)
	}
	var widthWords []uint64
	if d.err == nil {
		widthWords = byteutil.Reserve(nil, int(numWords))
		for i := uint64(0); i < numWords; i++ {
			widthWords = byteutil.AppendUint64Unchecked(widthWords, byteutil.ReadUintLE(payload, uint32(d.off)))
			d.off += 8
		}
	}

	valueBytes := d.bytes("value bytes")
	if d.err == nil && d.off != len(payload) {
		d.fail("%d trailing bytes", len(payload)-d.off)
	}
	if d.err != nil {
		log.Errorf("decode column block failed: %s", d.err.Error())
		return d.err
	}

	nonZero := int(count) - int(zeros.Count())
	if nonZero < 0 {
		log.Errorf("zero bitmap has %d set bits for %d values", zeros.Count(), count)
		return fmt.Errorf("%w: zero bitmap has %d set bits for %d values", ErrCorrupted, zeros.Count(), count)
	}
	widths, err := bitpack.Unpack(nil, widthWords, widthBits, nonZero)
	if err != nil {
		log.Errorf("unpack widths failed: %s", err.Error())
		return fmt.Errorf("%w: unpack widths: %w", ErrCorrupted, err)
	}

	values, err := decodeValues(int(count), zeros, widths, valueBytes)
	if err != nil {
		log.Errorf("decode values failed: %s", err.Error())
		return err
	}
	b.values = values
	return nil
}

// checkBitmapHeader 在交给 bitset 解码前校验长度前缀和总字节数，
// 避免按伪造的长度分配内存。bitset 默认以大端写入长度和各个字。
func checkBitmapHeader(bitmap []byte, count uint64) error {
	words := count / 64
	if count%64 != 0 {
		words++
	}
	if uint64(len(bitmap)) < 8 || (uint64(len(bitmap))-8)/8 != words || (uint64(len(bitmap))-8)%8 != 0 {
		return fmt.Errorf("%d bytes cannot hold %d bits", len(bitmap), count)
	}
	if n := binary.BigEndian.Uint64(bitmap[:8]); n != count {
		return fmt.Errorf("length prefix %d, header says %d", n, count)
	}
	return nil
}

// decodeValues 按位图和宽度数组还原原始值，连续的 0 批量填充。
func decodeValues(count int, zeros *bitset.BitSet, widths []uint64, data []byte) ([]uint64, error) {
	values := byteutil.Reserve(nil, count)
	var offset, k int
	for i := 0; i < count; {
		if zeros.Test(uint(i)) {
			next, ok := zeros.NextClear(uint(i))
			end := count
			if ok && int(next) < count {
				end = int(next)
			}
			values = bitpack.Fill(values, 0, end-i)
			i = end
			continue
		}

		if k >= len(widths) {
			return nil, fmt.Errorf("%w: more non-zero values than widths", ErrCorrupted)
		}
		w := int(widths[k]) + 1
		if offset+w > len(data) {
			return nil, fmt.Errorf("%w: value %d needs %d bytes at offset %d, have %d", ErrCorrupted, i, w, offset, len(data))
		}
		v := byteutil.ReadUintLEWidth(data, uint32(offset), w)
		values = byteutil.AppendUint64Unchecked(values, v)
		offset += w
		k++
		i++
	}
	if offset != len(data) {
		return nil, fmt.Errorf("%w: %d unused value bytes", ErrCorrupted, len(data)-offset)
	}
	return values, nil
}

// decoder 顺序读取列块头部字段，遇到第一个错误后停止
type decoder struct {
	buf []byte
	off int
	err error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s", ErrCorrupted, fmt.Sprintf(format, args...))
	}
}

func (d *decoder) uvarint(field string) uint64 {
	if d.err != nil {
		return 0
	}
	x, n, err := util.ReadUvarint(d.buf, d.off)
	if err != nil {
		d.fail("%s: %s", field, err.Error())
		return 0
	}
	d.off += n
	return x
}

func (d *decoder) bytes(field string) []byte {
	n := d.uvarint(field)
	if d.err != nil {
		return nil
	}
	if n > uint64(len(d.buf)-d.off) {
		d.fail("%s: length %d exceeds remaining %d bytes", field, n, len(d.buf)-d.off)
		return nil
	}
	b := d.buf[d.off : d.off+int(n)]
	d.off += int(n)
	return b
}
