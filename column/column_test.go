package column

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlockOf(t *testing.T, values []uint64) *Block {
	t.Helper()
	b := NewBlockWithLimit(0)
	for _, v := range values {
		require.NoError(t, b.Append(v))
	}
	return b
}

func TestBlock_EncodeDecode(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	random := make([]uint64, 500)
	for i := range random {
		// 让宽度分布覆盖 1~8
		random[i] = r.Uint64() >> (8 * uint(r.Intn(8)))
		if i%5 == 0 {
			random[i] = 0
		}
	}

	tests := []struct {
		name   string
		values []uint64
	}{
		{name: "empty", values: []uint64{}},
		{name: "single zero", values: []uint64{0}},
		{name: "all zeros", values: make([]uint64, 37)},
		{name: "no zeros", values: []uint64{1, 0xFF, 0x100, math.MaxUint32, math.MaxUint64}},
		{name: "mixed", values: []uint64{0, 0, 7, 0, 0x1234, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xAA, 0}},
		{name: "random", values: random},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := newBlockOf(t, tt.values)
			data, err := block.Encode()
			require.NoError(t, err)

			decoded := NewBlockWithLimit(0)
			require.NoError(t, decoded.Decode(data))
			assert.Equal(t, len(tt.values), decoded.Len())
			if len(tt.values) > 0 {
				assert.Equal(t, tt.values, decoded.Values())
			}
		})
	}
}

func TestBlock_ZerosAreCompact(t *testing.T) {
	sparse := newBlockOf(t, make([]uint64, 1000))
	data, err := sparse.Encode()
	require.NoError(t, err)
	// 1000 个 0 只占位图
	assert.Less(t, len(data), 200)

	dense := newBlockOf(t, []uint64{0x12, 0x3456, 0x789ABC})
	data, err = dense.Encode()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(data), dense.EstimateSize())
}

func TestBlock_EncodeToDecodeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.col")
	file, err := os.Create(path)
	require.NoError(t, err)

	values := []uint64{5, 0, 1 << 40, 0, 0, math.MaxUint64}
	block := newBlockOf(t, values)
	n, err := block.EncodeTo(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), n)

	readFile, err := os.Open(path)
	require.NoError(t, err)
	defer readFile.Close()

	decoded := NewBlockWithLimit(0)
	require.NoError(t, decoded.DecodeFrom(readFile))
	assert.Equal(t, values, decoded.Values())
}

func TestBlock_EncodeTo_WriterError(t *testing.T) {
	block := newBlockOf(t, []uint64{1})
	_, err := block.EncodeTo(&ErrorWriter{})
	assert.Error(t, err)
}

func TestBlock_DecodeFrom_ReaderError(t *testing.T) {
	err := NewBlock().DecodeFrom(&ErrorReader{})
	assert.Error(t, err)
}

func TestBlock_Decode_Corruption(t *testing.T) {
	block := newBlockOf(t, []uint64{1, 0, 300, 70000})
	data, err := block.Encode()
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{
			name:    "too short",
			mutate:  func(b []byte) []byte { return b[:footerSize-1] },
			wantErr: ErrCorrupted,
		},
		{
			name: "bad magic",
			mutate: func(b []byte) []byte {
				b[len(b)-1] ^= 0xFF
				return b
			},
			wantErr: ErrBadMagic,
		},
		{
			name: "flipped payload bit",
			mutate: func(b []byte) []byte {
				b[2] ^= 0x01
				return b
			},
			wantErr: ErrChecksumMismatch,
		},
		{
			name:    "truncated payload",
			mutate:  func(b []byte) []byte { return append(b[:3:3], b[len(b)-footerSize:]...) },
			wantErr: ErrChecksumMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corrupted := tt.mutate(bytes.Clone(data))
			err := NewBlockWithLimit(0).Decode(corrupted)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestBlock_Decode_MalformedWithValidChecksum(t *testing.T) {
	// 头部声明 3 个值但位图为空，校验和正确
	payload := []byte{3, 0, 0, 0}
	footer := newFooter(payload)
	data := footer.AppendTo(append([]byte(nil), payload...))

	err := NewBlockWithLimit(0).Decode(data)
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestBlock_Decode_BitmapLengthPrefix(t *testing.T) {
	withFooter := func(payload []byte) []byte {
		footer := newFooter(payload)
		return footer.AppendTo(append([]byte(nil), payload...))
	}
	bitmapOf := func(prefix uint64, words int) []byte {
		b := binary.BigEndian.AppendUint64(nil, prefix)
		return append(b, make([]byte, 8*words)...)
	}

	tests := []struct {
		name   string
		count  byte
		bitmap []byte
	}{
		{name: "huge length prefix", count: 1, bitmap: bitmapOf(1<<62, 1)},
		{name: "max length prefix", count: 1, bitmap: bitmapOf(math.MaxUint64, 1)},
		{name: "prefix differs from count", count: 3, bitmap: bitmapOf(2, 1)},
		{name: "too many words", count: 1, bitmap: bitmapOf(1, 2)},
		{name: "missing words", count: 65, bitmap: bitmapOf(65, 1)},
		{name: "partial word", count: 1, bitmap: append(bitmapOf(1, 0), 0, 0, 0)},
		{name: "no prefix", count: 1, bitmap: []byte{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := []byte{tt.count, byte(len(tt.bitmap))}
			payload = append(payload, tt.bitmap...)
			payload = append(payload, 0, 0)

			var err error
			assert.NotPanics(t, func() {
				err = NewBlockWithLimit(0).Decode(withFooter(payload))
			})
			assert.ErrorIs(t, err, ErrCorrupted)
		})
	}
}

func TestBlock_AppendLimit(t *testing.T) {
	block := NewBlockWithLimit(2)
	require.NoError(t, block.Append(1))
	require.NoError(t, block.Append(2))
	assert.False(t, block.CanAppend())
	assert.ErrorIs(t, block.Append(3), ErrBlockFull)

	block.Reset()
	assert.Equal(t, 0, block.Len())
	assert.NoError(t, block.Append(3))
}

func TestNewBlock_UsesConfig(t *testing.T) {
	block := NewBlock()
	assert.True(t, block.CanAppend())
	assert.Greater(t, block.maxValues, 0)
}

// ErrorWriter 是一个会报错的 io.Writer 实现
type ErrorWriter struct{}

func (w *ErrorWriter) Write(p []byte) (int, error) {
	return 0, errors.New("mock write error")
}

type ErrorReader struct{}

func (r *ErrorReader) Read(p []byte) (int, error) {
	return 0, errors.New("mock read error")
}
