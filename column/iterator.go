package column

// Iterator 顺序遍历 Block 中的值
type Iterator struct {
	block *Block
	index int
}

// NewIterator 创建迭代器，初始位于第一个值之前（调用 SeekToFirst 激活）
func NewIterator(block *Block) *Iterator {
	return &Iterator{
		block: block,
		index: -1,
	}
}

func (it *Iterator) Valid() bool {
	return it.block != nil && it.index >= 0 && it.index < len(it.block.values)
}

// Value 返回当前值，位置无效时返回 0
func (it *Iterator) Value() uint64 {
	if !it.Valid() {
		return 0
	}
	return it.block.values[it.index]
}

// Index 返回当前位置
func (it *Iterator) Index() int {
	return it.index
}

func (it *Iterator) Next() {
	it.index++
}

func (it *Iterator) SeekToFirst() {
	it.index = 0
}

func (it *Iterator) SeekToLast() {
	if it.block == nil {
		return
	}
	it.index = len(it.block.values) - 1
}

// Seek 定位到第 i 个值
func (it *Iterator) Seek(i int) {
	it.index = i
}

// Close 释放对 Block 的引用
func (it *Iterator) Close() {
	it.block = nil
}
