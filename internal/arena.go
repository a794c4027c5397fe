package internal

import (
	"runtime"
	"sync"
	"unsafe"
)

// Arena keeps the memory behind handed-out views alive until the view is released.
// With pinning enabled every allocation is pinned as well, so the views may be
// passed across a cgo boundary and retained by C code.
type Arena struct {
	pin bool

	mu     sync.Mutex
	blocks map[unsafe.Pointer]*Block
}

// Block groups the allocations belonging to a single view.
type Block struct {
	pin    bool
	pinner runtime.Pinner
	keep   []any
}

// NewArena creates an empty arena.
func NewArena(pin bool) *Arena {
	return &Arena{
		pin:    pin,
		blocks: make(map[unsafe.Pointer]*Block),
	}
}

// NewBlock starts a new group of allocations.
// The block must either be committed or discarded.
func (a *Arena) NewBlock() *Block {
	return &Block{pin: a.pin}
}

// Alloc allocates n zeroed values of T inside the block.
func Alloc[T any](b *Block, n int) []T {
	s := make([]T, n)
	if n == 0 {
		return s
	}
	if b.pin {
		b.pinner.Pin(&s[0])
	}
	b.keep = append(b.keep, s)
	return s
}

// Discard releases an uncommitted block.
func (b *Block) Discard() {
	b.pinner.Unpin()
	b.keep = nil
}

// Commit hands the block to the arena, keyed by the address of the view it backs.
func (a *Arena) Commit(key unsafe.Pointer, b *Block) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.blocks[key] = b
}

// Release unpins and forgets the block registered for key.
// Returns false if no such block exists.
func (a *Arena) Release(key unsafe.Pointer) bool {
	a.mu.Lock()
	b, ok := a.blocks[key]
	delete(a.blocks, key)
	a.mu.Unlock()

	if !ok {
		return false
	}
	b.Discard()
	return true
}

// Len returns the number of live blocks.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.blocks)
}
