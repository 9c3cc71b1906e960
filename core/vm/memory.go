// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"sync"

	"github.com/holiman/uint256"
)

var memoryPool = sync.Pool{
	New: func() any { return &Memory{} },
}

// Memory is the byte-addressable, word-granular expanding memory of a call
// frame. Logically it is an infinite zero-initialized array; physically it
// is a slice grown in 32-byte words as instructions touch new offsets.
// lastGasCost tracks the running total already billed for expansion so that
// memoryGasCost only charges the delta on each further growth.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory returns a (possibly reused) empty Memory.
func NewMemory() *Memory { return memoryPool.Get().(*Memory) }

// Free returns m to the pool. Only smaller buffers are recycled, to bound
// peak retained memory.
func (m *Memory) Free() {
	const maxBufferSize = 16 << 10
	if cap(m.store) <= maxBufferSize {
		m.store = m.store[:0]
		m.lastGasCost = 0
		memoryPool.Put(m)
	}
}

// Set copies value into m.store[offset:offset+size]. The caller must have
// already grown the memory to at least offset+size via Resize.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		panic("invalid memory: write out of bounds")
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes val, big-endian, into the 32 bytes starting at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("invalid memory: write out of bounds")
	}
	val.PutUint256(m.store[offset:])
}

// Resize grows the backing store to size bytes, zero-filling the new region.
// It never shrinks memory: the EVM has no operation that reclaims memory
// mid-frame.
func (m *Memory) Resize(size uint64) {
	if uint64(m.Len()) < size {
		m.store = append(m.store, make([]byte, size-uint64(m.Len()))...)
	}
}

// GetCopy returns a fresh copy of m.store[offset:offset+size].
func (m *Memory) GetCopy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	cpy := make([]byte, size)
	copy(cpy, m.store[offset:offset+size])
	return cpy
}

// GetPtr returns a slice aliasing m.store[offset:offset+size].
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Len returns the current size of the backing store in bytes. Memory grown
// by ExecutionState.expandMemory is always a multiple of 32; Resize itself
// does not round.
func (m *Memory) Len() int { return len(m.store) }

// Data returns the backing slice directly, without copying.
func (m *Memory) Data() []byte { return m.store }

// Copy moves len bytes from src to dst within the same buffer, correctly
// handling overlap (used by MCOPY). Both regions must already be within
// bounds.
func (m *Memory) Copy(dst, src, length uint64) {
	if length == 0 {
		return
	}
	copy(m.store[dst:], m.store[src:src+length])
}
