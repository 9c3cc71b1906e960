// Copyright 2014 The go-ethereum Authors
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
	"math"

	"github.com/DavidHarper414/Bchain-evmone/common"
	"github.com/holiman/uint256"
)

// calcMemSize64 computes offset+length as a uint64 and reports whether doing
// so overflowed. A zero length always yields a zero size, regardless of
// offset, since a zero-size access never touches memory.
func calcMemSize64(off, length *uint256.Int) (uint64, bool) {
	if !length.IsUint64() {
		return 0, true
	}
	return calcMemSize64WithUint(off, length.Uint64())
}

func calcMemSize64WithUint(off *uint256.Int, length64 uint64) (uint64, bool) {
	if length64 == 0 {
		return 0, false
	}
	offset64, overflow := off.Uint64WithOverflow()
	if overflow {
		return 0, true
	}
	val := offset64 + length64
	return val, val < offset64
}

// getData returns data[start:start+size], zero-padded on the right if the
// requested window runs past the end of data. Overflow safe: start and size
// are clamped rather than allowed to wrap.
func getData(data []byte, start, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	return common.RightPadBytes(data[start:end], int(size))
}

// toWordSize rounds size up to the nearest multiple of 32, expressed in
// 32-byte words.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
