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

// Package crypto supplies the single hash function the engine depends on
// (Keccak-256) and the two address-derivation formulas used by CREATE and
// CREATE2.
package crypto

import (
	"encoding/binary"

	"github.com/DavidHarper414/Bchain-evmone/common"
	"golang.org/x/crypto/sha3"
)

// HashLength is the length of a Keccak256 digest.
const HashLength = 32

// Keccak256 computes and returns the Keccak-256 digest of the concatenation
// of the given byte slices.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash computes the Keccak-256 digest and wraps it as a common.Hash.
func Keccak256Hash(data ...[]byte) common.Hash {
	return common.BytesToHash(Keccak256(data...))
}

// CreateAddress computes the address of a contract created via CREATE, given
// the creating account's address and its current account nonce.
//
// address = keccak256(rlp([sender, nonce]))[12:]
//
// The RLP list is encoded by hand rather than through a general-purpose RLP
// package: a fixed two-element (20-byte-string, integer) list has a trivial
// encoding and doesn't warrant pulling in a reflection-based encoder for
// this single call site.
func CreateAddress(sender common.Address, nonce uint64) common.Address {
	nonceRLP := rlpUint64(nonce)
	addrRLP := rlpBytes(sender.Bytes())
	payload := append(append([]byte{}, addrRLP...), nonceRLP...)
	list := append(rlpListHeader(len(payload)), payload...)
	return common.BytesToAddress(Keccak256(list)[12:])
}

// CreateAddress2 computes the address of a contract created via CREATE2.
//
// address = keccak256(0xff ++ sender ++ salt ++ keccak256(initCode))[12:]
func CreateAddress2(sender common.Address, salt [32]byte, initCodeHash []byte) common.Address {
	return common.BytesToAddress(Keccak256([]byte{0xff}, sender.Bytes(), salt[:], initCodeHash)[12:])
}

// rlpBytes encodes a byte string per the RLP rules: a single byte in [0x00,
// 0x7f] encodes as itself; otherwise a length-prefixed string.
func rlpBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	return append(rlpStringHeader(len(b)), b...)
}

func rlpStringHeader(size int) []byte {
	if size < 56 {
		return []byte{byte(0x80 + size)}
	}
	lenBytes := minimalBigEndian(uint64(size))
	return append([]byte{byte(0xb7 + len(lenBytes))}, lenBytes...)
}

func rlpListHeader(size int) []byte {
	if size < 56 {
		return []byte{byte(0xc0 + size)}
	}
	lenBytes := minimalBigEndian(uint64(size))
	return append([]byte{byte(0xf7 + len(lenBytes))}, lenBytes...)
}

// rlpUint64 encodes an unsigned integer as an RLP string: its minimal
// big-endian byte representation, with zero encoding to the empty string.
func rlpUint64(n uint64) []byte {
	if n == 0 {
		return []byte{0x80}
	}
	return rlpBytes(minimalBigEndian(n))
}

func minimalBigEndian(n uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return buf[i:]
}
