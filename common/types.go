// Package common holds the small fixed-size value types shared across the
// engine: 20-byte addresses and 32-byte hashes/storage keys.
package common

import (
	"encoding/hex"
	"fmt"
)

// Lengths of hashes and addresses in bytes.
const (
	HashLength    = 32
	AddressLength = 20
)

// Hash represents the 32 byte Keccak256 hash of arbitrary data, and doubles
// as a 256-bit storage key or big-endian word when read off the wire.
type Hash [HashLength]byte

// BytesToHash sets the hash to the value of b, left-padding if b is short and
// truncating from the left if b is longer than 32 bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

func (h Hash) Bytes() []byte  { return h[:] }
func (h Hash) Hex() string    { return "0x" + hex.EncodeToString(h[:]) }
func (h Hash) String() string { return h.Hex() }

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Address represents the 20 byte address of an Ethereum account.
type Address [AddressLength]byte

// BytesToAddress sets the address to the value of b, left-padding if b is
// short and truncating from the left if b is longer than 20 bytes.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

func (a Address) Bytes() []byte  { return a[:] }
func (a Address) Hex() string    { return "0x" + hex.EncodeToString(a[:]) }
func (a Address) String() string { return a.Hex() }
func (a Address) IsZero() bool   { return a == Address{} }

// Hash returns the address left-padded to 32 bytes, the representation used
// when an address is pushed onto the EVM stack.
func (a Address) Hash() Hash { return BytesToHash(a[:]) }

// Format returns the result of formatting a with the %#x verb.
func (a Address) Format() string { return fmt.Sprintf("%#x", a) }
