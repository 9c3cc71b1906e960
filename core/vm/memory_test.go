package vm

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResizeIsWordAligned(t *testing.T) {
	m := NewMemory()
	defer m.Free()

	m.Resize(1)
	assert.Equal(t, 1, m.Len(), "Resize grows to exactly the requested size; word-rounding is the caller's job")
}

func TestMemorySet32RoundTrip(t *testing.T) {
	m := NewMemory()
	defer m.Free()

	m.Resize(32)
	v := uint256.NewInt(0x0102030405)
	m.Set32(0, v)

	got := new(uint256.Int).SetBytes(m.GetCopy(0, 32))
	assert.Equal(t, v, got, "MSTORE(k, v) followed by MLOAD(k) must return v unchanged")
}

func TestMemoryNeverShrinks(t *testing.T) {
	m := NewMemory()
	defer m.Free()

	m.Resize(64)
	m.Resize(32)
	assert.Equal(t, 64, m.Len(), "the EVM has no operation that reclaims memory mid-frame")
}

func TestMemoryCopyHandlesOverlap(t *testing.T) {
	m := NewMemory()
	defer m.Free()

	m.Resize(64)
	m.Set(0, 4, []byte{1, 2, 3, 4})
	m.Copy(2, 0, 4) // overlapping forward copy, as MCOPY permits

	require.Equal(t, []byte{1, 2, 1, 2, 3, 4}, m.GetCopy(0, 6))
}
