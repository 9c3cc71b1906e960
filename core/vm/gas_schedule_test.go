package vm

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGasCostIsQuadraticAndMonotone(t *testing.T) {
	m := NewMemory()
	defer m.Free()

	// One word (32 bytes): 3*1 + 1*1/512 = 3.
	fee, err := memoryGasCost(m, 32)
	require.NoError(t, err)
	assert.EqualValues(t, 3, fee)
	m.Resize(32)

	// Growing to 64 bytes (2 words) only bills the delta: 3*2+4/512=6, minus
	// the 3 already paid.
	fee2, err := memoryGasCost(m, 64)
	require.NoError(t, err)
	assert.EqualValues(t, 3, fee2)

	// Re-querying the same size charges nothing further.
	fee3, err := memoryGasCost(m, 64)
	require.NoError(t, err)
	assert.EqualValues(t, 0, fee3)
}

func TestMemoryGasCostOverflowGuard(t *testing.T) {
	m := NewMemory()
	defer m.Free()

	_, err := memoryGasCost(m, 0x100000020)
	assert.Error(t, err, "memory expansion for a huge size must fail rather than overflow silently")
}

func TestCallGas63of64Rule(t *testing.T) {
	// Requesting more than the caller can safely forward caps at
	// available - available/64.
	forwarded, err := callGas(London, 6400, 100, uint256.NewInt(1_000_000))
	require.NoError(t, err)
	available := uint64(6400 - 100)
	want := available - available/64
	assert.Equal(t, want, forwarded)
}

func TestCallGasForwardsExactRequestWhenUnderCap(t *testing.T) {
	forwarded, err := callGas(London, 100_000, 0, uint256.NewInt(1000))
	require.NoError(t, err)
	assert.EqualValues(t, 1000, forwarded)
}

func TestCallGasPreTangerineWhistleForwardsRequestedUnchecked(t *testing.T) {
	forwarded, err := callGas(Frontier, 1000, 0, uint256.NewInt(999))
	require.NoError(t, err)
	assert.EqualValues(t, 999, forwarded)
}

func TestSstoreGasLegacySetClearReset(t *testing.T) {
	zero, one, two := uint256.Int{}, *uint256.NewInt(1), *uint256.NewInt(2)

	gas, refund := sstoreGasLegacy(zero, one)
	assert.EqualValues(t, 20000, gas)
	assert.Zero(t, refund)

	gas, refund = sstoreGasLegacy(one, zero)
	assert.EqualValues(t, 5000, gas)
	assert.EqualValues(t, 15000, refund)

	gas, refund = sstoreGasLegacy(one, two)
	assert.EqualValues(t, 5000, gas)
	assert.Zero(t, refund)
}

func TestSstoreGasEIP2929NoopIsWarmRead(t *testing.T) {
	one := *uint256.NewInt(1)
	gas, refund := sstoreGasEIP2929(one, one, one)
	assert.EqualValues(t, 100, gas, "writing the same value the slot already holds is a warm read, not a write")
	assert.Zero(t, refund)
}

func TestGasExpBytePricingByRevision(t *testing.T) {
	m := NewMemory()
	defer m.Free()
	stack := newStack()
	defer returnStack(stack)
	stack.push(uint256.NewInt(0)) // base, unused by gasExp
	stack.push(uint256.NewInt(256))

	frontierGas, err := gasExp(Frontier, nil, stack, m, 0)
	require.NoError(t, err)
	spuriousGas, err := gasExp(SpuriousDragon, nil, stack, m, 0)
	require.NoError(t, err)

	assert.Greater(t, spuriousGas, frontierGas, "EIP-160 raised the per-byte exponent cost")
}
