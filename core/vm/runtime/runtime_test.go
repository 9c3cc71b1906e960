package runtime

import (
	"testing"

	"github.com/DavidHarper414/Bchain-evmone/common"
	"github.com/DavidHarper414/Bchain-evmone/core/vm"
	"github.com/DavidHarper414/Bchain-evmone/crypto"
	"github.com/holiman/uint256"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func op(codes ...vm.OpCode) []byte {
	b := make([]byte, len(codes))
	for i, c := range codes {
		b[i] = byte(c)
	}
	return b
}

func push1(v byte) []byte { return []byte{byte(vm.PUSH1), v} }

// TestExecuteAddition is scenario (a) from the invariants list: PUSH1 3;
// PUSH1 2; ADD; PUSH1 0; MSTORE; PUSH1 32; PUSH1 0; RETURN.
func TestExecuteAddition(t *testing.T) {
	var code []byte
	code = append(code, push1(3)...)
	code = append(code, push1(2)...)
	code = append(code, op(vm.ADD)...)
	code = append(code, push1(0)...)
	code = append(code, op(vm.MSTORE)...)
	code = append(code, push1(32)...)
	code = append(code, push1(0)...)
	code = append(code, op(vm.RETURN)...)

	cfg := &Config{Revision: vm.Prague, GasLimit: 1000}
	output, gasLeft, err := Execute(code, nil, cfg)

	require.NoError(t, err)
	want := make([]byte, 32)
	want[31] = 5
	assert.Equal(t, want, output)
	assert.EqualValues(t, 1000-24, gasLeft, "gas_used must be exactly 24: 5 PUSH1 + ADD + MSTORE flat costs plus one word of memory expansion")
}

// TestExecuteBadJump is scenario (b): PUSH1 8; JUMP; JUMPDEST; STOP, with
// gas=100. Offset 8 is past the end of code.
func TestExecuteBadJump(t *testing.T) {
	var code []byte
	code = append(code, push1(8)...)
	code = append(code, op(vm.JUMP, vm.JUMPDEST, vm.STOP)...)

	cfg := &Config{Revision: vm.Prague, GasLimit: 100}
	_, gasLeft, err := Execute(code, nil, cfg)

	require.Error(t, err)
	assert.EqualValues(t, 0, gasLeft, "a failed frame (other than REVERT) consumes all remaining gas")
}

// TestExecuteValidJump is scenario (c): PUSH1 4; JUMP; STOP; JUMPDEST;
// STOP, jumping cleanly over the dead STOP at offset 3.
func TestExecuteValidJump(t *testing.T) {
	var code []byte
	code = append(code, push1(4)...)
	code = append(code, op(vm.JUMP, vm.STOP, vm.JUMPDEST, vm.STOP)...)

	cfg := &Config{Revision: vm.Prague, GasLimit: 1000}
	_, _, err := Execute(code, nil, cfg)

	assert.NoError(t, err, "the JUMP must land on the JUMPDEST at offset 4, not fall through the dead STOP at offset 3")
}

// TestExecuteOutOfGasViaMemory is scenario (d): PUSH1 0; PUSH4 0xFFFFFFFF;
// MSTORE; STOP. MSTORE pops its offset off the top of the stack, so the
// huge value must be pushed last; the implied memory expansion is far too
// large to afford.
func TestExecuteOutOfGasViaMemory(t *testing.T) {
	code := []byte{byte(vm.PUSH1), 0x00, byte(vm.PUSH4), 0xff, 0xff, 0xff, 0xff, byte(vm.MSTORE), byte(vm.STOP)}

	cfg := &Config{Revision: vm.Prague, GasLimit: 1_000_000}
	_, gasLeft, err := Execute(code, nil, cfg)

	require.Error(t, err)
	assert.EqualValues(t, 0, gasLeft)
}

// TestCallWithValueOnEmptyAccount is scenario (f): a CALL carrying value to
// a zero-balance, zero-code, zero-nonce account makes that account
// observably non-empty afterward.
func TestCallWithValueOnEmptyAccount(t *testing.T) {
	target := common.BytesToAddress([]byte{0xaa})

	// Pushed bottom-to-top: retSize, retOffset, argsSize, argsOffset, value,
	// addr, gas -- CALL pops gas first, retSize last.
	var code []byte
	code = append(code, push1(0)...)
	code = append(code, push1(0)...)
	code = append(code, push1(0)...)
	code = append(code, push1(0)...)
	code = append(code, push1(1)...)
	code = append(code, byte(vm.PUSH20))
	code = append(code, target.Bytes()...)
	code = append(code, byte(vm.PUSH2), 0xff, 0xff)
	code = append(code, byte(vm.CALL))
	code = append(code, byte(vm.STOP))

	// Execute deploys code at keccak256(code)[12:] and runs it with that
	// address as the executing contract; CALL's value leaves from that
	// contract's own balance, not the top-level origin's.
	caller := common.BytesToAddress(crypto.Keccak256(code)[12:])
	state := NewState()
	state.SetBalance(caller, uint256.NewInt(1_000_000))

	cfg := &Config{Revision: vm.Prague, GasLimit: 200_000, State: state}
	_, _, err := Execute(code, nil, cfg)

	require.NoError(t, err)
	assert.True(t, state.Exists(target), "receiving a non-zero value must make a previously empty account exist")
}

// TestStaticCallForbidsSstore is scenario (e): a STATICCALL into a callee
// that attempts SSTORE must fail with a static-mode violation, and that
// failure must not corrupt the caller's own execution once it resumes.
func TestStaticCallForbidsSstore(t *testing.T) {
	callee := common.BytesToAddress([]byte{0xbb})

	// The callee: PUSH1 1; PUSH1 0; SSTORE; STOP.
	calleeCode := append(push1(1), push1(0)...)
	calleeCode = append(calleeCode, byte(vm.SSTORE), byte(vm.STOP))

	// Pushed bottom-to-top for STATICCALL (no value arg): retSize, retOffset,
	// argsSize, argsOffset, addr, gas -- pops gas first, retSize last.
	var code []byte
	code = append(code, push1(0)...)
	code = append(code, push1(0)...)
	code = append(code, push1(0)...)
	code = append(code, push1(0)...)
	code = append(code, byte(vm.PUSH20))
	code = append(code, callee.Bytes()...)
	code = append(code, byte(vm.PUSH2), 0xff, 0xff)
	code = append(code, byte(vm.STATICCALL))
	code = append(code, byte(vm.STOP))

	state := NewState()
	state.SetCode(callee, calleeCode)

	cfg := &Config{Revision: vm.Prague, GasLimit: 200_000, State: state}
	_, _, err := Execute(code, nil, cfg)

	require.NoError(t, err, "the callee's failure surfaces as a zero success value on the stack, not a propagated error")
	assert.Equal(t, common.Hash{}, state.GetStorage(callee, common.Hash{}), "SSTORE inside a STATICCALL must never take effect")
}
