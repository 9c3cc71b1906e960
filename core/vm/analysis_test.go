package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFirstInstructionIsBlockBegin(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01, byte(STOP)}
	a := analyze(code, tableForRevision(Prague))

	require.NotEmpty(t, a.Instrs)
	assert.Equal(t, ArgBlock, a.Instrs[0].Arg.Kind)
}

func TestAnalyzeSmallPushInlinesValue(t *testing.T) {
	code := []byte{byte(PUSH1), 0x2a, byte(STOP)} // PUSH1 42
	a := analyze(code, tableForRevision(Prague))

	push := a.Instrs[1]
	require.Equal(t, ArgSmallPush, push.Arg.Kind)
	assert.EqualValues(t, 42, push.Arg.SmallPushValue)
}

func TestAnalyzeLargePushStoresFullWord(t *testing.T) {
	imm := make([]byte, 20)
	imm[19] = 0x07
	code := append([]byte{byte(PUSH20)}, imm...)
	code = append(code, byte(STOP))
	a := analyze(code, tableForRevision(Prague))

	push := a.Instrs[1]
	require.Equal(t, ArgLargePush, push.Arg.Kind)
	require.NotNil(t, push.Arg.PushValue)
	assert.True(t, push.Arg.PushValue.IsUint64())
	assert.EqualValues(t, 7, push.Arg.PushValue.Uint64())
}

func TestAnalyzePushRunningOffEndIsZeroPadded(t *testing.T) {
	// PUSH2 with only one immediate byte present before end-of-code.
	code := []byte{byte(PUSH2), 0xff}
	a := analyze(code, tableForRevision(Prague))

	push := a.Instrs[1]
	require.Equal(t, ArgSmallPush, push.Arg.Kind)
	assert.EqualValues(t, 0xff00, push.Arg.SmallPushValue, "missing trailing byte is zero-padded, not treated as end of stream")
}

func TestAnalyzeJumpdestTableMapsToBlockBegin(t *testing.T) {
	// PUSH1 4; JUMP; STOP; JUMPDEST; STOP  (scenario c from the interpreter's
	// contract: valid jump lands exactly on offset 4)
	code := []byte{byte(PUSH1), 0x04, byte(JUMP), byte(STOP), byte(JUMPDEST), byte(STOP)}
	a := analyze(code, tableForRevision(Prague))

	idx := a.FindJumpdest(4)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, ArgBlock, a.Instrs[idx].Arg.Kind, "a jump target must always land on a block-begin")
}

func TestAnalyzeUnknownJumpdestIsRejected(t *testing.T) {
	code := []byte{byte(PUSH1), 0x08, byte(JUMP), byte(JUMPDEST), byte(STOP)}
	a := analyze(code, tableForRevision(Prague))

	assert.Equal(t, -1, a.FindJumpdest(8), "offset 8 is past the end of code and must not resolve")
}

func TestAnalyzeTrailingSyntheticStop(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01}
	a := analyze(code, tableForRevision(Prague))

	last := a.Instrs[len(a.Instrs)-1]
	assert.Equal(t, STOP, last.Op, "the dispatcher must never run off the end of the stream")
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	code := []byte{byte(PUSH1), 0x03, byte(PUSH1), 0x02, byte(ADD), byte(PUSH1), 0x00, byte(MSTORE), byte(PUSH1), 0x20, byte(PUSH1), 0x00, byte(RETURN)}
	a1 := analyze(code, tableForRevision(Prague))
	a2 := analyze(code, tableForRevision(Prague))

	require.Equal(t, len(a1.Instrs), len(a2.Instrs))
	for i := range a1.Instrs {
		assert.Equal(t, a1.Instrs[i].Op, a2.Instrs[i].Op)
		assert.Equal(t, a1.Instrs[i].Arg.Kind, a2.Instrs[i].Arg.Kind)
	}
}

func TestAnalyzeBlockRequiresEnoughStack(t *testing.T) {
	// ADD with nothing pushed first: the block containing it must record
	// that at least 2 items are required on entry.
	code := []byte{byte(ADD), byte(STOP)}
	a := analyze(code, tableForRevision(Prague))

	assert.EqualValues(t, 2, a.Instrs[0].Arg.Block.StackRequired)
}
