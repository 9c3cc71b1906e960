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

// ExecutionState is the mutable state of one call frame: everything an
// instruction handler needs to read or modify. It is owned exclusively by
// the frame executing it -- unlike Analysis, it is never shared.
type ExecutionState struct {
	gasLeft   int64
	gasRefund uint64

	stack  *Stack
	memory *Memory

	returnData []byte // callee's full, untruncated output from the last sub-call
	output     []byte // this frame's own RETURN/REVERT payload

	status StatusCode
	err    error

	analysis *Analysis
	// currentBlockCost is the base gas cost already deducted for the block
	// currently executing. It exists only so that "gas left" can be
	// reported precisely mid-block if a host ever asks; ordinary handlers
	// never read it.
	currentBlockCost uint32

	message  *Message
	host     Host
	revision Revision
}

// NewExecutionState builds a fresh frame ready to execute analysis under
// msg, with gas, stack and memory freshly allocated (or recycled from the
// pools stack.go/memory.go maintain).
func NewExecutionState(msg *Message, host Host, revision Revision, analysis *Analysis) *ExecutionState {
	return &ExecutionState{
		gasLeft:  int64(msg.Gas),
		stack:    newStack(),
		memory:   NewMemory(),
		analysis: analysis,
		message:  msg,
		host:     host,
		revision: revision,
	}
}

// Release returns the frame's pooled Stack and Memory. Callers must not
// touch the ExecutionState afterward.
func (st *ExecutionState) Release() {
	returnStack(st.stack)
	st.memory.Free()
}

func (st *ExecutionState) fail(status StatusCode, err error) {
	st.status = status
	st.err = err
}

// expandMemory grows memory to hold `size` bytes, rounded up to whole 32-byte
// words, charging the quadratic expansion fee. It returns false (and marks the frame failed) if gas runs
// out.
func (st *ExecutionState) expandMemory(size uint64) bool {
	if size <= uint64(st.memory.Len()) {
		return true
	}
	cost, err := memoryGasCost(st.memory, size)
	if err != nil {
		st.fail(StatusOutOfGas, ErrGasUintOverflow)
		return false
	}
	if !st.consumeGas(cost) {
		return false
	}
	st.memory.Resize(toWordSize(size) * 32)
	return true
}

func (st *ExecutionState) consumeGas(amount uint64) bool {
	if st.gasLeft < 0 || uint64(st.gasLeft) < amount {
		st.fail(StatusOutOfGas, ErrOutOfGas)
		return false
	}
	st.gasLeft -= int64(amount)
	return true
}

// Result packages the frame's terminal state for the caller (the frame
// manager, or the top-level embedder for the outermost call).
func (st *ExecutionState) Result() *Result {
	status := st.status
	r := &Result{Status: status}
	if status == StatusSuccess || status == StatusRevert {
		if st.gasLeft > 0 {
			r.GasLeft = uint64(st.gasLeft)
		}
		r.GasRefund = st.gasRefund
		r.Output = st.output
	}
	return r
}
