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
	"github.com/DavidHarper414/Bchain-evmone/common"
	"github.com/DavidHarper414/Bchain-evmone/params"
	"github.com/holiman/uint256"
)

// gasFunc computes the dynamic (input-dependent) portion of an instruction's
// gas cost. The static portion -- the part that depends only on the opcode
// and the revision, never on stack contents -- is folded into the
// surrounding basic block's BlockInfo.BaseGasCost at analysis time and
// never revisited here. Most opcodes have no gasFunc at all.
//
// memSize is the memory size in bytes the instruction will require *after*
// any expansion; callers compute it from the stack before invoking gasFunc
// so the memory-expansion charge can be folded into a single number together
// with the opcode's own dynamic component.
type gasFunc func(rev Revision, st *ExecutionState, stack *Stack, mem *Memory, memSize uint64) (uint64, error)

// memoryGasCost implements the Yellow Paper's quadratic memory expansion
// cost: charge for the delta between the previous word count and the new
// one, per the C_mem(a) = 3a + a^2/512 formula, memoized via
// Memory.lastGasCost so repeated accesses to already-grown memory are free.
func memoryGasCost(mem *Memory, newSize uint64) (uint64, error) {
	if newSize == 0 {
		return 0, nil
	}
	if newSize > 0xFFFFFFFF {
		// Sizes past the 32-bit range are rejected as an overflow: no real
		// execution can pay for memory this large, and the bound keeps the
		// squared term below far from uint64 overflow.
		return 0, ErrGasUintOverflow
	}
	newWords := toWordSize(newSize)
	newTotal := newWords*params.MemoryGas + newWords*newWords/params.QuadCoeffDiv
	if newTotal <= mem.lastGasCost {
		return 0, nil
	}
	fee := newTotal - mem.lastGasCost
	mem.lastGasCost = newTotal
	return fee, nil
}

func memWordCost(words uint64, perWord uint64) uint64 {
	if words > (1<<63)/perWord {
		return ^uint64(0)
	}
	return words * perWord
}

// gasKeccak256 covers the SHA3/KECCAK256 opcode: a flat cost plus a per-word
// charge on top of whatever memory expansion the read requires.
func gasKeccak256(rev Revision, st *ExecutionState, stack *Stack, mem *Memory, memSize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memSize)
	if err != nil {
		return 0, err
	}
	size, overflow := stack.Back(1).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	words := toWordSize(size)
	wordGas := memWordCost(words, params.Keccak256WordGas)
	if gas > ^uint64(0)-wordGas {
		return 0, ErrGasUintOverflow
	}
	return gas + wordGas, nil
}

// makeGasCopy builds the dynamic-gas function shared by every COPY-family
// opcode (CALLDATACOPY, CODECOPY, EXTCODECOPY, RETURNDATACOPY): memory
// expansion plus a flat per-word charge, with the copied length taken from
// stack position sizeIdx (0-indexed from the top).
func makeGasCopy(sizeIdx int) gasFunc {
	return func(rev Revision, st *ExecutionState, stack *Stack, mem *Memory, memSize uint64) (uint64, error) {
		gas, err := memoryGasCost(mem, memSize)
		if err != nil {
			return 0, err
		}
		size, overflow := stack.Back(sizeIdx).Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		words := toWordSize(size)
		wordGas := memWordCost(words, params.CopyGas)
		if gas > ^uint64(0)-wordGas {
			return 0, ErrGasUintOverflow
		}
		return gas + wordGas, nil
	}
}

var (
	gasCallDataCopy    = makeGasCopy(2)
	gasCodeCopy        = makeGasCopy(2)
	gasReturnDataCopy  = makeGasCopy(2)
	gasExtCodeCopy     = makeGasCopy(3)
)

func gasMcopy(rev Revision, st *ExecutionState, stack *Stack, mem *Memory, memSize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memSize)
	if err != nil {
		return 0, err
	}
	size, overflow := stack.Back(2).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	words := toWordSize(size)
	wordGas := memWordCost(words, params.CopyGas)
	if gas > ^uint64(0)-wordGas {
		return 0, ErrGasUintOverflow
	}
	return gas + wordGas, nil
}

// makeGasLog builds the LOG0..LOG4 dynamic-gas function: memory expansion
// plus a flat per-byte charge on the logged data and a flat charge per topic.
func makeGasLog(n int) gasFunc {
	return func(rev Revision, st *ExecutionState, stack *Stack, mem *Memory, memSize uint64) (uint64, error) {
		gas, err := memoryGasCost(mem, memSize)
		if err != nil {
			return 0, err
		}
		size, overflow := stack.Back(1).Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		topicGas := uint64(n) * params.LogTopicGas
		if gas > ^uint64(0)-topicGas {
			return 0, ErrGasUintOverflow
		}
		gas += topicGas
		dataGas := size * params.LogDataGas
		if size != 0 && dataGas/size != params.LogDataGas {
			return 0, ErrGasUintOverflow
		}
		if gas > ^uint64(0)-dataGas {
			return 0, ErrGasUintOverflow
		}
		return gas + dataGas, nil
	}
}

// gasExp implements the EXP opcode: a flat base cost plus a per-byte charge
// on the exponent, with the per-byte constant repriced by EIP-160.
func gasExp(rev Revision, st *ExecutionState, stack *Stack, mem *Memory, memSize uint64) (uint64, error) {
	expByteCost := uint64(params.ExpByteFrontier)
	if rev.AtLeast(SpuriousDragon) {
		expByteCost = params.ExpByteEIP158
	}
	exponent := stack.Back(1)
	byteLen := uint64(exponent.BitLen()+7) / 8
	gas := byteLen * expByteCost
	if byteLen != 0 && gas/byteLen != expByteCost {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

// gasSelfdestruct covers the cold-account surcharge (EIP-2929) and the
// account-creation surcharge for sending balance to a previously empty
// account. Refunds (pre-London only) are applied by the caller once the
// beneficiary account state is known.
func gasSelfdestruct(rev Revision, st *ExecutionState, stack *Stack, mem *Memory, memSize uint64) (uint64, error) {
	var gas uint64
	beneficiary := common.BytesToAddress(stack.Back(0).Bytes())
	if rev.AtLeast(Berlin) {
		if st.host.AccessAccount(beneficiary) == AccessCold {
			gas += params.ColdAccountAccessCostEIP2929
		}
	}
	if !st.host.AccountExists(beneficiary) {
		bal := st.host.GetBalance(st.message.Recipient)
		if !bal.IsZero() {
			gas += params.CallNewAccountGas
		}
	}
	return gas, nil
}

// sstoreGas computes the SSTORE cost under the tri-state schedule active
// for rev, given the slot's original (transaction-start), current
// (present) and new values. It also returns the refund delta to apply
// (positive: grant refund, negative: revoke a previously granted one),
// matching the legacy / EIP-2200 / EIP-2929+3529 rules in turn.
func sstoreGas(rev Revision, original, current, newVal uint256.Int) (gas uint64, refund int64) {
	switch {
	case rev.AtLeast(Berlin):
		return sstoreGasEIP2929(original, current, newVal)
	case rev.AtLeast(Istanbul):
		return sstoreGasEIP2200(original, current, newVal)
	default:
		return sstoreGasLegacy(current, newVal)
	}
}

func sstoreGasLegacy(current, newVal uint256.Int) (uint64, int64) {
	switch {
	case current.IsZero() && !newVal.IsZero():
		return params.SstoreSetGas, 0
	case !current.IsZero() && newVal.IsZero():
		return params.SstoreClearGas, int64(params.SstoreRefundGas)
	default:
		return params.SstoreResetGas, 0
	}
}

// sstoreGasEIP2200 implements EIP-2200's net-gas-metering rules. sstoreGas
// uses it for Istanbul only; from Berlin onward sstoreGasEIP2929 applies.
func sstoreGasEIP2200(original, current, newVal uint256.Int) (uint64, int64) {
	if current == newVal {
		return params.SstoreSentryGasEIP2200, 0
	}
	if original == current {
		if original.IsZero() {
			return params.SstoreSetGasEIP2200, 0
		}
		if newVal.IsZero() {
			return params.SstoreResetGasEIP2200, int64(params.SstoreClearsScheduleRefundEIP2200)
		}
		return params.SstoreResetGasEIP2200, 0
	}
	var refund int64
	if !original.IsZero() {
		if current.IsZero() {
			refund -= int64(params.SstoreClearsScheduleRefundEIP2200)
		}
		if newVal.IsZero() {
			refund += int64(params.SstoreClearsScheduleRefundEIP2200)
		}
	}
	if original == newVal {
		if original.IsZero() {
			refund += int64(params.SstoreSetGasEIP2200 - params.SstoreSentryGasEIP2200)
		} else {
			refund += int64(params.SstoreResetGasEIP2200 - params.SstoreSentryGasEIP2200)
		}
	}
	return params.SstoreSentryGasEIP2200, refund
}

// sstoreGasEIP2929 layers the EIP-3529 refund-schedule cut on top of
// EIP-2200's net-metering shape; the cold-slot access surcharge itself is
// billed by the caller via Host.AccessStorage before this is invoked.
func sstoreGasEIP2929(original, current, newVal uint256.Int) (uint64, int64) {
	if current == newVal {
		return params.WarmStorageReadCostEIP2929, 0
	}
	if original == current {
		if original.IsZero() {
			return params.SstoreSetGasEIP2200, 0
		}
		if newVal.IsZero() {
			return params.SstoreResetGasEIP2200 - params.ColdSloadCostEIP2929, int64(params.SstoreClearsScheduleRefundEIP3529)
		}
		return params.SstoreResetGasEIP2200 - params.ColdSloadCostEIP2929, 0
	}
	var refund int64
	if !original.IsZero() {
		if current.IsZero() {
			refund -= int64(params.SstoreClearsScheduleRefundEIP3529)
		}
		if newVal.IsZero() {
			refund += int64(params.SstoreClearsScheduleRefundEIP3529)
		}
	}
	if original == newVal {
		if original.IsZero() {
			refund += int64(params.SstoreSetGasEIP2200 - params.WarmStorageReadCostEIP2929)
		} else {
			refund += int64(params.SstoreResetGasEIP2200 - params.ColdSloadCostEIP2929 - params.WarmStorageReadCostEIP2929)
		}
	}
	return params.WarmStorageReadCostEIP2929, refund
}

// callGas implements EIP-150's 63/64 rule: a sub-call may forward at most
// availableGas - availableGas/64 of the caller's remaining gas, regardless
// of how much the caller's stack asked to forward. Pre-EIP-150, the
// requested amount is forwarded unchecked (subject only to the caller
// having that much gas at all, which the interpreter already verified).
func callGas(rev Revision, availableGas, base uint64, requested *uint256.Int) (uint64, error) {
	if rev.AtLeast(TangerineWhistle) {
		available := availableGas - base
		capped := available - available/64
		if !requested.IsUint64() || requested.Uint64() > capped {
			return capped, nil
		}
	}
	if !requested.IsUint64() {
		return 0, ErrGasUintOverflow
	}
	return requested.Uint64(), nil
}

// callAccessGas computes the EIP-2929 cold/warm surcharge for CALL,
// CALLCODE, DELEGATECALL and STATICCALL's target-account access. It is
// zero for revisions before Berlin, where account access was uniformly
// priced into the opcode's flat base cost instead.
func callAccessGas(rev Revision, host Host, addr common.Address) uint64 {
	if !rev.AtLeast(Berlin) {
		return 0
	}
	if host.AccessAccount(addr) == AccessCold {
		return params.ColdAccountAccessCostEIP2929
	}
	return params.WarmStorageReadCostEIP2929
}

// createInitcodeWordGas covers EIP-3860's initcode word charge, layered on
// top of the opcode's own flat CreateGas/Create2Gas base cost (folded into
// the surrounding block by the analysis pass). CREATE2 additionally pays
// create2HashGas, a per-word charge for hashing the initcode.
func createInitcodeWordGas(rev Revision, initcodeLen uint64) uint64 {
	if !rev.AtLeast(Shanghai) {
		return 0
	}
	return toWordSize(initcodeLen) * params.InitCodeWordGas
}

func create2HashGas(initcodeLen uint64) uint64 {
	return toWordSize(initcodeLen) * params.Keccak256WordGas
}
