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
	"github.com/DavidHarper414/Bchain-evmone/crypto"
	"github.com/DavidHarper414/Bchain-evmone/params"
	"github.com/holiman/uint256"
)

func opKeccak256(ip int, st *ExecutionState) int {
	offset, size := st.stack.peek(), st.stack.Back(1)
	memSize, overflow := calcMemSize64(offset, size)
	if overflow || !st.expandMemory(memSize) {
		if overflow {
			st.fail(StatusOutOfGas, ErrGasUintOverflow)
		}
		return -1
	}
	cost, err := gasKeccak256(st.revision, st, st.stack, st.memory, memSize)
	if err != nil || !st.consumeGas(cost) {
		if err != nil {
			st.fail(StatusOutOfGas, err)
		}
		return -1
	}
	off, sz := st.stack.pop(), st.stack.pop()
	data := st.memory.GetPtr(off.Uint64(), sz.Uint64())
	hash := crypto.Keccak256(data)
	res := new(uint256.Int).SetBytes(hash)
	st.stack.push(res)
	return ip + 1
}

func opMload(ip int, st *ExecutionState) int {
	off := st.stack.peek()
	memSize, overflow := calcMemSize64WithUint(off, 32)
	if overflow {
		st.fail(StatusOutOfGas, ErrGasUintOverflow)
		return -1
	}
	if !st.expandMemory(memSize) {
		return -1
	}
	off.SetBytes(st.memory.GetPtr(off.Uint64(), 32))
	return ip + 1
}

func opMstore(ip int, st *ExecutionState) int {
	off, val := st.stack.pop(), st.stack.pop()
	memSize, overflow := calcMemSize64WithUint(&off, 32)
	if overflow {
		st.fail(StatusOutOfGas, ErrGasUintOverflow)
		return -1
	}
	if !st.expandMemory(memSize) {
		return -1
	}
	st.memory.Set32(off.Uint64(), &val)
	return ip + 1
}

func opMstore8(ip int, st *ExecutionState) int {
	off, val := st.stack.pop(), st.stack.pop()
	memSize, overflow := calcMemSize64WithUint(&off, 1)
	if overflow {
		st.fail(StatusOutOfGas, ErrGasUintOverflow)
		return -1
	}
	if !st.expandMemory(memSize) {
		return -1
	}
	st.memory.store[off.Uint64()] = byte(val.Uint64())
	return ip + 1
}

func opMcopy(ip int, st *ExecutionState) int {
	dst, src, size := st.stack.peek(), st.stack.Back(1), st.stack.Back(2)
	memSize, overflow := calcMemSize64(dst, size)
	if overflow {
		st.fail(StatusOutOfGas, ErrGasUintOverflow)
		return -1
	}
	srcSize, overflow := calcMemSize64(src, size)
	if overflow {
		st.fail(StatusOutOfGas, ErrGasUintOverflow)
		return -1
	}
	if srcSize > memSize {
		memSize = srcSize
	}
	if !st.expandMemory(memSize) {
		return -1
	}
	cost, err := gasMcopy(st.revision, st, st.stack, st.memory, memSize)
	if err != nil || !st.consumeGas(cost) {
		return -1
	}
	d, s, sz := st.stack.pop(), st.stack.pop(), st.stack.pop()
	st.memory.Copy(d.Uint64(), s.Uint64(), sz.Uint64())
	return ip + 1
}

func opSload(ip int, st *ExecutionState) int {
	loc := st.stack.peek()
	key := common.BytesToHash(loc.Bytes())
	if st.revision.AtLeast(Berlin) {
		if st.host.AccessStorage(st.message.Recipient, key) == AccessCold {
			if !st.consumeGas(params.ColdSloadCostEIP2929) {
				return -1
			}
		} else {
			if !st.consumeGas(params.WarmStorageReadCostEIP2929) {
				return -1
			}
		}
	}
	val := st.host.GetStorage(st.message.Recipient, key)
	loc.SetBytes(val.Bytes())
	return ip + 1
}

func opSstore(ip int, st *ExecutionState) int {
	if st.message.IsStatic {
		st.fail(StatusStaticModeViolation, ErrWriteProtection)
		return -1
	}
	// EIP-2200 sentry: refuse to even attempt the update if gas is at or
	// below the stipend, so a call forwarding exactly the 2300-gas stipend
	// can never leave a dangling partial write.
	if st.revision.AtLeast(Istanbul) && st.gasLeft <= int64(params.CallStipend) {
		st.fail(StatusOutOfGas, ErrOutOfGas)
		return -1
	}
	loc, val := st.stack.pop(), st.stack.pop()
	key := common.BytesToHash(loc.Bytes())

	var accessCost uint64
	if st.revision.AtLeast(Berlin) {
		if st.host.AccessStorage(st.message.Recipient, key) == AccessCold {
			accessCost = params.ColdSloadCostEIP2929
		}
	}

	current := st.host.GetStorage(st.message.Recipient, key)
	original := st.host.GetCommittedStorage(st.message.Recipient, key)
	currentInt := new(uint256.Int).SetBytes(current.Bytes())
	originalInt := new(uint256.Int).SetBytes(original.Bytes())

	gas, refundDelta := sstoreGas(st.revision, *originalInt, *currentInt, val)
	if !st.consumeGas(accessCost + gas) {
		return -1
	}
	if refundDelta > 0 {
		st.gasRefund += uint64(refundDelta)
	} else if refundDelta < 0 {
		delta := uint64(-refundDelta)
		if delta > st.gasRefund {
			st.gasRefund = 0
		} else {
			st.gasRefund -= delta
		}
	}

	newHash := common.BytesToHash(val.Bytes())
	st.host.SetStorage(st.message.Recipient, key, newHash)
	return ip + 1
}

func opTload(ip int, st *ExecutionState) int {
	loc := st.stack.peek()
	key := common.BytesToHash(loc.Bytes())
	val := st.host.GetTransientStorage(st.message.Recipient, key)
	loc.SetBytes(val.Bytes())
	return ip + 1
}

func opTstore(ip int, st *ExecutionState) int {
	if st.message.IsStatic {
		st.fail(StatusStaticModeViolation, ErrWriteProtection)
		return -1
	}
	loc, val := st.stack.pop(), st.stack.pop()
	key := common.BytesToHash(loc.Bytes())
	st.host.SetTransientStorage(st.message.Recipient, key, common.BytesToHash(val.Bytes()))
	return ip + 1
}
