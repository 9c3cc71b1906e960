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
	"github.com/holiman/uint256"
)

func opAddress(ip int, st *ExecutionState) int {
	v := new(uint256.Int).SetBytes(st.message.Recipient.Bytes())
	st.stack.push(v)
	return ip + 1
}

func opBalance(ip int, st *ExecutionState) int {
	slot := st.stack.peek()
	addr := common.BytesToAddress(slot.Bytes())
	if st.revision.AtLeast(Berlin) {
		if st.host.AccessAccount(addr) == AccessCold {
			if !st.consumeGas(2600) {
				return -1
			}
		} else if !st.consumeGas(100) {
			return -1
		}
	}
	bal := st.host.GetBalance(addr)
	*slot = bal
	return ip + 1
}

func opOrigin(ip int, st *ExecutionState) int {
	v := new(uint256.Int).SetBytes(st.host.GetTxContext().Origin.Bytes())
	st.stack.push(v)
	return ip + 1
}

func opCaller(ip int, st *ExecutionState) int {
	v := new(uint256.Int).SetBytes(st.message.Sender.Bytes())
	st.stack.push(v)
	return ip + 1
}

func opCallValue(ip int, st *ExecutionState) int {
	v := st.message.Value
	st.stack.push(&v)
	return ip + 1
}

func opCallDataLoad(ip int, st *ExecutionState) int {
	off := st.stack.peek()
	if !off.IsUint64() {
		off.Clear()
		return ip + 1
	}
	off.SetBytes(getData(st.message.Input, off.Uint64(), 32))
	return ip + 1
}

func opCallDataSize(ip int, st *ExecutionState) int {
	v := uint256.NewInt(uint64(len(st.message.Input)))
	st.stack.push(v)
	return ip + 1
}

func opCallDataCopy(ip int, st *ExecutionState) int {
	memOff, size := st.stack.peek(), st.stack.Back(2)
	memSize, overflow := calcMemSize64(memOff, size)
	if overflow || !st.expandMemory(memSize) {
		if overflow {
			st.fail(StatusOutOfGas, ErrGasUintOverflow)
		}
		return -1
	}
	cost, err := gasCallDataCopy(st.revision, st, st.stack, st.memory, memSize)
	if err != nil || !st.consumeGas(cost) {
		return -1
	}
	mOff, dOff, sz := st.stack.pop(), st.stack.pop(), st.stack.pop()
	data := getData(st.message.Input, dOff.Uint64(), sz.Uint64())
	st.memory.Set(mOff.Uint64(), sz.Uint64(), data)
	return ip + 1
}

func opCodeSize(ip int, st *ExecutionState) int {
	v := uint256.NewInt(uint64(st.host.GetCodeSize(st.message.CodeAddress)))
	st.stack.push(v)
	return ip + 1
}

func opCodeCopy(ip int, st *ExecutionState) int {
	memOff, size := st.stack.peek(), st.stack.Back(2)
	memSize, overflow := calcMemSize64(memOff, size)
	if overflow || !st.expandMemory(memSize) {
		if overflow {
			st.fail(StatusOutOfGas, ErrGasUintOverflow)
		}
		return -1
	}
	cost, err := gasCodeCopy(st.revision, st, st.stack, st.memory, memSize)
	if err != nil || !st.consumeGas(cost) {
		return -1
	}
	mOff, cOff, sz := st.stack.pop(), st.stack.pop(), st.stack.pop()
	buf := make([]byte, sz.Uint64()) // zero-initialized; CopyCode leaves the tail past code end as zero padding
	st.host.CopyCode(st.message.CodeAddress, int(cOff.Uint64()), buf)
	st.memory.Set(mOff.Uint64(), sz.Uint64(), buf)
	return ip + 1
}

func opGasPrice(ip int, st *ExecutionState) int {
	v := st.host.GetTxContext().GasPrice
	st.stack.push(&v)
	return ip + 1
}

func opExtCodeSize(ip int, st *ExecutionState) int {
	slot := st.stack.peek()
	addr := common.BytesToAddress(slot.Bytes())
	if st.revision.AtLeast(Berlin) {
		if st.host.AccessAccount(addr) == AccessCold {
			if !st.consumeGas(2600) {
				return -1
			}
		} else if !st.consumeGas(100) {
			return -1
		}
	}
	slot.SetUint64(uint64(st.host.GetCodeSize(addr)))
	return ip + 1
}

func opExtCodeCopy(ip int, st *ExecutionState) int {
	addrSlot, memOff, size := st.stack.peek(), st.stack.Back(1), st.stack.Back(3)
	memSize, overflow := calcMemSize64(memOff, size)
	if overflow || !st.expandMemory(memSize) {
		if overflow {
			st.fail(StatusOutOfGas, ErrGasUintOverflow)
		}
		return -1
	}
	addr := common.BytesToAddress(addrSlot.Bytes())
	if st.revision.AtLeast(Berlin) {
		if st.host.AccessAccount(addr) == AccessCold {
			if !st.consumeGas(2600) {
				return -1
			}
		} else if !st.consumeGas(100) {
			return -1
		}
	}
	cost, err := gasExtCodeCopy(st.revision, st, st.stack, st.memory, memSize)
	if err != nil || !st.consumeGas(cost) {
		return -1
	}
	st.stack.pop()
	mOff, cOff, sz := st.stack.pop(), st.stack.pop(), st.stack.pop()
	buf := make([]byte, sz.Uint64())
	st.host.CopyCode(addr, int(cOff.Uint64()), buf)
	st.memory.Set(mOff.Uint64(), sz.Uint64(), buf)
	return ip + 1
}

func opReturnDataSize(ip int, st *ExecutionState) int {
	v := uint256.NewInt(uint64(len(st.returnData)))
	st.stack.push(v)
	return ip + 1
}

func opReturnDataCopy(ip int, st *ExecutionState) int {
	memOff, dataOff, size := st.stack.peek(), st.stack.Back(1), st.stack.Back(2)
	end, overflow := calcMemSize64(dataOff, size)
	if overflow || end > uint64(len(st.returnData)) {
		st.fail(StatusOutOfMemory, ErrOutOfMemory)
		return -1
	}
	memSize, overflow := calcMemSize64(memOff, size)
	if overflow || !st.expandMemory(memSize) {
		if overflow {
			st.fail(StatusOutOfGas, ErrGasUintOverflow)
		}
		return -1
	}
	cost, err := gasReturnDataCopy(st.revision, st, st.stack, st.memory, memSize)
	if err != nil || !st.consumeGas(cost) {
		return -1
	}
	mOff, dOff, sz := st.stack.pop(), st.stack.pop(), st.stack.pop()
	st.memory.Set(mOff.Uint64(), sz.Uint64(), st.returnData[dOff.Uint64():dOff.Uint64()+sz.Uint64()])
	return ip + 1
}

func opExtCodeHash(ip int, st *ExecutionState) int {
	slot := st.stack.peek()
	addr := common.BytesToAddress(slot.Bytes())
	if st.revision.AtLeast(Berlin) {
		if st.host.AccessAccount(addr) == AccessCold {
			if !st.consumeGas(2600) {
				return -1
			}
		} else if !st.consumeGas(100) {
			return -1
		}
	}
	if !st.host.AccountExists(addr) {
		slot.Clear()
		return ip + 1
	}
	slot.SetBytes(st.host.GetCodeHash(addr).Bytes())
	return ip + 1
}

func opBlockHash(ip int, st *ExecutionState) int {
	num := st.stack.peek()
	h := st.host.GetBlockHash(num.Uint64())
	num.SetBytes(h.Bytes())
	return ip + 1
}

func opCoinbase(ip int, st *ExecutionState) int {
	v := new(uint256.Int).SetBytes(st.host.GetTxContext().Coinbase.Bytes())
	st.stack.push(v)
	return ip + 1
}

func opTimestamp(ip int, st *ExecutionState) int {
	v := uint256.NewInt(st.host.GetTxContext().Timestamp)
	st.stack.push(v)
	return ip + 1
}

func opNumber(ip int, st *ExecutionState) int {
	v := uint256.NewInt(st.host.GetTxContext().BlockNumber)
	st.stack.push(v)
	return ip + 1
}

func opDifficulty(ip int, st *ExecutionState) int {
	v := new(uint256.Int).SetBytes(st.host.GetTxContext().PrevRandao.Bytes())
	st.stack.push(v)
	return ip + 1
}

func opGasLimit(ip int, st *ExecutionState) int {
	v := uint256.NewInt(st.host.GetTxContext().GasLimit)
	st.stack.push(v)
	return ip + 1
}

func opChainId(ip int, st *ExecutionState) int {
	v := st.host.GetTxContext().ChainID
	st.stack.push(&v)
	return ip + 1
}

func opSelfBalance(ip int, st *ExecutionState) int {
	bal := st.host.GetBalance(st.message.Recipient)
	st.stack.push(&bal)
	return ip + 1
}

func opBaseFee(ip int, st *ExecutionState) int {
	v := st.host.GetTxContext().BaseFee
	st.stack.push(&v)
	return ip + 1
}

func opBlobBaseFee(ip int, st *ExecutionState) int {
	v := st.host.GetTxContext().BlobBaseFee
	st.stack.push(&v)
	return ip + 1
}

func opBlobHash(ip int, st *ExecutionState) int {
	idx := st.stack.peek()
	hashes := st.host.GetTxContext().BlobHashes
	if idx.IsUint64() && idx.Uint64() < uint64(len(hashes)) {
		idx.SetBytes(hashes[idx.Uint64()].Bytes())
	} else {
		idx.Clear()
	}
	return ip + 1
}

func opLog(ip int, st *ExecutionState) int {
	if st.message.IsStatic {
		st.fail(StatusStaticModeViolation, ErrWriteProtection)
		return -1
	}
	n := int(st.analysis.Instrs[ip].Op - LOG0)
	offset, size := st.stack.peek(), st.stack.Back(1)
	memSize, overflow := calcMemSize64(offset, size)
	if overflow || !st.expandMemory(memSize) {
		if overflow {
			st.fail(StatusOutOfGas, ErrGasUintOverflow)
		}
		return -1
	}
	cost, err := makeGasLog(n)(st.revision, st, st.stack, st.memory, memSize)
	if err != nil || !st.consumeGas(cost) {
		return -1
	}
	off, sz := st.stack.pop(), st.stack.pop()
	topics := make([]common.Hash, n)
	for i := 0; i < n; i++ {
		t := st.stack.pop()
		topics[i] = common.BytesToHash(t.Bytes())
	}
	data := st.memory.GetCopy(off.Uint64(), sz.Uint64())
	st.host.EmitLog(st.message.Recipient, topics, data)
	return ip + 1
}
