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

import "github.com/holiman/uint256"

// opBeginBlock is the intrinsic instruction the analyzer injects at every
// basic block boundary. It is the sole place gas and stack sufficiency are
// checked for an entire block: individual instructions inside the block
// trust that these preconditions already hold.
func opBeginBlock(ip int, st *ExecutionState) int {
	block := st.analysis.Instrs[ip].Arg.Block
	if st.gasLeft < int64(block.BaseGasCost) {
		st.fail(StatusOutOfGas, ErrOutOfGas)
		return -1
	}
	if st.stack.len() < int(block.StackRequired) {
		st.fail(StatusStackUnderflow, ErrStackUnderflow)
		return -1
	}
	if st.stack.len()+int(block.StackMaxGrowth) > stackLimit {
		st.fail(StatusStackOverflow, ErrStackOverflow)
		return -1
	}
	st.gasLeft -= int64(block.BaseGasCost)
	st.currentBlockCost = block.BaseGasCost
	return ip + 1
}

func opUndefined(ip int, st *ExecutionState) int {
	st.fail(StatusInvalidInstruction, ErrInvalidInstruction)
	return -1
}

func opStop(ip int, st *ExecutionState) int {
	st.status = StatusSuccess
	return -1
}

func opAdd(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	b.Add(&a, b)
	return ip + 1
}

func opMul(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	b.Mul(&a, b)
	return ip + 1
}

func opSub(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	b.Sub(&a, b)
	return ip + 1
}

func opDiv(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	b.Div(&a, b)
	return ip + 1
}

func opSdiv(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	b.SDiv(&a, b)
	return ip + 1
}

func opMod(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	b.Mod(&a, b)
	return ip + 1
}

func opSmod(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	b.SMod(&a, b)
	return ip + 1
}

func opAddmod(ip int, st *ExecutionState) int {
	a, b, n := st.stack.pop(), st.stack.pop(), st.stack.peek()
	n.AddMod(&a, &b, n)
	return ip + 1
}

func opMulmod(ip int, st *ExecutionState) int {
	a, b, n := st.stack.pop(), st.stack.pop(), st.stack.peek()
	n.MulMod(&a, &b, n)
	return ip + 1
}

func opExp(ip int, st *ExecutionState) int {
	cost, err := gasExp(st.revision, st, st.stack, st.memory, 0)
	if err != nil {
		st.fail(StatusOutOfGas, ErrGasUintOverflow)
		return -1
	}
	if !st.consumeGas(cost) {
		return -1
	}
	base, exponent := st.stack.pop(), st.stack.peek()
	exponent.Exp(&base, exponent)
	return ip + 1
}

func opSignExtend(ip int, st *ExecutionState) int {
	back, num := st.stack.pop(), st.stack.peek()
	num.ExtendSign(num, &back)
	return ip + 1
}

func opLt(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	if a.Lt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return ip + 1
}

func opGt(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	if a.Gt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return ip + 1
}

func opSlt(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	if a.Slt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return ip + 1
}

func opSgt(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	if a.Sgt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return ip + 1
}

func opEq(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	if a.Eq(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return ip + 1
}

func opIszero(ip int, st *ExecutionState) int {
	a := st.stack.peek()
	if a.IsZero() {
		a.SetOne()
	} else {
		a.Clear()
	}
	return ip + 1
}

func opAnd(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	b.And(&a, b)
	return ip + 1
}

func opOr(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	b.Or(&a, b)
	return ip + 1
}

func opXor(ip int, st *ExecutionState) int {
	a, b := st.stack.pop(), st.stack.peek()
	b.Xor(&a, b)
	return ip + 1
}

func opNot(ip int, st *ExecutionState) int {
	a := st.stack.peek()
	a.Not(a)
	return ip + 1
}

func opByte(ip int, st *ExecutionState) int {
	th, val := st.stack.pop(), st.stack.peek()
	val.Byte(&th)
	return ip + 1
}

func opShl(ip int, st *ExecutionState) int {
	shift, value := st.stack.pop(), st.stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return ip + 1
}

func opShr(ip int, st *ExecutionState) int {
	shift, value := st.stack.pop(), st.stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return ip + 1
}

func opSar(ip int, st *ExecutionState) int {
	shift, value := st.stack.pop(), st.stack.peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return ip + 1
	}
	n := uint(shift.Uint64())
	value.SRsh(value, n)
	return ip + 1
}

func opPop(ip int, st *ExecutionState) int {
	st.stack.pop()
	return ip + 1
}

func opPush(ip int, st *ExecutionState) int {
	arg := &st.analysis.Instrs[ip].Arg
	switch arg.Kind {
	case ArgSmallPush:
		v := uint256.NewInt(arg.SmallPushValue)
		st.stack.push(v)
	case ArgLargePush:
		st.stack.push(arg.PushValue)
	default:
		var zero uint256.Int
		st.stack.push(&zero)
	}
	return ip + 1
}

func opPush0(ip int, st *ExecutionState) int {
	var zero uint256.Int
	st.stack.push(&zero)
	return ip + 1
}

func opDup(ip int, st *ExecutionState) int {
	n := int(st.analysis.Instrs[ip].Op-DUP1) + 1
	st.stack.dup(n)
	return ip + 1
}

func opSwap(ip int, st *ExecutionState) int {
	n := int(st.analysis.Instrs[ip].Op-SWAP1) + 1
	st.stack.swap(n)
	return ip + 1
}

func opPc(ip int, st *ExecutionState) int {
	v := uint256.NewInt(uint64(st.analysis.Instrs[ip].Offset))
	st.stack.push(v)
	return ip + 1
}

func opMsize(ip int, st *ExecutionState) int {
	v := uint256.NewInt(uint64(st.memory.Len()))
	st.stack.push(v)
	return ip + 1
}

func opGasOp(ip int, st *ExecutionState) int {
	v := uint256.NewInt(uint64(st.gasLeft))
	st.stack.push(v)
	return ip + 1
}

func opJump(ip int, st *ExecutionState) int {
	dest := st.stack.pop()
	target := st.analysis.FindJumpdest(dest.Uint64())
	if !dest.IsUint64() || target < 0 {
		st.fail(StatusBadJumpDestination, ErrBadJumpDestination)
		return -1
	}
	return target
}

func opJumpi(ip int, st *ExecutionState) int {
	dest, cond := st.stack.pop(), st.stack.pop()
	if cond.IsZero() {
		return ip + 1
	}
	target := st.analysis.FindJumpdest(dest.Uint64())
	if !dest.IsUint64() || target < 0 {
		st.fail(StatusBadJumpDestination, ErrBadJumpDestination)
		return -1
	}
	return target
}
