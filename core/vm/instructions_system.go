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

func opReturn(ip int, st *ExecutionState) int {
	off, size := st.stack.pop(), st.stack.pop()
	memSize, overflow := calcMemSize64(&off, &size)
	if overflow {
		st.fail(StatusOutOfGas, ErrGasUintOverflow)
		return -1
	}
	if !st.expandMemory(memSize) {
		return -1
	}
	st.output = st.memory.GetCopy(off.Uint64(), size.Uint64())
	st.status = StatusSuccess
	return -1
}

func opRevert(ip int, st *ExecutionState) int {
	off, size := st.stack.pop(), st.stack.pop()
	memSize, overflow := calcMemSize64(&off, &size)
	if overflow {
		st.fail(StatusOutOfGas, ErrGasUintOverflow)
		return -1
	}
	if !st.expandMemory(memSize) {
		return -1
	}
	st.output = st.memory.GetCopy(off.Uint64(), size.Uint64())
	st.status = StatusRevert
	st.err = ErrExecutionReverted
	return -1
}

func opSelfdestruct(ip int, st *ExecutionState) int {
	if st.message.IsStatic {
		st.fail(StatusStaticModeViolation, ErrWriteProtection)
		return -1
	}
	cost, err := gasSelfdestruct(st.revision, st, st.stack, st.memory, 0)
	if err != nil || !st.consumeGas(cost) {
		return -1
	}
	beneficiarySlot := st.stack.pop()
	beneficiary := common.BytesToAddress(beneficiarySlot.Bytes())
	recipientBalance := st.host.GetBalance(st.message.Recipient)
	hadBalance := !recipientBalance.IsZero()
	st.host.Selfdestruct(st.message.Recipient, beneficiary)
	if !st.revision.AtLeast(London) && hadBalance {
		st.gasRefund += params.SelfdestructRefundGas
	}
	st.status = StatusSuccess
	return -1
}

// genericCall implements CALL, CALLCODE, DELEGATECALL and STATICCALL. They
// differ only in whether a value is popped off the stack, whether the
// current frame's own address or the target's becomes the child's
// recipient/sender, and whether the child inherits the static flag.
func genericCall(ip int, st *ExecutionState, kind CallKind, hasValue bool) int {
	gasArg := st.stack.pop()
	addrSlot := st.stack.pop()
	var value uint256.Int
	if hasValue {
		value = st.stack.pop()
	}
	argsOff, argsSize := st.stack.pop(), st.stack.pop()
	retOff, retSize := st.stack.pop(), st.stack.pop()

	if kind == CallKindCall && !value.IsZero() && st.message.IsStatic {
		st.fail(StatusStaticModeViolation, ErrWriteProtection)
		return -1
	}

	addr := common.BytesToAddress(addrSlot.Bytes())

	argsMemSize, overflow := calcMemSize64(&argsOff, &argsSize)
	if overflow || !st.expandMemory(argsMemSize) {
		if overflow {
			st.fail(StatusOutOfGas, ErrGasUintOverflow)
		}
		return -1
	}
	retMemSize, overflow := calcMemSize64(&retOff, &retSize)
	if overflow || !st.expandMemory(retMemSize) {
		if overflow {
			st.fail(StatusOutOfGas, ErrGasUintOverflow)
		}
		return -1
	}

	accessGas := callAccessGas(st.revision, st.host, addr)
	var valueGas, newAccountGas uint64
	if hasValue && !value.IsZero() {
		valueGas = params.CallValueTransferGas
		if kind == CallKindCall && !st.host.AccountExists(addr) {
			newAccountGas = params.CallNewAccountGas
		}
	}
	base := accessGas + valueGas + newAccountGas
	if !st.consumeGas(base) {
		return -1
	}

	forwarded, err := callGas(st.revision, uint64(st.gasLeft), 0, &gasArg)
	if err != nil {
		st.fail(StatusOutOfGas, err)
		return -1
	}
	if !st.consumeGas(forwarded) {
		return -1
	}

	if st.message.Depth+1 > int(params.CallCreateDepth) {
		st.stack.push(zeroUint256())
		st.gasLeft += int64(forwarded) // refund: the sub-call never actually ran
		return ip + 1
	}

	if hasValue && !value.IsZero() {
		forwarded += params.CallStipend
	}

	input := st.memory.GetCopy(argsOff.Uint64(), argsSize.Uint64())

	sub := &Message{
		Kind:      kind,
		Depth:     st.message.Depth + 1,
		Gas:       forwarded,
		Input:     input,
		Value:     value,
		IsStatic:  st.message.IsStatic || kind == CallKindStaticCall,
	}
	switch kind {
	case CallKindDelegateCall:
		sub.Recipient = st.message.Recipient
		sub.Sender = st.message.Sender
		sub.Value = st.message.Value
		sub.CodeAddress = addr
	case CallKindCallCode:
		sub.Recipient = st.message.Recipient
		sub.Sender = st.message.Recipient
		sub.CodeAddress = addr
	default: // CallKindCall, CallKindStaticCall
		sub.Recipient = addr
		sub.Sender = st.message.Recipient
		sub.CodeAddress = addr
	}

	res := st.host.Call(sub)

	st.returnData = res.Output
	copySize := retSize.Uint64()
	if uint64(len(res.Output)) < copySize {
		copySize = uint64(len(res.Output))
	}
	if copySize > 0 {
		st.memory.Set(retOff.Uint64(), copySize, res.Output[:copySize])
	}

	st.gasLeft += int64(res.GasLeft)
	st.gasRefund += res.GasRefund

	if res.Status == StatusSuccess {
		st.stack.push(oneUint256())
	} else {
		st.stack.push(zeroUint256())
	}
	return ip + 1
}

func opCall(ip int, st *ExecutionState) int { return genericCall(ip, st, CallKindCall, true) }
func opCallCode(ip int, st *ExecutionState) int {
	return genericCall(ip, st, CallKindCallCode, true)
}
func opDelegateCall(ip int, st *ExecutionState) int {
	return genericCall(ip, st, CallKindDelegateCall, false)
}
func opStaticCall(ip int, st *ExecutionState) int {
	return genericCall(ip, st, CallKindStaticCall, false)
}

// genericCreate implements CREATE and CREATE2.
func genericCreate(ip int, st *ExecutionState, kind CallKind) int {
	if st.message.IsStatic {
		st.fail(StatusStaticModeViolation, ErrWriteProtection)
		return -1
	}
	value := st.stack.pop()
	offset, size := st.stack.pop(), st.stack.pop()
	var salt uint256.Int
	if kind == CallKindCreate2 {
		salt = st.stack.pop()
	}

	memSize, overflow := calcMemSize64(&offset, &size)
	if overflow || !st.expandMemory(memSize) {
		if overflow {
			st.fail(StatusOutOfGas, ErrGasUintOverflow)
		}
		return -1
	}

	initcodeLen := size.Uint64()
	if st.revision.AtLeast(Shanghai) && initcodeLen > params.MaxInitCodeSize {
		st.fail(StatusFailure, ErrMaxInitCodeSizeExceeded)
		return -1
	}
	extra := createInitcodeWordGas(st.revision, initcodeLen)
	if kind == CallKindCreate2 {
		extra += create2HashGas(initcodeLen)
	}
	if !st.consumeGas(extra) {
		return -1
	}

	if st.message.Depth+1 > int(params.CallCreateDepth) {
		st.stack.push(zeroUint256())
		return ip + 1
	}

	initcode := st.memory.GetCopy(offset.Uint64(), size.Uint64())

	forwarded, err := callGas(st.revision, uint64(st.gasLeft), 0, uint256.NewInt(uint64(st.gasLeft)))
	if err != nil {
		st.fail(StatusOutOfGas, err)
		return -1
	}
	if !st.consumeGas(forwarded) {
		return -1
	}

	var createAddr common.Address
	if kind == CallKindCreate {
		createAddr = crypto.CreateAddress(st.message.Recipient, st.host.GetNonce(st.message.Recipient))
	} else {
		initHash := crypto.Keccak256(initcode)
		createAddr = crypto.CreateAddress2(st.message.Recipient, salt.Bytes32(), initHash)
	}

	sub := &Message{
		Kind:        kind,
		Depth:       st.message.Depth + 1,
		Gas:         forwarded,
		Input:       initcode,
		Value:       value,
		Recipient:   createAddr,
		Sender:      st.message.Recipient,
		CodeAddress: createAddr,
		Create2Salt: salt,
	}

	res := st.host.Call(sub)
	st.gasLeft += int64(res.GasLeft)
	st.gasRefund += res.GasRefund

	if res.Status == StatusSuccess {
		st.returnData = nil
		addrInt := new(uint256.Int).SetBytes(res.CreateAddress.Bytes())
		st.stack.push(addrInt)
	} else {
		st.returnData = res.Output
		st.stack.push(zeroUint256())
	}
	return ip + 1
}

func opCreate(ip int, st *ExecutionState) int  { return genericCreate(ip, st, CallKindCreate) }
func opCreate2(ip int, st *ExecutionState) int { return genericCreate(ip, st, CallKindCreate2) }

func zeroUint256() *uint256.Int { return new(uint256.Int) }
func oneUint256() *uint256.Int  { return uint256.NewInt(1) }
