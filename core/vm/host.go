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

// StorageStatus classifies the effect an SSTORE has on a storage slot,
// relative to both its value at the start of the current frame and its
// value at the start of the whole transaction. The Host reports it from
// SetStorage; the engine's own SSTORE gas schedule (sstoreGas in
// gas_schedule.go) does not consult it and works from the original,
// current and new values directly.
type StorageStatus int

const (
	StorageUnchanged StorageStatus = iota
	StorageModified
	StorageDeleted
	StorageAdded
	StorageModifiedRestored
	StorageAddedDeleted
	StorageModifiedDeleted
)

// AccessStatus reports whether an account or storage slot had already been
// touched earlier in the transaction (EIP-2929). Cold accesses cost more;
// the first access marks the account or slot warm, and later accesses are
// charged the lower warm price.
type AccessStatus int

const (
	AccessCold AccessStatus = iota
	AccessWarm
)

// CallKind distinguishes the four message-send opcodes and the two
// contract-creation opcodes at the Host boundary.
type CallKind int

const (
	CallKindCall CallKind = iota
	CallKindDelegateCall
	CallKindCallCode
	CallKindStaticCall
	CallKindCreate
	CallKindCreate2
)

// TxContext carries the fields of the enclosing transaction and block that
// opcodes such as ORIGIN, GASPRICE, COINBASE, TIMESTAMP, NUMBER, GASLIMIT,
// CHAINID, BASEFEE and BLOBBASEFEE read. It is supplied once per top-level
// call and is immutable for the lifetime of the execution.
type TxContext struct {
	GasPrice    uint256.Int
	Origin      common.Address
	Coinbase    common.Address
	BlockNumber uint64
	Timestamp   uint64
	GasLimit    uint64
	PrevRandao  common.Hash // block DIFFICULTY pre-Merge, PREVRANDAO post-Merge
	ChainID     uint256.Int
	BaseFee     uint256.Int
	BlobBaseFee uint256.Int
	BlobHashes  []common.Hash
}

// Message describes a call or create frame about to be entered.
type Message struct {
	Kind          CallKind
	IsStatic      bool
	Depth         int
	Gas           uint64
	Recipient     common.Address
	Sender        common.Address
	Value         uint256.Int
	Input         []byte
	CodeAddress   common.Address // account whose code actually runs (differs from Recipient under DELEGATECALL/CALLCODE)
	Create2Salt   uint256.Int
}

// Result is what a Host (or the interpreter, for the top-level call) hands
// back once a frame has finished.
type Result struct {
	Status        StatusCode
	GasLeft       uint64
	GasRefund     uint64
	Output        []byte
	CreateAddress common.Address
}

// Host abstracts all interaction the interpreter has with the outside
// world: account and storage state, sub-calls, and block/transaction
// metadata. Concrete implementations range from a full state-trie-backed
// EVM (not part of this engine) to the in-memory reference host in
// core/vm/runtime, used for testing and standalone execution.
type Host interface {
	AccountExists(addr common.Address) bool

	GetStorage(addr common.Address, key common.Hash) common.Hash
	GetCommittedStorage(addr common.Address, key common.Hash) common.Hash
	SetStorage(addr common.Address, key, value common.Hash) StorageStatus

	// GetTransientStorage and SetTransientStorage back EIP-1153: a keyspace
	// distinct from persistent storage, unaffected by reverts within the
	// transaction and discarded entirely once it ends.
	GetTransientStorage(addr common.Address, key common.Hash) common.Hash
	SetTransientStorage(addr common.Address, key, value common.Hash)

	GetBalance(addr common.Address) uint256.Int
	GetNonce(addr common.Address) uint64
	GetCodeSize(addr common.Address) int
	GetCodeHash(addr common.Address) common.Hash
	CopyCode(addr common.Address, codeOffset int, buf []byte) int

	Selfdestruct(addr, beneficiary common.Address) bool

	Call(msg *Message) *Result

	GetTxContext() TxContext
	GetBlockHash(number uint64) common.Hash
	EmitLog(addr common.Address, topics []common.Hash, data []byte)

	AccessAccount(addr common.Address) AccessStatus
	AccessStorage(addr common.Address, key common.Hash) AccessStatus
}
