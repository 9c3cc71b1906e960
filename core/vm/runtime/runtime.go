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

// Package runtime provides a convenience harness for running EVM code
// without wiring up a full blockchain: an in-memory Host implementation
// backed by a plain map of accounts, plus Execute/Create/Call entry points
// mirroring the shape of a state-trie-backed embedder's own driver code.
package runtime

import (
	"github.com/DavidHarper414/Bchain-evmone/common"
	"github.com/DavidHarper414/Bchain-evmone/core/vm"
	"github.com/DavidHarper414/Bchain-evmone/crypto"
	"github.com/holiman/uint256"

	mapset "github.com/deckarep/golang-set/v2"
)

// Config bundles everything needed to synthesize a Message and TxContext
// for a one-off execution: block and transaction context normally supplied
// by the enclosing chain, defaulted here the way a standalone test harness
// would.
type Config struct {
	Revision    vm.Revision
	Origin      common.Address
	GasLimit    uint64
	GasPrice    uint256.Int
	Value       uint256.Int
	Coinbase    common.Address
	BlockNumber uint64
	Time        uint64
	Difficulty  common.Hash
	BaseFee     uint256.Int
	BlobBaseFee uint256.Int
	BlobHashes  []common.Hash
	ChainID     uint256.Int

	State *State
}

func setDefaults(cfg *Config) {
	if cfg.GasLimit == 0 {
		cfg.GasLimit = 30_000_000
	}
	if cfg.ChainID.IsZero() {
		cfg.ChainID.SetUint64(1)
	}
	if cfg.State == nil {
		cfg.State = NewState()
	}
}

// Execute runs code as if freshly deployed at an ephemeral address, passing
// input as calldata. It is meant for quickly exercising a snippet of code
// against a fresh in-memory account set, the way a unit test would.
func Execute(code, input []byte, cfg *Config) (output []byte, gasLeft uint64, err error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	address := common.BytesToAddress(crypto.Keccak256(code)[12:])
	cfg.State.SetCode(address, code)

	msg := &vm.Message{
		Kind:        vm.CallKindCall,
		Depth:       0,
		Gas:         cfg.GasLimit,
		Recipient:   address,
		Sender:      cfg.Origin,
		CodeAddress: address,
		Value:       cfg.Value,
		Input:       input,
	}
	host := newHost(cfg)
	res := vm.Execute(msg, host, cfg.Revision, code)
	return finish(res)
}

// Create deploys code as init code and returns the deployed contract's
// runtime bytecode together with its assigned address.
func Create(code []byte, cfg *Config) (output []byte, address common.Address, gasLeft uint64, err error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	nonce := cfg.State.GetNonce(cfg.Origin)
	address = crypto.CreateAddress(cfg.Origin, nonce)
	cfg.State.SetNonce(cfg.Origin, nonce+1)

	msg := &vm.Message{
		Kind:        vm.CallKindCreate,
		Depth:       0,
		Gas:         cfg.GasLimit,
		Recipient:   address,
		Sender:      cfg.Origin,
		CodeAddress: address,
		Value:       cfg.Value,
		Input:       code,
	}
	host := newHost(cfg)
	res := vm.Execute(msg, host, cfg.Revision, code)
	if res.Status == vm.StatusSuccess {
		cfg.State.SetCode(address, res.Output)
	}
	output, gasLeft, err = finish(res)
	return output, address, gasLeft, err
}

// Call invokes previously-deployed code at address.
func Call(address common.Address, input []byte, cfg *Config) (output []byte, gasLeft uint64, err error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	code := cfg.State.GetCode(address)
	msg := &vm.Message{
		Kind:        vm.CallKindCall,
		Depth:       0,
		Gas:         cfg.GasLimit,
		Recipient:   address,
		Sender:      cfg.Origin,
		CodeAddress: address,
		Value:       cfg.Value,
		Input:       input,
	}
	host := newHost(cfg)
	res := vm.Execute(msg, host, cfg.Revision, code)
	return finish(res)
}

func finish(res *vm.Result) ([]byte, uint64, error) {
	switch res.Status {
	case vm.StatusSuccess:
		return res.Output, res.GasLeft, nil
	case vm.StatusRevert:
		return res.Output, res.GasLeft, vm.ErrExecutionReverted
	default:
		return nil, res.GasLeft, vm.ErrOutOfGas
	}
}

// hostAdapter implements vm.Host against a *State, tracking the EIP-2929
// warm-address and warm-storage-key sets for the lifetime of one top-level
// transaction with mapset.Set, the way a real state-trie-backed host would
// track its access list.
type hostAdapter struct {
	cfg           *Config
	state         *State
	warmAddresses mapset.Set[common.Address]
	warmStorage   mapset.Set[storageKey]
	// transientStorage backs EIP-1153: a keyspace separate from state.State,
	// scoped to this hostAdapter's own top-level call and never persisted or
	// snapshotted, so it simply vanishes once the transaction ends.
	transientStorage map[storageKey]common.Hash
	logs             []logEntry
}

type storageKey struct {
	addr common.Address
	key  common.Hash
}

type logEntry struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

func newHost(cfg *Config) *hostAdapter {
	h := &hostAdapter{
		cfg:              cfg,
		state:            cfg.State,
		warmAddresses:    mapset.NewSet[common.Address](),
		warmStorage:      mapset.NewSet[storageKey](),
		transientStorage: make(map[storageKey]common.Hash),
	}
	h.warmAddresses.Add(cfg.Origin)
	h.warmAddresses.Add(cfg.Coinbase)
	h.state.committed = make(map[common.Address]map[common.Hash]common.Hash)
	return h
}

func (h *hostAdapter) AccountExists(addr common.Address) bool {
	return h.state.Exists(addr)
}

func (h *hostAdapter) GetStorage(addr common.Address, key common.Hash) common.Hash {
	return h.state.GetStorage(addr, key)
}

func (h *hostAdapter) GetCommittedStorage(addr common.Address, key common.Hash) common.Hash {
	return h.state.GetCommittedStorage(addr, key)
}

func (h *hostAdapter) SetStorage(addr common.Address, key, value common.Hash) vm.StorageStatus {
	original := h.state.GetCommittedStorage(addr, key)
	current := h.state.GetStorage(addr, key)
	h.state.SetStorage(addr, key, value)

	switch {
	case current == value:
		return vm.StorageUnchanged
	case original == current:
		if value.IsZero() {
			return vm.StorageDeleted
		}
		return vm.StorageAdded
	default:
		if original == value {
			if original.IsZero() {
				return vm.StorageAddedDeleted
			}
			return vm.StorageModifiedRestored
		}
		if value.IsZero() {
			return vm.StorageModifiedDeleted
		}
		return vm.StorageModified
	}
}

func (h *hostAdapter) GetTransientStorage(addr common.Address, key common.Hash) common.Hash {
	return h.transientStorage[storageKey{addr: addr, key: key}]
}

func (h *hostAdapter) SetTransientStorage(addr common.Address, key, value common.Hash) {
	h.transientStorage[storageKey{addr: addr, key: key}] = value
}

func (h *hostAdapter) GetBalance(addr common.Address) uint256.Int {
	return h.state.GetBalance(addr)
}

func (h *hostAdapter) GetNonce(addr common.Address) uint64 {
	return h.state.GetNonce(addr)
}

func (h *hostAdapter) GetCodeSize(addr common.Address) int {
	return len(h.state.GetCode(addr))
}

func (h *hostAdapter) GetCodeHash(addr common.Address) common.Hash {
	code := h.state.GetCode(addr)
	if len(code) == 0 {
		return common.Hash{}
	}
	return crypto.Keccak256Hash(code)
}

func (h *hostAdapter) CopyCode(addr common.Address, codeOffset int, buf []byte) int {
	code := h.state.GetCode(addr)
	if codeOffset >= len(code) {
		return 0
	}
	return copy(buf, code[codeOffset:])
}

func (h *hostAdapter) Selfdestruct(addr, beneficiary common.Address) bool {
	bal := h.state.GetBalance(addr)
	h.state.AddBalance(beneficiary, &bal)
	h.state.SetBalance(addr, new(uint256.Int))
	h.state.MarkSelfdestructed(addr)
	return true
}

func (h *hostAdapter) Call(msg *vm.Message) *vm.Result {
	if !msg.Value.IsZero() {
		bal := h.state.GetBalance(msg.Sender)
		if bal.Lt(&msg.Value) {
			return &vm.Result{Status: vm.StatusFailure}
		}
	}

	switch msg.Kind {
	case vm.CallKindCreate, vm.CallKindCreate2:
		return h.runCreate(msg)
	default:
		return h.runCall(msg)
	}
}

func (h *hostAdapter) runCall(msg *vm.Message) *vm.Result {
	snapshot := h.state.Snapshot()
	if !msg.Value.IsZero() {
		h.transfer(msg.Sender, msg.Recipient, &msg.Value)
	}
	code := h.state.GetCode(msg.CodeAddress)
	res := vm.Execute(msg, h, h.cfg.Revision, code)
	if res.Status != vm.StatusSuccess {
		h.state.RevertToSnapshot(snapshot)
	}
	return res
}

func (h *hostAdapter) runCreate(msg *vm.Message) *vm.Result {
	if h.state.GetCodeSize(msg.Recipient) > 0 || h.state.GetNonce(msg.Recipient) > 0 {
		return &vm.Result{Status: vm.StatusFailure}
	}
	snapshot := h.state.Snapshot()
	h.state.SetNonce(msg.Recipient, 1)
	if !msg.Value.IsZero() {
		h.transfer(msg.Sender, msg.Recipient, &msg.Value)
	}
	res := vm.Execute(msg, h, h.cfg.Revision, msg.Input)
	if res.Status != vm.StatusSuccess {
		h.state.RevertToSnapshot(snapshot)
		return res
	}
	if len(res.Output) > 24576 {
		h.state.RevertToSnapshot(snapshot)
		return &vm.Result{Status: vm.StatusFailure}
	}
	depositCost := uint64(len(res.Output)) * 200
	if res.GasLeft < depositCost {
		h.state.RevertToSnapshot(snapshot)
		return &vm.Result{Status: vm.StatusFailure}
	}
	res.GasLeft -= depositCost
	h.state.SetCode(msg.Recipient, res.Output)
	res.CreateAddress = msg.Recipient
	return res
}

func (h *hostAdapter) transfer(from, to common.Address, amount *uint256.Int) {
	fromBal := h.state.GetBalance(from)
	fromBal.Sub(&fromBal, amount)
	h.state.SetBalance(from, &fromBal)
	toBal := h.state.GetBalance(to)
	toBal.Add(&toBal, amount)
	h.state.SetBalance(to, &toBal)
}

func (h *hostAdapter) GetTxContext() vm.TxContext {
	return vm.TxContext{
		GasPrice:    h.cfg.GasPrice,
		Origin:      h.cfg.Origin,
		Coinbase:    h.cfg.Coinbase,
		BlockNumber: h.cfg.BlockNumber,
		Timestamp:   h.cfg.Time,
		GasLimit:    h.cfg.GasLimit,
		PrevRandao:  h.cfg.Difficulty,
		ChainID:     h.cfg.ChainID,
		BaseFee:     h.cfg.BaseFee,
		BlobBaseFee: h.cfg.BlobBaseFee,
		BlobHashes:  h.cfg.BlobHashes,
	}
}

func (h *hostAdapter) GetBlockHash(number uint64) common.Hash {
	return crypto.Keccak256Hash([]byte("block"), uint64ToBytes(number))
}

func (h *hostAdapter) EmitLog(addr common.Address, topics []common.Hash, data []byte) {
	h.logs = append(h.logs, logEntry{Address: addr, Topics: topics, Data: data})
}

func (h *hostAdapter) AccessAccount(addr common.Address) vm.AccessStatus {
	if h.warmAddresses.Contains(addr) {
		return vm.AccessWarm
	}
	h.warmAddresses.Add(addr)
	return vm.AccessCold
}

func (h *hostAdapter) AccessStorage(addr common.Address, key common.Hash) vm.AccessStatus {
	sk := storageKey{addr: addr, key: key}
	if h.warmStorage.Contains(sk) {
		return vm.AccessWarm
	}
	h.warmStorage.Add(sk)
	return vm.AccessCold
}

func uint64ToBytes(n uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(n)
		n >>= 8
	}
	return b
}
