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

package runtime

import (
	"maps"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/DavidHarper414/Bchain-evmone/common"
	"github.com/holiman/uint256"
)

type account struct {
	balance       uint256.Int
	nonce         uint64
	storage       map[common.Hash]common.Hash
	selfdestructed bool
}

func newAccount() *account {
	return &account{storage: make(map[common.Hash]common.Hash)}
}

func (a *account) clone() *account {
	c := &account{balance: a.balance, nonce: a.nonce, selfdestructed: a.selfdestructed}
	c.storage = maps.Clone(a.storage)
	return c
}

// State is a minimal in-memory account database: balances, nonces and
// storage live in a plain map, while account code -- which can be large and
// is read far more often than it's written -- goes through a bounded
// fastcache.Cache the way a full node's state database fronts its trie
// reads with one.
type State struct {
	accounts map[common.Address]*account
	code     *fastcache.Cache
	// committed holds each account's storage as of the start of the
	// current top-level call, used by SetStorage to classify EIP-2200/2929
	// dirty-vs-clean transitions.
	committed map[common.Address]map[common.Hash]common.Hash

	snapshots []map[common.Address]*account
}

// NewState returns an empty account database with a 4 MiB code cache.
func NewState() *State {
	return &State{
		accounts:  make(map[common.Address]*account),
		code:      fastcache.New(4 << 20),
		committed: make(map[common.Address]map[common.Hash]common.Hash),
	}
}

func (s *State) getOrCreate(addr common.Address) *account {
	a, ok := s.accounts[addr]
	if !ok {
		a = newAccount()
		s.accounts[addr] = a
	}
	return a
}

func (s *State) Exists(addr common.Address) bool {
	a, ok := s.accounts[addr]
	if !ok {
		return false
	}
	return !a.balance.IsZero() || a.nonce != 0 || len(s.GetCode(addr)) != 0
}

func (s *State) GetBalance(addr common.Address) uint256.Int {
	if a, ok := s.accounts[addr]; ok {
		return a.balance
	}
	return uint256.Int{}
}

func (s *State) SetBalance(addr common.Address, v *uint256.Int) {
	s.getOrCreate(addr).balance = *v
}

func (s *State) AddBalance(addr common.Address, v *uint256.Int) {
	a := s.getOrCreate(addr)
	a.balance.Add(&a.balance, v)
}

func (s *State) GetNonce(addr common.Address) uint64 {
	if a, ok := s.accounts[addr]; ok {
		return a.nonce
	}
	return 0
}

func (s *State) SetNonce(addr common.Address, n uint64) {
	s.getOrCreate(addr).nonce = n
}

func (s *State) GetCode(addr common.Address) []byte {
	return s.code.Get(nil, addr.Bytes())
}

func (s *State) GetCodeSize(addr common.Address) int {
	return len(s.GetCode(addr))
}

func (s *State) SetCode(addr common.Address, code []byte) {
	s.code.Set(addr.Bytes(), code)
	s.getOrCreate(addr) // code alone should still make the account "exist"
}

func (s *State) GetStorage(addr common.Address, key common.Hash) common.Hash {
	if a, ok := s.accounts[addr]; ok {
		return a.storage[key]
	}
	return common.Hash{}
}

// GetCommittedStorage returns the value a slot held at the start of the
// current top-level call, before any writes made within it.
func (s *State) GetCommittedStorage(addr common.Address, key common.Hash) common.Hash {
	if m, ok := s.committed[addr]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return s.GetStorage(addr, key)
}

func (s *State) SetStorage(addr common.Address, key, value common.Hash) {
	a := s.getOrCreate(addr)
	if _, ok := s.committed[addr]; !ok {
		s.committed[addr] = make(map[common.Hash]common.Hash)
	}
	if _, ok := s.committed[addr][key]; !ok {
		s.committed[addr][key] = a.storage[key]
	}
	if value.IsZero() {
		delete(a.storage, key)
	} else {
		a.storage[key] = value
	}
}

func (s *State) MarkSelfdestructed(addr common.Address) {
	s.getOrCreate(addr).selfdestructed = true
}

// Snapshot captures the current account map (a shallow clone with each
// touched account deep-copied) and returns an index RevertToSnapshot can
// roll back to. Modeled on the copy-on-write snapshot stack a real
// state-trie journal keeps, simplified since this database is entirely
// in memory already.
func (s *State) Snapshot() int {
	clone := make(map[common.Address]*account, len(s.accounts))
	for addr, a := range s.accounts {
		clone[addr] = a.clone()
	}
	s.snapshots = append(s.snapshots, clone)
	return len(s.snapshots) - 1
}

func (s *State) RevertToSnapshot(id int) {
	s.accounts = s.snapshots[id]
	s.snapshots = s.snapshots[:id]
}
