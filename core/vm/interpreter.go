// Copyright 2014 The go-ethereum Authors
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
	"sync"

	"github.com/DavidHarper414/Bchain-evmone/log"
)

// analysisCacheEntry is the value cached per (revision, code hash).
type analysisCacheEntry struct {
	analysis *Analysis
}

// analysisCache memoizes Analysis by revision and code hash, since analyze
// is pure and the same deployed code is executed many times. It is a plain
// mutex-guarded map with no size bound; entries are never evicted.
type analysisCache struct {
	mu      sync.RWMutex
	entries map[analysisCacheKey]analysisCacheEntry
}

type analysisCacheKey struct {
	revision Revision
	codeHash [32]byte
}

func newAnalysisCache() *analysisCache {
	return &analysisCache{entries: make(map[analysisCacheKey]analysisCacheEntry)}
}

func (c *analysisCache) get(key analysisCacheKey) (*Analysis, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e.analysis, ok
}

func (c *analysisCache) put(key analysisCacheKey, a *Analysis) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = analysisCacheEntry{analysis: a}
}

var defaultAnalysisCache = newAnalysisCache()

// Analyze returns the (possibly cached) Analysis of code under rev.
func Analyze(rev Revision, codeHash [32]byte, code []byte) *Analysis {
	key := analysisCacheKey{revision: rev, codeHash: codeHash}
	if a, ok := defaultAnalysisCache.get(key); ok {
		return a
	}
	a := analyze(code, tableForRevision(rev))
	defaultAnalysisCache.put(key, a)
	return a
}

// Run executes analyzed code within the frame described by msg against
// host, until the frame reaches a terminal status, and returns the result.
// This is the dispatcher: a straight-line loop over direct-threaded
// function pointers with exactly two ways out, a block-begin precondition
// failure or a terminating handler (STOP/RETURN/REVERT/SELFDESTRUCT/
// INVALID/out-of-gas).
func Run(msg *Message, host Host, rev Revision, code []byte, codeHash [32]byte) *Result {
	analysis := Analyze(rev, codeHash, code)
	st := NewExecutionState(msg, host, rev, analysis)
	defer st.Release()

	log.Trace("executing frame", "depth", msg.Depth, "gas", msg.Gas, "kind", msg.Kind)

	ip := 0
	for ip >= 0 {
		instr := &analysis.Instrs[ip]
		ip = instr.Fn(ip, st)
	}

	res := st.Result()
	if st.status.Failed() {
		log.Debug("frame failed", "depth", msg.Depth, "status", st.status)
	}
	return res
}
