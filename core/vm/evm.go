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

import "github.com/DavidHarper414/Bchain-evmone/crypto"

// Execute runs the top-level message against host under revision rev. It is
// the single entry point an embedder calls to start a transaction; every
// CALL/CREATE encountered while executing code re-enters through
// Host.Call, which is expected to eventually call back into Run for the
// callee's own code (see core/vm/runtime for a reference Host that does
// exactly this).
func Execute(msg *Message, host Host, rev Revision, code []byte) *Result {
	codeHash := codeHashOf(code)
	return Run(msg, host, rev, code, codeHash)
}

func codeHashOf(code []byte) [32]byte {
	var h [32]byte
	copy(h[:], crypto.Keccak256(code))
	return h
}
