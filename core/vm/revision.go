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

// Revision identifies a protocol epoch. Revisions are totally ordered: a
// later revision's integer value is always greater than an earlier one's, so
// gating logic reads as a plain comparison (rev >= London).
//
// Upstream go-ethereum tracks fork activation with a bag of boolean flags on
// params.Rules (IsHomestead, IsEIP150, IsByzantium, ...) computed from block
// number and time against a chain config. This engine has no chain config or
// block context of its own -- the caller already resolved "which fork" before
// invoking it -- so a single ordered enum replaces that whole struct.
type Revision int

const (
	Frontier Revision = iota
	Homestead
	TangerineWhistle // EIP-150
	SpuriousDragon   // EIP-158
	Byzantium
	Constantinople
	Petersburg
	Istanbul
	Berlin  // EIP-2929/2930
	London  // EIP-1559/3529/3541
	Paris   // The Merge; DIFFICULTY -> PREVRANDAO
	Shanghai // EIP-3855 PUSH0, EIP-3860 initcode metering
	Cancun   // EIP-1153 transient storage, EIP-5656 MCOPY, EIP-4844 blobs
	Prague

	numRevisions
)

var revisionNames = [numRevisions]string{
	Frontier: "Frontier", Homestead: "Homestead", TangerineWhistle: "TangerineWhistle",
	SpuriousDragon: "SpuriousDragon", Byzantium: "Byzantium", Constantinople: "Constantinople",
	Petersburg: "Petersburg", Istanbul: "Istanbul", Berlin: "Berlin", London: "London",
	Paris: "Paris", Shanghai: "Shanghai", Cancun: "Cancun", Prague: "Prague",
}

func (r Revision) String() string {
	if r < 0 || r >= numRevisions {
		return "Unknown"
	}
	return revisionNames[r]
}

// AtLeast reports whether r is the given revision or a later one.
func (r Revision) AtLeast(min Revision) bool { return r >= min }
