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
	"sort"

	"github.com/holiman/uint256"
)

// BlockInfo is the precomputed cost and stack-usage summary of one basic
// block: every instruction from a block-begin up to (and including) the
// next block terminator. Folding per-instruction bookkeeping into a single
// struct checked once at block entry is what lets the dispatcher's hot loop
// skip gas and stack-height checks on every other instruction.
type BlockInfo struct {
	// BaseGasCost is the sum of every instruction's static base gas cost in
	// the block. It cannot overflow uint32: code is capped at
	// params.MaxCodeSize bytes and no opcode's base cost exceeds a small
	// constant.
	BaseGasCost uint32

	// StackRequired is the minimum stack height, measured at block entry,
	// needed to execute every instruction in the block without underflow.
	StackRequired int16

	// StackMaxGrowth is the largest the stack can grow above its
	// block-entry height at any point while executing the block.
	StackMaxGrowth int16
}

// InstructionKind discriminates the payload carried by an Instruction.
type InstructionKind int

const (
	ArgNone InstructionKind = iota
	ArgSmallPush                // immediate value fits in 64 bits, stored inline
	ArgLargePush                // immediate value stored as a separately allocated *uint256.Int
	ArgBlock                    // this Instruction is a block-begin; arg is the block's BlockInfo
)

// InstructionArgument is the decoded operand of one instruction in the
// analyzed stream. Exactly one field is meaningful, selected by Kind.
type InstructionArgument struct {
	Kind           InstructionKind
	SmallPushValue uint64
	PushValue      *uint256.Int
	Block          BlockInfo
}

// instrFn is a direct-threaded instruction handler. It executes one
// instruction (or one block-begin check) and returns the index of the next
// instruction to run, or a negative index once execution has terminated.
type instrFn func(ip int, st *ExecutionState) int

// Instruction is one entry of the analyzed instruction stream: a bound
// handler plus its decoded argument. The dispatcher never inspects the
// original opcode again once analysis has run.
type Instruction struct {
	Op     OpCode
	Fn     instrFn
	Arg    InstructionArgument
	Offset int32 // byte offset of this instruction in the original code; used by PC
}

// Analysis is the immutable output of analyzing one contract's code under
// one revision. It contains no reference to any particular frame and may be
// shared, read-only, by any number of concurrently executing frames running
// the same code -- callers are expected to cache it keyed by
// (revision, code hash).
type Analysis struct {
	Instrs []Instruction

	// jumpdestOffsets and jumpdestTargets are parallel, sorted-by-offset
	// slices: jumpdestOffsets[i] is a byte offset in the original code that
	// is a valid JUMPDEST, and jumpdestTargets[i] is the index into Instrs
	// that a JUMP/JUMPI landing there should continue at.
	jumpdestOffsets []int32
	jumpdestTargets []int32
}

// FindJumpdest maps a JUMP/JUMPI destination, given as a byte offset in the
// original code, to an instruction-stream index. It returns -1 if offset is
// not a valid jump destination.
func (a *Analysis) FindJumpdest(offset uint64) int {
	if offset > 0x7fffffff {
		return -1
	}
	off32 := int32(offset)
	i := sort.Search(len(a.jumpdestOffsets), func(i int) bool {
		return a.jumpdestOffsets[i] >= off32
	})
	if i < len(a.jumpdestOffsets) && a.jumpdestOffsets[i] == off32 {
		return int(a.jumpdestTargets[i])
	}
	return -1
}

func isBlockTerminator(op OpCode) bool {
	switch op {
	case JUMP, JUMPI, STOP, RETURN, REVERT, SELFDESTRUCT, INVALID:
		return true
	default:
		return false
	}
}

// analyze performs the single-pass code analysis described in package
// vm's design: it walks code once, emitting one Instruction per source
// opcode (skipping PUSH immediates), injecting a block-begin instruction at
// offset 0, after every block terminator, and at every JUMPDEST, and
// accumulating each block's BlockInfo as it goes. The result is terminated
// with a synthetic STOP so the dispatcher can never run off the end of the
// stream.
func analyze(code []byte, table *OpTable) *Analysis {
	a := &Analysis{
		Instrs: make([]Instruction, 0, len(code)+2),
	}

	// blockBeginIdx is the index in a.Instrs of the block-begin instruction
	// currently accumulating cost; blockInfo is that block's running totals.
	// height is the stack height relative to the block's start (0 at
	// block-begin); maxHeight is the highest height reached so far in the
	// block, used to derive StackMaxGrowth.
	var (
		blockBeginIdx = -1
		blockInfo     BlockInfo
		height        int16
		maxHeight     int16
		nextOffset    int32
	)

	openBlock := func() {
		blockBeginIdx = len(a.Instrs)
		blockInfo = BlockInfo{}
		height = 0
		maxHeight = 0
		a.Instrs = append(a.Instrs, Instruction{
			Op:     JUMPDEST,
			Fn:     opBeginBlock,
			Offset: nextOffset,
		})
	}

	closeBlock := func() {
		if blockBeginIdx >= 0 {
			a.Instrs[blockBeginIdx].Arg = InstructionArgument{Kind: ArgBlock, Block: blockInfo}
		}
	}

	openBlock()

	for pc := 0; pc < len(code); {
		startPC := pc
		op := OpCode(code[pc])

		if op == JUMPDEST {
			closeBlock()
			offset := int32(pc)
			a.jumpdestOffsets = append(a.jumpdestOffsets, offset)
			a.jumpdestTargets = append(a.jumpdestTargets, int32(len(a.Instrs)))
			nextOffset = offset
			openBlock()
			blockInfo.BaseGasCost += uint32(table[JUMPDEST].BaseGas)
			pc++
			continue
		}

		entry := table[op]
		blockInfo.BaseGasCost += uint32(entry.BaseGas)

		// need is how far below the block's starting height this
		// instruction reaches; the block as a whole requires at least
		// -min(need) items on entry to never underflow.
		need := height - int16(entry.StackIn)
		if need < blockInfo.StackRequired {
			blockInfo.StackRequired = need
		}

		height += int16(entry.StackDelta)
		if height > maxHeight {
			maxHeight = height
		}
		if maxHeight > blockInfo.StackMaxGrowth {
			blockInfo.StackMaxGrowth = maxHeight
		}

		inst := Instruction{Op: op, Fn: entry.Fn, Offset: int32(startPC)}

		if op >= PUSH1 && op <= PUSH32 {
			n := int(op-PUSH1) + 1
			start := pc + 1
			end := start + n
			var buf [32]byte
			if end > len(code) {
				copy(buf[32-n:], code[start:])
			} else {
				copy(buf[32-n:], code[start:end])
			}
			if n <= 8 {
				var v uint64
				for _, b := range buf[32-n:] {
					v = v<<8 | uint64(b)
				}
				inst.Arg = InstructionArgument{Kind: ArgSmallPush, SmallPushValue: v}
			} else {
				val := new(uint256.Int).SetBytes(buf[:])
				inst.Arg = InstructionArgument{Kind: ArgLargePush, PushValue: val}
			}
			pc += 1 + n
		} else {
			pc++
		}

		a.Instrs = append(a.Instrs, inst)

		if isBlockTerminator(op) {
			closeBlock()
			nextOffset = int32(pc)
			openBlock()
		}
	}

	closeBlock()

	// Fix up StackRequired: the running fold above computed the most
	// negative "height below block start" demanded anywhere in the block;
	// negate it into the positive minimum-stack-height convention used by
	// the block-begin check (stack.size() >= StackRequired).
	for i := range a.Instrs {
		if a.Instrs[i].Op == JUMPDEST && a.Instrs[i].Fn != nil {
			bi := a.Instrs[i].Arg.Block
			if bi.StackRequired < 0 {
				bi.StackRequired = -bi.StackRequired
			} else {
				bi.StackRequired = 0
			}
			a.Instrs[i].Arg.Block = bi
		}
	}

	a.Instrs = append(a.Instrs, Instruction{Op: STOP, Fn: table[STOP].Fn, Offset: int32(len(code))})

	return a
}
