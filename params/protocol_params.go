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

// Package params holds the named gas constants referenced by the per-revision
// gas schedule. Values and names follow the Ethereum Yellow Paper and its
// amending EIPs.
package params

const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20

	SloadGasFrontier uint64 = 50
	SloadGasEIP150   uint64 = 200
	SloadGasEIP1884  uint64 = 800
	SloadGasEIP2200  uint64 = 800

	CallValueTransferGas uint64 = 9000 // Paid for CALL when the value transfer is non-zero.
	CallNewAccountGas    uint64 = 25000
	CallStipend          uint64 = 2300 // Free gas given at beginning of a value-carrying call.

	QuadCoeffDiv uint64 = 512 // Divisor for the quadratic term of the memory cost equation.
	MemoryGas    uint64 = 3

	LogGas      uint64 = 375
	LogTopicGas uint64 = 375
	LogDataGas  uint64 = 8

	Keccak256Gas     uint64 = 30
	Keccak256WordGas uint64 = 6

	InitCodeWordGas uint64 = 2 // EIP-3860

	CopyGas uint64 = 3

	SstoreSetGas   uint64 = 20000
	SstoreResetGas uint64 = 5000
	SstoreClearGas uint64 = 5000
	SstoreRefundGas uint64 = 15000

	SstoreSentryGasEIP2200            uint64 = 2300
	SstoreSetGasEIP2200               uint64 = 20000
	SstoreResetGasEIP2200             uint64 = 5000
	SstoreClearsScheduleRefundEIP2200 uint64 = 15000

	ColdAccountAccessCostEIP2929 uint64 = 2600
	ColdSloadCostEIP2929         uint64 = 2100
	WarmStorageReadCostEIP2929   uint64 = 100

	TxAccessListAddressGas   uint64 = 2400
	TxAccessListStorageKeyGas uint64 = 1900

	// SstoreClearsScheduleRefundEIP3529 = SstoreResetGasEIP2200 - ColdSloadCostEIP2929 + TxAccessListStorageKeyGas
	SstoreClearsScheduleRefundEIP3529 uint64 = SstoreResetGasEIP2200 - ColdSloadCostEIP2929 + TxAccessListStorageKeyGas

	RefundQuotient         uint64 = 2 // Pre-London: at most 1/2 of gas used may be refunded.
	RefundQuotientEIP3529  uint64 = 5 // London+: at most 1/5 of gas used may be refunded.

	JumpdestGas uint64 = 1

	CreateGas               uint64 = 32000
	Create2Gas              uint64 = 32000
	CreateDataGas           uint64 = 200 // per byte of deployed code (EIP-170 deposit cost)
	CreateBySelfdestructGas uint64 = 25000

	ExpGas         uint64 = 10
	ExpByteFrontier uint64 = 10
	ExpByteEIP158   uint64 = 50

	CallGasFrontier uint64 = 40
	CallGasEIP150   uint64 = 700

	BalanceGasFrontier uint64 = 20
	BalanceGasEIP150   uint64 = 400
	BalanceGasEIP1884  uint64 = 700

	ExtcodeSizeGasFrontier uint64 = 20
	ExtcodeSizeGasEIP150   uint64 = 700

	ExtcodeCopyBaseFrontier uint64 = 20
	ExtcodeCopyBaseEIP150   uint64 = 700

	ExtcodeHashGasConstantinople uint64 = 400
	ExtcodeHashGasEIP1884        uint64 = 700

	SelfdestructGasEIP150 uint64 = 5000
	SelfdestructRefundGas uint64 = 24000 // pre-London only

	CallCreateDepth uint64 = 1024
	StackLimit      uint64 = 1024

	MaxCodeSize     = 24576     // EIP-170
	MaxInitCodeSize = 2 * 24576 // EIP-3860
)
