// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// An opsym is an internal symbol used to associate an opcode's data
// with its instruction.
type opsym byte

const (
	symADC opsym = iota
	symAND
	symASL
	symBCC
	symBCS
	symBEQ
	symBIT
	symBMI
	symBNE
	symBPL
	symBRA
	symBRK
	symBVC
	symBVS
	symCLC
	symCLD
	symCLI
	symCLV
	symCMP
	symCPX
	symCPY
	symDEC
	symDEX
	symDEY
	symEOR
	symINC
	symINX
	symINY
	symJMP
	symJSR
	symLDA
	symLDX
	symLDY
	symLSR
	symNOP
	symORA
	symPHA
	symPHP
	symPHX
	symPHY
	symPLA
	symPLP
	symPLX
	symPLY
	symROL
	symROR
	symRTI
	symRTS
	symSBC
	symSEC
	symSED
	symSEI
	symSTA
	symSTZ
	symSTX
	symSTY
	symTAX
	symTAY
	symTRB
	symTSB
	symTSX
	symTXA
	symTXS
	symTYA
)

// Per-instruction data shared by all of its addressing modes.
type opcodeInfo struct {
	sym    opsym
	name   string
	flags  Status // flags modified by the instruction
	branch bool   // conditional or unconditional relative branch
}

var info = []opcodeInfo{
	{symADC, "ADC", nvzc, false},
	{symAND, "AND", nz, false},
	{symASL, "ASL", nzc, false},
	{symBCC, "BCC", 0, true},
	{symBCS, "BCS", 0, true},
	{symBEQ, "BEQ", 0, true},
	{symBIT, "BIT", Negative | Overflow | Zero, false},
	{symBMI, "BMI", 0, true},
	{symBNE, "BNE", 0, true},
	{symBPL, "BPL", 0, true},
	{symBRA, "BRA", 0, true},
	{symBRK, "BRK", Break | InterruptDisable, false},
	{symBVC, "BVC", 0, true},
	{symBVS, "BVS", 0, true},
	{symCLC, "CLC", Carry, false},
	{symCLD, "CLD", Decimal, false},
	{symCLI, "CLI", InterruptDisable, false},
	{symCLV, "CLV", Overflow, false},
	{symCMP, "CMP", nzc, false},
	{symCPX, "CPX", nzc, false},
	{symCPY, "CPY", nzc, false},
	{symDEC, "DEC", nz, false},
	{symDEX, "DEX", nz, false},
	{symDEY, "DEY", nz, false},
	{symEOR, "EOR", nz, false},
	{symINC, "INC", nz, false},
	{symINX, "INX", nz, false},
	{symINY, "INY", nz, false},
	{symJMP, "JMP", 0, false},
	{symJSR, "JSR", 0, false},
	{symLDA, "LDA", nz, false},
	{symLDX, "LDX", nz, false},
	{symLDY, "LDY", nz, false},
	{symLSR, "LSR", nzc, false},
	{symNOP, "NOP", 0, false},
	{symORA, "ORA", nz, false},
	{symPHA, "PHA", 0, false},
	{symPHP, "PHP", 0, false},
	{symPHX, "PHX", 0, false},
	{symPHY, "PHY", 0, false},
	{symPLA, "PLA", nz, false},
	{symPLP, "PLP", all, false},
	{symPLX, "PLX", nz, false},
	{symPLY, "PLY", nz, false},
	{symROL, "ROL", nzc, false},
	{symROR, "ROR", nzc, false},
	{symRTI, "RTI", all, false},
	{symRTS, "RTS", 0, false},
	{symSBC, "SBC", nvzc, false},
	{symSEC, "SEC", Carry, false},
	{symSED, "SED", Decimal, false},
	{symSEI, "SEI", InterruptDisable, false},
	{symSTA, "STA", 0, false},
	{symSTZ, "STZ", 0, false},
	{symSTX, "STX", 0, false},
	{symSTY, "STY", 0, false},
	{symTAX, "TAX", nz, false},
	{symTAY, "TAY", nz, false},
	{symTRB, "TRB", Zero, false},
	{symTSB, "TSB", Zero, false},
	{symTSX, "TSX", nz, false},
	{symTXA, "TXA", nz, false},
	{symTXS, "TXS", 0, false},
	{symTYA, "TYA", nz, false},
}

// Table shorthand for the addressing modes. Relative branches are written
// with an address operand, and the 65c02 JMP (abs,X) uses the indexed
// indirect form.
const (
	imp = None
	acc = Accumulator
	imm = Immediate
	rel = Address
	zpg = ZeroPage
	zpx = ZeroPageIndexedX
	zpy = ZeroPageIndexedY
	abs = Address
	abx = AddressIndexedX
	aby = AddressIndexedY
	ind = Indirect
	idx = IndirectIndexedX
	idy = IndirectIndexedY
	iax = IndirectIndexedX
)

// Opcode data for an (opcode, mode) pair
type opcodeData struct {
	sym      opsym // internal opcode symbol
	mode     Mode  // addressing mode
	opcode   byte  // opcode hex value
	length   byte  // length of opcode + operand in bytes
	cycles   byte  // number of CPU cycles to execute command
	bpcycles byte  // additional CPU cycles if command crosses page boundary
	cmos     bool  // whether the opcode/mode pair is valid only on 65C02
}

// All valid (opcode, mode) pairs
var data = []opcodeData{
	{symLDA, imm, 0xa9, 2, 2, 0, false},
	{symLDA, zpg, 0xa5, 2, 3, 0, false},
	{symLDA, zpx, 0xb5, 2, 4, 0, false},
	{symLDA, abs, 0xad, 3, 4, 0, false},
	{symLDA, abx, 0xbd, 3, 4, 1, false},
	{symLDA, aby, 0xb9, 3, 4, 1, false},
	{symLDA, idx, 0xa1, 2, 6, 0, false},
	{symLDA, idy, 0xb1, 2, 5, 1, false},
	{symLDA, ind, 0xb2, 2, 5, 0, true},

	{symLDX, imm, 0xa2, 2, 2, 0, false},
	{symLDX, zpg, 0xa6, 2, 3, 0, false},
	{symLDX, zpy, 0xb6, 2, 4, 0, false},
	{symLDX, abs, 0xae, 3, 4, 0, false},
	{symLDX, aby, 0xbe, 3, 4, 1, false},

	{symLDY, imm, 0xa0, 2, 2, 0, false},
	{symLDY, zpg, 0xa4, 2, 3, 0, false},
	{symLDY, zpx, 0xb4, 2, 4, 0, false},
	{symLDY, abs, 0xac, 3, 4, 0, false},
	{symLDY, abx, 0xbc, 3, 4, 1, false},

	{symSTA, zpg, 0x85, 2, 3, 0, false},
	{symSTA, zpx, 0x95, 2, 4, 0, false},
	{symSTA, abs, 0x8d, 3, 4, 0, false},
	{symSTA, abx, 0x9d, 3, 5, 0, false},
	{symSTA, aby, 0x99, 3, 5, 0, false},
	{symSTA, idx, 0x81, 2, 6, 0, false},
	{symSTA, idy, 0x91, 2, 6, 0, false},
	{symSTA, ind, 0x92, 2, 5, 0, true},

	{symSTX, zpg, 0x86, 2, 3, 0, false},
	{symSTX, zpy, 0x96, 2, 4, 0, false},
	{symSTX, abs, 0x8e, 3, 4, 0, false},

	{symSTY, zpg, 0x84, 2, 3, 0, false},
	{symSTY, zpx, 0x94, 2, 4, 0, false},
	{symSTY, abs, 0x8c, 3, 4, 0, false},

	{symSTZ, zpg, 0x64, 2, 3, 0, true},
	{symSTZ, zpx, 0x74, 2, 4, 0, true},
	{symSTZ, abs, 0x9c, 3, 4, 0, true},
	{symSTZ, abx, 0x9e, 3, 5, 0, true},

	{symADC, imm, 0x69, 2, 2, 0, false},
	{symADC, zpg, 0x65, 2, 3, 0, false},
	{symADC, zpx, 0x75, 2, 4, 0, false},
	{symADC, abs, 0x6d, 3, 4, 0, false},
	{symADC, abx, 0x7d, 3, 4, 1, false},
	{symADC, aby, 0x79, 3, 4, 1, false},
	{symADC, idx, 0x61, 2, 6, 0, false},
	{symADC, idy, 0x71, 2, 5, 1, false},
	{symADC, ind, 0x72, 2, 5, 1, true},

	{symSBC, imm, 0xe9, 2, 2, 0, false},
	{symSBC, zpg, 0xe5, 2, 3, 0, false},
	{symSBC, zpx, 0xf5, 2, 4, 0, false},
	{symSBC, abs, 0xed, 3, 4, 0, false},
	{symSBC, abx, 0xfd, 3, 4, 1, false},
	{symSBC, aby, 0xf9, 3, 4, 1, false},
	{symSBC, idx, 0xe1, 2, 6, 0, false},
	{symSBC, idy, 0xf1, 2, 5, 1, false},
	{symSBC, ind, 0xf2, 2, 5, 1, true},

	{symCMP, imm, 0xc9, 2, 2, 0, false},
	{symCMP, zpg, 0xc5, 2, 3, 0, false},
	{symCMP, zpx, 0xd5, 2, 4, 0, false},
	{symCMP, abs, 0xcd, 3, 4, 0, false},
	{symCMP, abx, 0xdd, 3, 4, 1, false},
	{symCMP, aby, 0xd9, 3, 4, 1, false},
	{symCMP, idx, 0xc1, 2, 6, 0, false},
	{symCMP, idy, 0xd1, 2, 5, 1, false},
	{symCMP, ind, 0xd2, 2, 5, 0, true},

	{symCPX, imm, 0xe0, 2, 2, 0, false},
	{symCPX, zpg, 0xe4, 2, 3, 0, false},
	{symCPX, abs, 0xec, 3, 4, 0, false},

	{symCPY, imm, 0xc0, 2, 2, 0, false},
	{symCPY, zpg, 0xc4, 2, 3, 0, false},
	{symCPY, abs, 0xcc, 3, 4, 0, false},

	{symBIT, imm, 0x89, 2, 2, 0, true},
	{symBIT, zpg, 0x24, 2, 3, 0, false},
	{symBIT, zpx, 0x34, 2, 4, 0, true},
	{symBIT, abs, 0x2c, 3, 4, 0, false},
	{symBIT, abx, 0x3c, 3, 4, 1, true},

	{symCLC, imp, 0x18, 1, 2, 0, false},
	{symSEC, imp, 0x38, 1, 2, 0, false},
	{symCLI, imp, 0x58, 1, 2, 0, false},
	{symSEI, imp, 0x78, 1, 2, 0, false},
	{symCLD, imp, 0xd8, 1, 2, 0, false},
	{symSED, imp, 0xf8, 1, 2, 0, false},
	{symCLV, imp, 0xb8, 1, 2, 0, false},

	{symBCC, rel, 0x90, 2, 2, 1, false},
	{symBCS, rel, 0xb0, 2, 2, 1, false},
	{symBEQ, rel, 0xf0, 2, 2, 1, false},
	{symBNE, rel, 0xd0, 2, 2, 1, false},
	{symBMI, rel, 0x30, 2, 2, 1, false},
	{symBPL, rel, 0x10, 2, 2, 1, false},
	{symBVC, rel, 0x50, 2, 2, 1, false},
	{symBVS, rel, 0x70, 2, 2, 1, false},
	{symBRA, rel, 0x80, 2, 2, 1, true},

	{symBRK, imp, 0x00, 1, 7, 0, false},

	{symAND, imm, 0x29, 2, 2, 0, false},
	{symAND, zpg, 0x25, 2, 3, 0, false},
	{symAND, zpx, 0x35, 2, 4, 0, false},
	{symAND, abs, 0x2d, 3, 4, 0, false},
	{symAND, abx, 0x3d, 3, 4, 1, false},
	{symAND, aby, 0x39, 3, 4, 1, false},
	{symAND, idx, 0x21, 2, 6, 0, false},
	{symAND, idy, 0x31, 2, 5, 1, false},
	{symAND, ind, 0x32, 2, 5, 0, true},

	{symORA, imm, 0x09, 2, 2, 0, false},
	{symORA, zpg, 0x05, 2, 3, 0, false},
	{symORA, zpx, 0x15, 2, 4, 0, false},
	{symORA, abs, 0x0d, 3, 4, 0, false},
	{symORA, abx, 0x1d, 3, 4, 1, false},
	{symORA, aby, 0x19, 3, 4, 1, false},
	{symORA, idx, 0x01, 2, 6, 0, false},
	{symORA, idy, 0x11, 2, 5, 1, false},
	{symORA, ind, 0x12, 2, 5, 0, true},

	{symEOR, imm, 0x49, 2, 2, 0, false},
	{symEOR, zpg, 0x45, 2, 3, 0, false},
	{symEOR, zpx, 0x55, 2, 4, 0, false},
	{symEOR, abs, 0x4d, 3, 4, 0, false},
	{symEOR, abx, 0x5d, 3, 4, 1, false},
	{symEOR, aby, 0x59, 3, 4, 1, false},
	{symEOR, idx, 0x41, 2, 6, 0, false},
	{symEOR, idy, 0x51, 2, 5, 1, false},
	{symEOR, ind, 0x52, 2, 5, 0, true},

	{symINC, zpg, 0xe6, 2, 5, 0, false},
	{symINC, zpx, 0xf6, 2, 6, 0, false},
	{symINC, abs, 0xee, 3, 6, 0, false},
	{symINC, abx, 0xfe, 3, 7, 0, false},
	{symINC, acc, 0x1a, 1, 2, 0, true},

	{symDEC, zpg, 0xc6, 2, 5, 0, false},
	{symDEC, zpx, 0xd6, 2, 6, 0, false},
	{symDEC, abs, 0xce, 3, 6, 0, false},
	{symDEC, abx, 0xde, 3, 7, 0, false},
	{symDEC, acc, 0x3a, 1, 2, 0, true},

	{symINX, imp, 0xe8, 1, 2, 0, false},
	{symINY, imp, 0xc8, 1, 2, 0, false},

	{symDEX, imp, 0xca, 1, 2, 0, false},
	{symDEY, imp, 0x88, 1, 2, 0, false},

	{symJMP, abs, 0x4c, 3, 3, 0, false},
	{symJMP, iax, 0x7c, 3, 6, 0, true},
	{symJMP, ind, 0x6c, 3, 5, 0, false},

	{symJSR, abs, 0x20, 3, 6, 0, false},
	{symRTS, imp, 0x60, 1, 6, 0, false},

	{symRTI, imp, 0x40, 1, 6, 0, false},

	{symNOP, imp, 0xea, 1, 2, 0, false},

	{symTAX, imp, 0xaa, 1, 2, 0, false},
	{symTXA, imp, 0x8a, 1, 2, 0, false},
	{symTAY, imp, 0xa8, 1, 2, 0, false},
	{symTYA, imp, 0x98, 1, 2, 0, false},
	{symTXS, imp, 0x9a, 1, 2, 0, false},
	{symTSX, imp, 0xba, 1, 2, 0, false},

	{symTRB, zpg, 0x14, 2, 5, 0, true},
	{symTRB, abs, 0x1c, 3, 6, 0, true},
	{symTSB, zpg, 0x04, 2, 5, 0, true},
	{symTSB, abs, 0x0c, 3, 6, 0, true},

	{symPHA, imp, 0x48, 1, 3, 0, false},
	{symPLA, imp, 0x68, 1, 4, 0, false},
	{symPHP, imp, 0x08, 1, 3, 0, false},
	{symPLP, imp, 0x28, 1, 4, 0, false},
	{symPHX, imp, 0xda, 1, 3, 0, true},
	{symPLX, imp, 0xfa, 1, 4, 0, true},
	{symPHY, imp, 0x5a, 1, 3, 0, true},
	{symPLY, imp, 0x7a, 1, 4, 0, true},

	{symASL, acc, 0x0a, 1, 2, 0, false},
	{symASL, zpg, 0x06, 2, 5, 0, false},
	{symASL, zpx, 0x16, 2, 6, 0, false},
	{symASL, abs, 0x0e, 3, 6, 0, false},
	{symASL, abx, 0x1e, 3, 7, 0, false},

	{symLSR, acc, 0x4a, 1, 2, 0, false},
	{symLSR, zpg, 0x46, 2, 5, 0, false},
	{symLSR, zpx, 0x56, 2, 6, 0, false},
	{symLSR, abs, 0x4e, 3, 6, 0, false},
	{symLSR, abx, 0x5e, 3, 7, 0, false},

	{symROL, acc, 0x2a, 1, 2, 0, false},
	{symROL, zpg, 0x26, 2, 5, 0, false},
	{symROL, zpx, 0x36, 2, 6, 0, false},
	{symROL, abs, 0x2e, 3, 6, 0, false},
	{symROL, abx, 0x3e, 3, 7, 0, false},

	{symROR, acc, 0x6a, 1, 2, 0, false},
	{symROR, zpg, 0x66, 2, 5, 0, false},
	{symROR, zpx, 0x76, 2, 6, 0, false},
	{symROR, abs, 0x6e, 3, 6, 0, false},
	{symROR, abx, 0x7e, 3, 7, 0, false},
}

// Produce the instruction variants valid for an architecture, in table
// order.
func tableVariants(arch Architecture) []Instruction {
	symToInfo := make(map[opsym]*opcodeInfo, len(info))
	for i := range info {
		symToInfo[info[i].sym] = &info[i]
	}

	variants := make([]Instruction, 0, len(data))
	for _, d := range data {
		if d.cmos && arch != CMOS {
			continue
		}

		inf := symToInfo[d.sym]
		inst := Instruction{
			Name:     inf.name,
			Mode:     d.mode,
			Opcode:   d.opcode,
			Length:   d.length,
			Flags:    inf.flags,
			Cycles:   uint(d.cycles),
			BPCycles: uint(d.bpcycles),
		}

		// The BIT immediate form only affects the zero flag.
		if d.sym == symBIT && d.mode == imm {
			inst.Flags = Zero
		}
		if inf.branch {
			inst.BranchCycles = 1
		}
		variants = append(variants, inst)
	}
	return variants
}
