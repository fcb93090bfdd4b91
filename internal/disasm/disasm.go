// Package disasm formats CHIP-8 opcodes as assembly text, based on the
// retrogolib CHIP-8 instruction tables.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction is a decoded opcode ready for display.
type Instruction struct {
	Opcode uint16
	Name   string // mnemonic, empty if the opcode is unknown
	Params string // formatted parameters, may be empty
}

// Known returns whether the opcode matched an instruction.
func (i Instruction) Known() bool {
	return i.Name != ""
}

// IsSkip returns true if the instruction is a conditional skip.
func (i Instruction) IsSkip() bool {
	return i.Known() && chip8.SkipInstructions.Contains(i.Name)
}

// String returns the assembly text of the instruction. Unknown opcodes are
// shown as a data word.
func (i Instruction) String() string {
	switch {
	case !i.Known():
		return fmt.Sprintf(".word $%04X", i.Opcode)
	case i.Params == "":
		return i.Name
	default:
		return i.Name + " " + i.Params
	}
}

// Decode looks up the instruction of an opcode.
func Decode(opcode uint16) Instruction {
	ins := Instruction{Opcode: opcode}
	op, ok := lookup(opcode)
	if !ok {
		return ins
	}
	ins.Name = op.Instruction.Name
	ins.Params = formatParams(opcode)
	return ins
}

// Format returns the assembly text of an opcode.
func Format(opcode uint16) string {
	return Decode(opcode).String()
}

// Read decodes the opcode at the given offset of a big-endian byte buffer.
func Read(data []byte, offset int) (Instruction, bool) {
	if offset < 0 || offset+1 >= len(data) {
		return Instruction{}, false
	}
	return Decode(uint16(data[offset])<<8 | uint16(data[offset+1])), true
}

// lookup finds the opcode table entry matching the given opcode.
func lookup(opcode uint16) (chip8.Opcode, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

// formatParams formats the parameters of an opcode by its bit pattern.
func formatParams(opcode uint16) string {
	x := extractRegisterX(opcode)
	y := extractRegisterY(opcode)

	switch opcode & 0xF000 {
	case 0x0000:
		if opcode == 0x00E0 || opcode == 0x00EE {
			return ""
		}
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0x1000, 0x2000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0x8000:
		return formatArithmetic(opcode)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	case 0xD000:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, opcode&0x000F)
	case 0xE000:
		return fmt.Sprintf("V%X", x)
	default:
		return formatMisc(opcode)
	}
}

// formatArithmetic formats 8XYN register operations, shifts only name VX.
func formatArithmetic(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0x000F {
	case 0x6, 0xE:
		return fmt.Sprintf("V%X", x)
	default:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	}
}

// formatMisc formats FXNN timer, keypad and memory instructions.
func formatMisc(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
