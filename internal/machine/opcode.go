package machine

import "fmt"

// Opcode is a 16-bit CHIP-8 instruction word.
//
// Fields are named by nibble position:
//
//	F X Y N
//	  NNN
//	    NN
type Opcode uint16

// Family returns the high nibble that selects the instruction family.
func (o Opcode) Family() uint8 {
	return uint8(o >> 12)
}

// X returns the second nibble, usually a register index.
func (o Opcode) X() uint8 {
	return uint8(o>>8) & 0xF
}

// Y returns the third nibble, usually a register index.
func (o Opcode) Y() uint8 {
	return uint8(o>>4) & 0xF
}

// N returns the lowest nibble.
func (o Opcode) N() uint8 {
	return uint8(o) & 0xF
}

// NN returns the low byte.
func (o Opcode) NN() uint8 {
	return uint8(o)
}

// NNN returns the low 12 bits, an address.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

func (o Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(o))
}
