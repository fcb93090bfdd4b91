package machine

// CHIP-8 memory layout.
//
//	0x000-0x04F: unused interpreter area
//	0x050-0x09F: font sprites
//	0x0A0-0x1FF: unused interpreter area
//	0x200-0xFFF: program space (3584 bytes)
const (
	// MemorySize is the number of addressable bytes.
	MemorySize = 0x1000

	// ProgramStart is the address that ROMs are loaded to and execution starts at.
	ProgramStart = 0x200

	// MaxROMSize is the largest ROM that fits into the program space.
	MaxROMSize = MemorySize - ProgramStart

	// FontAddress is the address of the first font sprite.
	FontAddress = 0x050

	// FontGlyphSize is the number of bytes of a single font sprite.
	FontGlyphSize = 5

	addressMask = MemorySize - 1
)

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

const (
	// RegisterCount is the number of V registers.
	RegisterCount = 16

	// StackSize is the number of return addresses the call stack holds.
	StackSize = 16

	// KeyCount is the number of keys of the hex keypad.
	KeyCount = 16

	// opcodeSize is the size of every CHIP-8 instruction in bytes.
	opcodeSize = 2

	flagRegister = 0xF
)
