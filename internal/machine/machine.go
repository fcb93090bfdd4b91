package machine

import (
	"fmt"
)

// Machine is a CHIP-8 virtual machine. Create instances with New.
type Machine struct {
	memory      [MemorySize]byte
	v           [RegisterCount]uint8
	i           uint16
	pc          uint16
	stack       [StackSize]uint16
	sp          uint8
	delayTimer  uint8
	soundTimer  uint8
	framebuffer [DisplayWidth * DisplayHeight]uint8
	keys        [KeyCount]bool

	quirks   Quirks
	observer Observer
	random   Random
}

// Option configures a Machine.
type Option func(*Machine)

// WithQuirks sets the compatibility quirks to use.
func WithQuirks(quirks Quirks) Option {
	return func(m *Machine) {
		m.quirks = quirks
	}
}

// WithObserver sets an observer that is notified after every instruction.
func WithObserver(observer Observer) Option {
	return func(m *Machine) {
		m.observer = observer
	}
}

// WithRandom sets the random source used by CXNN.
func WithRandom(random Random) Option {
	return func(m *Machine) {
		m.random = random
	}
}

// WithSeed seeds the default random source, making CXNN reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Machine) {
		m.random = newRandom(seed)
	}
}

// New returns a new machine in its power-on state, with the font loaded and
// the program counter at ProgramStart.
func New(options ...Option) *Machine {
	m := &Machine{}
	for _, option := range options {
		option(m)
	}
	if m.random == nil {
		m.random = newRandom(timeSeed())
	}
	m.Reset()
	return m
}

// Reset restores the power-on state. The configured options are kept.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontAddress:], font[:])

	m.v = [RegisterCount]uint8{}
	m.i = 0
	m.pc = ProgramStart
	m.stack = [StackSize]uint16{}
	m.sp = 0
	m.delayTimer = 0
	m.soundTimer = 0
	m.framebuffer = [DisplayWidth * DisplayHeight]uint8{}
	m.keys = [KeyCount]bool{}
}

// Load copies the ROM into memory at ProgramStart. ROMs larger than
// MaxROMSize are refused and leave the memory unchanged.
// Memory after the end of the ROM is not cleared, call Reset before
// loading a different ROM to get a clean program space.
func (m *Machine) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(m.memory[ProgramStart:], rom)
	return nil
}

// SetKey sets the pressed state of a keypad key 0-F.
func (m *Machine) SetKey(key uint8, pressed bool) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	m.keys[key] = pressed
	return nil
}

// Key returns whether a keypad key is currently pressed.
func (m *Machine) Key(key uint8) bool {
	if key >= KeyCount {
		return false
	}
	return m.keys[key]
}

// TickTimers decrements the delay and sound timers if they are not zero.
// It is meant to be called at 60 Hz.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// Framebuffer returns the live 64x32 framebuffer in row-major order, one byte
// per pixel with value 0 or 1. The slice must not be modified and is only
// valid until the next call that mutates the machine.
func (m *Machine) Framebuffer() []uint8 {
	return m.framebuffer[:]
}

// Pixel returns whether the pixel at x,y is set. Coordinates wrap around.
func (m *Machine) Pixel(x, y int) bool {
	x = ((x % DisplayWidth) + DisplayWidth) % DisplayWidth
	y = ((y % DisplayHeight) + DisplayHeight) % DisplayHeight
	return m.framebuffer[y*DisplayWidth+x] != 0
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value. A host should play a
// tone while it is not zero.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// I returns the index register.
func (m *Machine) I() uint16 {
	return m.i
}

// V returns the value of register VX, x is masked to 0-F.
func (m *Machine) V(x uint8) uint8 {
	return m.v[x&0xF]
}

// SP returns the stack pointer, the number of return addresses on the stack.
func (m *Machine) SP() uint8 {
	return m.sp
}

// Memory returns the byte at the given address, the address wraps at MemorySize.
func (m *Machine) Memory(address uint16) byte {
	return m.memory[address&addressMask]
}

// Quirks returns the configured quirks.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}

// State is a copy of the complete machine state.
type State struct {
	Memory      [MemorySize]byte
	V           [RegisterCount]uint8
	I           uint16
	PC          uint16
	Stack       [StackSize]uint16
	SP          uint8
	DelayTimer  uint8
	SoundTimer  uint8
	Framebuffer [DisplayWidth * DisplayHeight]uint8
	Keys        [KeyCount]bool
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	return State{
		Memory:      m.memory,
		V:           m.v,
		I:           m.i,
		PC:          m.pc,
		Stack:       m.stack,
		SP:          m.sp,
		DelayTimer:  m.delayTimer,
		SoundTimer:  m.soundTimer,
		Framebuffer: m.framebuffer,
		Keys:        m.keys,
	}
}
