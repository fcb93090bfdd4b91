package machine

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

// newTestMachine returns a machine with the given opcodes loaded at ProgramStart.
func newTestMachine(t *testing.T, opcodes ...uint16) *Machine {
	t.Helper()

	m := New(WithSeed(1))
	assert.NoError(t, m.Load(assemble(opcodes...)))
	return m
}

func assemble(opcodes ...uint16) []byte {
	rom := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		rom = append(rom, byte(op>>8), byte(op))
	}
	return rom
}

// steps executes n instructions and fails the test on any error.
func steps(t *testing.T, m *Machine, n int) {
	t.Helper()

	for range n {
		_, err := m.Step()
		assert.NoError(t, err)
	}
}

func TestNew(t *testing.T) {
	m := New()

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.I())
	assert.Equal(t, uint8(0), m.SP())
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())

	state := m.Snapshot()
	if diff := cmp.Diff(font[:], state.Memory[FontAddress:FontAddress+len(font)]); diff != "" {
		t.Errorf("font mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, [RegisterCount]uint8{}, state.V)
	assert.Equal(t, [KeyCount]bool{}, state.Keys)
	assert.Len(t, m.Framebuffer(), DisplayWidth*DisplayHeight)
}

func TestNew_Independent(t *testing.T) {
	m1 := newTestMachine(t, 0x6005)
	m2 := newTestMachine(t, 0x600A)

	steps(t, m1, 1)
	steps(t, m2, 1)

	assert.Equal(t, uint8(0x05), m1.V(0))
	assert.Equal(t, uint8(0x0A), m2.V(0))
}

func TestLoad(t *testing.T) {
	t.Run("copies rom to program start", func(t *testing.T) {
		m := New()
		before := m.Snapshot()

		rom := make([]byte, MaxROMSize)
		for i := range rom {
			rom[i] = byte(i*7 + 3)
		}
		assert.NoError(t, m.Load(rom))

		state := m.Snapshot()
		if diff := cmp.Diff(rom, state.Memory[ProgramStart:]); diff != "" {
			t.Errorf("program space mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(before.Memory[:ProgramStart], state.Memory[:ProgramStart]); diff != "" {
			t.Errorf("reserved area modified (-want +got):\n%s", diff)
		}
	})

	t.Run("refuses too large rom", func(t *testing.T) {
		m := New()
		before := m.Snapshot()

		err := m.Load(make([]byte, MaxROMSize+1))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrROMTooLarge))
		assert.Equal(t, before.Memory, m.Snapshot().Memory)
	})

	t.Run("empty rom", func(t *testing.T) {
		m := New()
		assert.NoError(t, m.Load(nil))
		assert.Equal(t, byte(0), m.Memory(ProgramStart))
	})

	t.Run("reload keeps tail of previous rom", func(t *testing.T) {
		m := New()
		assert.NoError(t, m.Load([]byte{0x11, 0x22, 0x33, 0x44}))
		assert.NoError(t, m.Load([]byte{0xAA, 0xBB}))

		assert.Equal(t, byte(0xAA), m.Memory(ProgramStart))
		assert.Equal(t, byte(0xBB), m.Memory(ProgramStart+1))
		assert.Equal(t, byte(0x33), m.Memory(ProgramStart+2))
		assert.Equal(t, byte(0x44), m.Memory(ProgramStart+3))
	})
}

func TestReset(t *testing.T) {
	m := newTestMachine(t,
		0x6A12, // V A = 0x12
		0xA300, // I = 0x300
		0x2208, // call $208
		0x0000,
		0xF015, // DT = V0
		0xD005, // draw
	)
	assert.NoError(t, m.SetKey(3, true))
	steps(t, m, 3)
	m.memory[FontAddress] = 0xFF

	m.Reset()

	fresh := New().Snapshot()
	state := m.Snapshot()
	if diff := cmp.Diff(fresh, state); diff != "" {
		t.Errorf("state after reset mismatch (-want +got):\n%s", diff)
	}
}

func TestTickTimers(t *testing.T) {
	m := newTestMachine(t,
		0x6002, // V0 = 2
		0x6101, // V1 = 1
		0xF015, // DT = V0
		0xF118, // ST = V1
	)
	steps(t, m, 4)
	assert.Equal(t, uint8(2), m.DelayTimer())
	assert.Equal(t, uint8(1), m.SoundTimer())

	m.TickTimers()
	assert.Equal(t, uint8(1), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())

	m.TickTimers()
	m.TickTimers()
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
}

func TestSetKey(t *testing.T) {
	m := New()

	assert.NoError(t, m.SetKey(0xF, true))
	assert.True(t, m.Key(0xF))
	assert.NoError(t, m.SetKey(0xF, false))
	assert.False(t, m.Key(0xF))

	err := m.SetKey(16, true)
	assert.True(t, errors.Is(err, ErrInvalidKey))
	assert.False(t, m.Key(16))
}

func TestPixel(t *testing.T) {
	m := New()
	m.framebuffer[0] = 1
	m.framebuffer[DisplayWidth*DisplayHeight-1] = 1

	assert.True(t, m.Pixel(0, 0))
	assert.True(t, m.Pixel(DisplayWidth, DisplayHeight))
	assert.True(t, m.Pixel(-1, -1))
	assert.False(t, m.Pixel(1, 0))
}

func TestFont(t *testing.T) {
	f := Font()
	assert.Len(t, f, KeyCount*FontGlyphSize)
	assert.True(t, bytes.Equal(font[:], f))

	f[0] = 0
	assert.Equal(t, byte(0xF0), font[0])
}

func TestEndToEnd(t *testing.T) {
	m := New()
	rom := []byte{0x00, 0xE0, 0x60, 0x05, 0x61, 0x0A, 0x80, 0x14}
	assert.NoError(t, m.Load(rom))

	steps(t, m, 4)

	assert.Equal(t, uint8(15), m.V(0))
	assert.Equal(t, uint8(10), m.V(1))
	assert.Equal(t, uint8(0), m.V(0xF))
	assert.Equal(t, uint16(ProgramStart+8), m.PC())
	if diff := cmp.Diff(make([]uint8, DisplayWidth*DisplayHeight), m.Framebuffer()); diff != "" {
		t.Errorf("framebuffer not clear (-want +got):\n%s", diff)
	}
}
