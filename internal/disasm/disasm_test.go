package disasm

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		wantName string
		params   string
	}{
		{"clear screen", 0x00E0, chip8.ClsInst.Name, ""},
		{"return", 0x00EE, chip8.RetInst.Name, ""},
		{"jump", 0x1234, chip8.JpInst.Name, "$234"},
		{"call", 0x2ABC, chip8.CallInst.Name, "$ABC"},
		{"skip equal byte", 0x3A42, chip8.SeInst.Name, "VA, $42"},
		{"skip not equal byte", 0x4A42, chip8.SneInst.Name, "VA, $42"},
		{"skip equal register", 0x5120, chip8.SeInst.Name, "V1, V2"},
		{"load byte", 0x6F01, chip8.LdInst.Name, "VF, $01"},
		{"add byte", 0x7102, chip8.AddInst.Name, "V1, $02"},
		{"load register", 0x8120, chip8.LdInst.Name, "V1, V2"},
		{"or", 0x8121, chip8.OrInst.Name, "V1, V2"},
		{"and", 0x8122, chip8.AndInst.Name, "V1, V2"},
		{"xor", 0x8123, chip8.XorInst.Name, "V1, V2"},
		{"add register", 0x8124, chip8.AddInst.Name, "V1, V2"},
		{"sub", 0x8125, chip8.SubInst.Name, "V1, V2"},
		{"shift right", 0x8126, chip8.ShrInst.Name, "V1"},
		{"subn", 0x8127, chip8.SubnInst.Name, "V1, V2"},
		{"shift left", 0x812E, chip8.ShlInst.Name, "V1"},
		{"skip not equal register", 0x9120, chip8.SneInst.Name, "V1, V2"},
		{"load index", 0xA300, chip8.LdInst.Name, "I, $300"},
		{"jump offset", 0xB300, chip8.JpInst.Name, "V0, $300"},
		{"random", 0xC30F, chip8.RndInst.Name, "V3, $0F"},
		{"draw", 0xD125, chip8.DrwInst.Name, "V1, V2, $5"},
		{"skip pressed", 0xE19E, chip8.SkpInst.Name, "V1"},
		{"skip not pressed", 0xE1A1, chip8.SknpInst.Name, "V1"},
		{"load delay", 0xF107, chip8.LdInst.Name, "V1, DT"},
		{"wait key", 0xF10A, chip8.LdInst.Name, "V1, K"},
		{"set delay", 0xF115, chip8.LdInst.Name, "DT, V1"},
		{"set sound", 0xF118, chip8.LdInst.Name, "ST, V1"},
		{"add index", 0xF11E, chip8.AddInst.Name, "I, V1"},
		{"font", 0xF129, chip8.LdInst.Name, "F, V1"},
		{"bcd", 0xF133, chip8.LdInst.Name, "B, V1"},
		{"store", 0xF155, chip8.LdInst.Name, "[I], V1"},
		{"load", 0xF165, chip8.LdInst.Name, "V1, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := Decode(tt.opcode)
			assert.True(t, ins.Known())
			assert.Equal(t, tt.wantName, ins.Name)
			assert.Equal(t, tt.params, ins.Params)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, chip8.ClsInst.Name, Format(0x00E0))
	assert.Equal(t, chip8.DrwInst.Name+" V0, V1, $F", Format(0xD01F))
}

func TestFormat_Unknown(t *testing.T) {
	ins := Decode(0xF1FF)
	assert.False(t, ins.Known())
	assert.Equal(t, ".word $F1FF", ins.String())
}

func TestInstruction_IsSkip(t *testing.T) {
	assert.True(t, Decode(0x3A42).IsSkip())
	assert.True(t, Decode(0xE19E).IsSkip())
	assert.False(t, Decode(0x1234).IsSkip())
	assert.False(t, Decode(0xF1FF).IsSkip())
}

func TestRead(t *testing.T) {
	data := []byte{0x00, 0xE0, 0x12}

	ins, ok := Read(data, 0)
	assert.True(t, ok)
	assert.Equal(t, uint16(0x00E0), ins.Opcode)

	_, ok = Read(data, 1)
	assert.True(t, ok)

	_, ok = Read(data, 2)
	assert.False(t, ok)

	_, ok = Read(data, -1)
	assert.False(t, ok)
}
