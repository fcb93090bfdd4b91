package machine

// 00E0 CLS, 00EE RET.
func (m *Machine) execSystem(op Opcode) result {
	switch op {
	case 0x00E0:
		m.framebuffer = [DisplayWidth * DisplayHeight]uint8{}
		return next()

	case 0x00EE:
		if m.sp == 0 {
			return fault(ErrStackUnderflow)
		}
		m.sp--
		return jumpTo(m.stack[m.sp])

	default:
		// 0NNN calls a machine code routine of the host CPU.
		return unknown()
	}
}

// 1NNN JP addr.
func (m *Machine) execJump(op Opcode) result {
	return jumpTo(op.NNN())
}

// 2NNN CALL addr.
func (m *Machine) execCall(op Opcode) result {
	if m.sp >= StackSize {
		return fault(ErrStackOverflow)
	}
	m.stack[m.sp] = m.pc + opcodeSize
	m.sp++
	return jumpTo(op.NNN())
}

// 3XNN SE Vx, byte.
func (m *Machine) execSkipEqualByte(op Opcode) result {
	return skipIf(m.v[op.X()] == op.NN())
}

// 4XNN SNE Vx, byte.
func (m *Machine) execSkipNotEqualByte(op Opcode) result {
	return skipIf(m.v[op.X()] != op.NN())
}

// 5XY0 SE Vx, Vy.
func (m *Machine) execSkipEqualRegister(op Opcode) result {
	if op.N() != 0 {
		return unknown()
	}
	return skipIf(m.v[op.X()] == m.v[op.Y()])
}

// 6XNN LD Vx, byte.
func (m *Machine) execLoadByte(op Opcode) result {
	m.v[op.X()] = op.NN()
	return next()
}

// 7XNN ADD Vx, byte. Wraps around without touching VF.
func (m *Machine) execAddByte(op Opcode) result {
	m.v[op.X()] += op.NN()
	return next()
}

// 8XYN register to register operations. The flag is written after the
// result, so for X=F the flag value remains.
func (m *Machine) execArithmetic(op Opcode) result {
	x := op.X()
	vx, vy := m.v[x], m.v[op.Y()]

	switch op.N() {
	case 0x0: // LD Vx, Vy
		m.v[x] = vy

	case 0x1: // OR Vx, Vy
		m.v[x] = vx | vy

	case 0x2: // AND Vx, Vy
		m.v[x] = vx & vy

	case 0x3: // XOR Vx, Vy
		m.v[x] = vx ^ vy

	case 0x4: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		m.v[x] = uint8(sum)
		m.v[flagRegister] = flag(sum > 0xFF)

	case 0x5: // SUB Vx, Vy
		m.v[x] = vx - vy
		m.v[flagRegister] = flag(vx >= vy)

	case 0x6: // SHR Vx
		source := vx
		if m.quirks.ShiftUsesVY {
			source = vy
		}
		m.v[x] = source >> 1
		m.v[flagRegister] = source & 0x01

	case 0x7: // SUBN Vx, Vy
		m.v[x] = vy - vx
		m.v[flagRegister] = flag(vy >= vx)

	case 0xE: // SHL Vx
		source := vx
		if m.quirks.ShiftUsesVY {
			source = vy
		}
		m.v[x] = source << 1
		m.v[flagRegister] = (source & 0x80) >> 7

	default:
		return unknown()
	}
	return next()
}

// 9XY0 SNE Vx, Vy.
func (m *Machine) execSkipNotEqualRegister(op Opcode) result {
	if op.N() != 0 {
		return unknown()
	}
	return skipIf(m.v[op.X()] != m.v[op.Y()])
}

// ANNN LD I, addr.
func (m *Machine) execLoadIndex(op Opcode) result {
	m.i = op.NNN()
	return next()
}

// BNNN JP V0, addr.
func (m *Machine) execJumpOffset(op Opcode) result {
	return jumpTo(op.NNN() + uint16(m.v[0]))
}

// CXNN RND Vx, byte.
func (m *Machine) execRandom(op Opcode) result {
	m.v[op.X()] = m.random.Byte() & op.NN()
	return next()
}

// DXYN DRW Vx, Vy, nibble. Draws an 8xN sprite from memory at I, every set
// bit toggles its pixel. Pixels wrap around the screen edges individually.
func (m *Machine) execDraw(op Opcode) result {
	x0 := int(m.v[op.X()])
	y0 := int(m.v[op.Y()])
	m.v[flagRegister] = 0

	for row := range int(op.N()) {
		sprite := m.memory[(m.i+uint16(row))&addressMask]
		y := (y0 + row) % DisplayHeight

		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			x := (x0 + col) % DisplayWidth
			index := y*DisplayWidth + x
			if m.framebuffer[index] == 1 {
				m.v[flagRegister] = 1
			}
			m.framebuffer[index] ^= 1
		}
	}
	return next()
}

// EX9E SKP Vx, EXA1 SKNP Vx.
func (m *Machine) execKeySkip(op Opcode) result {
	pressed := m.keys[m.v[op.X()]&0xF]

	switch op.NN() {
	case 0x9E:
		return skipIf(pressed)
	case 0xA1:
		return skipIf(!pressed)
	default:
		return unknown()
	}
}

// FXNN timer, keypad, index and memory instructions.
func (m *Machine) execMisc(op Opcode) result {
	x := op.X()

	switch op.NN() {
	case 0x07: // LD Vx, DT
		m.v[x] = m.delayTimer

	case 0x0A: // LD Vx, K
		return m.waitForKey(x)

	case 0x15: // LD DT, Vx
		m.delayTimer = m.v[x]

	case 0x18: // LD ST, Vx
		m.soundTimer = m.v[x]

	case 0x1E: // ADD I, Vx
		sum := m.i + uint16(m.v[x])
		if m.quirks.IndexOverflowFlag {
			m.v[flagRegister] = flag(sum > addressMask)
		}
		m.i = sum

	case 0x29: // LD F, Vx
		m.i = FontAddress + uint16(m.v[x]&0xF)*FontGlyphSize

	case 0x33: // LD B, Vx
		value := m.v[x]
		m.memory[m.i&addressMask] = value / 100
		m.memory[(m.i+1)&addressMask] = (value / 10) % 10
		m.memory[(m.i+2)&addressMask] = value % 10

	case 0x55: // LD [I], Vx
		for r := range uint16(x) + 1 {
			m.memory[(m.i+r)&addressMask] = m.v[r]
		}
		if m.quirks.LoadStoreIncrementsI {
			m.i += uint16(x) + 1
		}

	case 0x65: // LD Vx, [I]
		for r := range uint16(x) + 1 {
			m.v[r] = m.memory[(m.i+r)&addressMask]
		}
		if m.quirks.LoadStoreIncrementsI {
			m.i += uint16(x) + 1
		}

	default:
		return unknown()
	}
	return next()
}

// waitForKey stores the lowest pressed key in VX. Without a pressed key the
// program counter stays put so that the next step retries the instruction.
func (m *Machine) waitForKey(x uint8) result {
	for key, pressed := range m.keys {
		if pressed {
			m.v[x] = uint8(key)
			return next()
		}
	}
	return wait()
}

func flag(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}
