package machine

// result is returned by every instruction handler and tells the dispatcher
// how to move the program counter.
type result struct {
	outcome Outcome
	target  uint16 // jump target for Jump
	err     error  // reason for Fault and Unknown
}

func next() result {
	return result{outcome: Continue}
}

func skipIf(condition bool) result {
	if condition {
		return result{outcome: Skip}
	}
	return result{outcome: Continue}
}

func jumpTo(address uint16) result {
	return result{outcome: Jump, target: address}
}

func wait() result {
	return result{outcome: Wait}
}

func fault(err error) result {
	return result{outcome: Fault, err: err}
}

func unknown() result {
	return result{outcome: Unknown, err: ErrUnknownOpcode}
}

// handler executes all instructions of one opcode family.
type handler func(m *Machine, op Opcode) result

// families maps the high nibble of an opcode to its handler.
var families = [16]handler{
	0x0: (*Machine).execSystem,
	0x1: (*Machine).execJump,
	0x2: (*Machine).execCall,
	0x3: (*Machine).execSkipEqualByte,
	0x4: (*Machine).execSkipNotEqualByte,
	0x5: (*Machine).execSkipEqualRegister,
	0x6: (*Machine).execLoadByte,
	0x7: (*Machine).execAddByte,
	0x8: (*Machine).execArithmetic,
	0x9: (*Machine).execSkipNotEqualRegister,
	0xA: (*Machine).execLoadIndex,
	0xB: (*Machine).execJumpOffset,
	0xC: (*Machine).execRandom,
	0xD: (*Machine).execDraw,
	0xE: (*Machine).execKeySkip,
	0xF: (*Machine).execMisc,
}

// fetch reads the big-endian opcode at the program counter.
func (m *Machine) fetch() Opcode {
	hi := m.memory[m.pc&addressMask]
	lo := m.memory[(m.pc+1)&addressMask]
	return Opcode(uint16(hi)<<8 | uint16(lo))
}

// Step executes exactly one instruction. The returned error is an
// *OpcodeError for stack faults and unknown opcodes, the machine stays
// usable in either case.
func (m *Machine) Step() (Event, error) {
	address := m.pc
	op := m.fetch()
	res := families[op.Family()](m, op)

	switch res.outcome {
	case Continue, Unknown:
		m.pc = (m.pc + opcodeSize) & addressMask
	case Skip:
		m.pc = (m.pc + 2*opcodeSize) & addressMask
	case Jump:
		m.pc = res.target & addressMask
	case Wait, Fault:
	}

	event := Event{
		Address: address,
		Opcode:  op,
		Outcome: res.outcome,
		NextPC:  m.pc,
	}

	var err error
	if res.err != nil {
		err = &OpcodeError{
			Address: address,
			Opcode:  op,
			Err:     res.err,
		}
		event.Err = err
	}

	if m.observer != nil {
		m.observer.Executed(event)
	}
	return event, err
}
