package machine

// Outcome describes how an executed instruction moved the program counter.
type Outcome int

const (
	// Continue means the instruction completed and PC advanced by 2.
	Continue Outcome = iota
	// Skip means a conditional skip was taken and PC advanced by 4.
	Skip
	// Jump means PC was set to an explicit target address.
	Jump
	// Wait means the instruction is blocked on input and PC did not move.
	Wait
	// Fault means a call or return was refused and PC did not move.
	Fault
	// Unknown means the opcode was not recognized and PC advanced by 2.
	Unknown
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Skip:
		return "skip"
	case Jump:
		return "jump"
	case Wait:
		return "wait"
	case Fault:
		return "fault"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Event describes a single executed instruction.
type Event struct {
	Address uint16 // address the opcode was fetched from
	Opcode  Opcode
	Outcome Outcome
	NextPC  uint16 // program counter after the instruction
	Err     error  // set for Fault and Unknown outcomes
}

// Observer gets notified after every executed instruction.
// It is called synchronously from Step and must not call back into the machine.
type Observer interface {
	Executed(event Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(event Event)

// Executed calls f(event).
func (f ObserverFunc) Executed(event Event) {
	f(event)
}
