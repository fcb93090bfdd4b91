package machine

import (
	"errors"
	"fmt"
)

var (
	// ErrROMTooLarge is returned by Load for ROMs exceeding MaxROMSize.
	ErrROMTooLarge = errors.New("rom too large")
	// ErrStackOverflow is reported for a call with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is reported for a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrUnknownOpcode is reported for opcodes that do not decode to an instruction.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrInvalidKey is returned by SetKey for keys outside of 0-F.
	ErrInvalidKey = errors.New("invalid key")
)

// OpcodeError describes a failed instruction. It wraps one of
// ErrStackOverflow, ErrStackUnderflow or ErrUnknownOpcode.
type OpcodeError struct {
	Address uint16
	Opcode  Opcode
	Err     error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("opcode %s at $%03X: %s", e.Opcode, e.Address, e.Err)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}
