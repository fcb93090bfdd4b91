package machine

// Quirks selects between behaviors that differ across historical CHIP-8
// interpreters. The zero value is the default behavior of this machine.
type Quirks struct {
	// IndexOverflowFlag makes FX1E set VF to 1 when I+VX exceeds 0x0FFF
	// and to 0 otherwise. By default FX1E does not touch VF.
	IndexOverflowFlag bool

	// ShiftUsesVY makes 8XY6 and 8XYE shift VY and store the result in VX,
	// like the original COSMAC VIP interpreter. By default VX is shifted in place.
	ShiftUsesVY bool

	// LoadStoreIncrementsI makes FX55 and FX65 leave I pointing after the
	// last accessed address. By default I is not modified.
	LoadStoreIncrementsI bool
}
