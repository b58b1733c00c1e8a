package game

import "errors"

var (
	// ErrNotEnoughSeats is returned when fewer than two seats have
	// chips at hand start.
	ErrNotEnoughSeats = errors.New("at least two funded seats required")

	// ErrChipMismatch indicates a chip-conservation violation. It is a
	// programmer error: the hand must abort loudly rather than continue
	// with corrupted chip state.
	ErrChipMismatch = errors.New("chip conservation violated")
)
