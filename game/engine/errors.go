package engine

import "errors"

var (
	// ErrInvalidSettings marks structurally invalid creation settings.
	ErrInvalidSettings = errors.New("invalid session settings")

	// ErrSessionFull is returned when a join would exceed max_players.
	ErrSessionFull = errors.New("session is full")

	// ErrNotYourTurn is returned for a move by anyone but the current player.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrUnknownPlayer is returned for a move by a non-member of the session.
	ErrUnknownPlayer = errors.New("player is not part of this session")

	// ErrInvalidPlacement marks a placement outside the board bounds or
	// without a letter.
	ErrInvalidPlacement = errors.New("invalid placement")

	// ErrEmptyTurnOrder signals a corrupted session document. It is an
	// invariant violation: create always seeds one player, so the turn order
	// can never be empty on a stored session.
	ErrEmptyTurnOrder = errors.New("invariant violation: empty turn order")
)
