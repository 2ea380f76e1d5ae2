package engine

import (
	"fmt"
	"time"

	"github.com/cuvinte/scrabble-server/game/letters"
)

// ApplyMove applies a set of tile placements for the acting player.
//
// The move fails with ErrNotYourTurn unless playerID holds the current turn,
// and with ErrInvalidPlacement for a cell outside the board or an empty
// letter. Duplicate cells within one move are caller error; the last write
// wins and the move does not fail.
//
// Rack accounting is by literal letter: each placement removes the first
// matching tile from the acting player's rack. A placement whose letter is
// not on the rack (a blank played as that letter) removes nothing; blanks
// are not charged against the "?" tile. After all placements the rack is
// replenished from the bag up to rack_size and the turn advances.
//
// ApplyMove is not idempotent. Replaying a delivered move re-applies it;
// the transport must deliver each move at most once.
func (s *Session) ApplyMove(playerID string, placements []Placement) error {
	current, err := s.CurrentPlayer()
	if err != nil {
		return err
	}
	if playerID != current {
		return ErrNotYourTurn
	}

	player, ok := s.Players[playerID]
	if !ok {
		return ErrUnknownPlayer
	}

	for _, p := range placements {
		if err := validatePlacement(p); err != nil {
			return err
		}
	}

	for _, p := range placements {
		s.Board[CellKey(p.Row, p.Col)] = Cell{Letter: p.Letter, Blank: p.Blank}
		removeFirst(&player.Rack, p.Letter)
	}

	refill := s.Settings.RackSize - len(player.Rack)
	if refill > 0 {
		dealt, bag := letters.Deal(s.Bag, refill)
		player.Rack = append(player.Rack, dealt...)
		s.Bag = bag
	}

	s.advanceTurn()
	s.LastUpdate = time.Now().UTC()

	return nil
}

func validatePlacement(p Placement) error {
	if p.Row < 0 || p.Row >= BoardSize || p.Col < 0 || p.Col >= BoardSize {
		return fmt.Errorf("%w: cell (%d,%d) is outside the %dx%d board",
			ErrInvalidPlacement, p.Row, p.Col, BoardSize, BoardSize)
	}
	if p.Letter == "" {
		return fmt.Errorf("%w: placement at (%d,%d) has no letter", ErrInvalidPlacement, p.Row, p.Col)
	}
	return nil
}

// removeFirst removes the first occurrence of letter from rack, if present.
func removeFirst(rack *[]string, letter string) {
	for i, tile := range *rack {
		if tile == letter {
			*rack = append((*rack)[:i], (*rack)[i+1:]...)
			return
		}
	}
}
