package sim

import (
	"context"
	"fmt"

	"github.com/notnil/chess"

	"bookdepth/internal/explorer"
)

// minBookGames is the masters-database game count below which a position is
// considered out of book for everyone, whatever profile is acting.
const minBookGames = 5

// MoveSource is the slice of the explorer client the simulator depends on.
type MoveSource interface {
	Lookup(ctx context.Context, profile explorer.Profile, fen string) ([]explorer.CandidateMove, error)
}

// MoveGenerator binds a query profile to a selection strategy. It holds no
// per-game state.
type MoveGenerator struct {
	source   MoveSource
	profile  explorer.Profile
	pick     Strategy
	minGames int
}

func NewMoveGenerator(source MoveSource, profile explorer.Profile, pick Strategy) *MoveGenerator {
	return &MoveGenerator{
		source:   source,
		profile:  profile,
		pick:     pick,
		minGames: minBookGames,
	}
}

// GetMove produces the generator's book move for the position. ok reports
// whether a book move exists; ok=false with a nil error means the book is
// exhausted. The masters database is always consulted first as the
// exhaustion check, even when the generator's own profile is the
// rated-player database: once a position is obscure by master standards the
// simulation stops, whether or not rated players still reach it.
func (g *MoveGenerator) GetMove(ctx context.Context, pos *chess.Position) (*chess.Move, bool, error) {
	fen := pos.String()

	masters, err := g.source.Lookup(ctx, explorer.MastersProfile(), fen)
	if err != nil {
		return nil, false, err
	}
	total := 0
	for _, m := range masters {
		total += m.Games()
	}
	if total < g.minGames {
		return nil, false, nil
	}

	candidates, err := g.source.Lookup(ctx, g.profile, fen)
	if err != nil {
		return nil, false, err
	}
	if len(candidates) == 0 {
		return nil, false, nil
	}

	choice := g.pick(candidates)
	notation := chess.UCINotation{}
	mv, err := notation.Decode(pos, choice.UCI)
	if err != nil {
		return nil, false, fmt.Errorf("book move %q does not decode for %q: %w", choice.UCI, fen, err)
	}
	if !isLegal(pos, mv) {
		return nil, false, fmt.Errorf("book move %q is illegal for %q", choice.UCI, fen)
	}
	return mv, true, nil
}

func isLegal(pos *chess.Position, mv *chess.Move) bool {
	for _, legal := range pos.ValidMoves() {
		if legal.S1() == mv.S1() && legal.S2() == mv.S2() && legal.Promo() == mv.Promo() {
			return true
		}
	}
	return false
}
