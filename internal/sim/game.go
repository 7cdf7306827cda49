package sim

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// Outcome describes one finished simulation. FullMoves counts the last fully
// completed move pair: the fullmove number at termination minus one.
type Outcome struct {
	FinalPosition *chess.Position
	FullMoves     int
	ExhaustedSide chess.Color
}

// Simulator alternates two move generators over a position until the side to
// move has no book move left. It knows nothing about checkmate or draws;
// book exhaustion is the only exit.
type Simulator struct {
	White *MoveGenerator
	Black *MoveGenerator
}

func (s *Simulator) Play(ctx context.Context, start *chess.Position) (Outcome, error) {
	fullmove, err := fullmoveNumber(start)
	if err != nil {
		return Outcome{}, err
	}

	pos := start
	for {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}

		gen := s.White
		if pos.Turn() == chess.Black {
			gen = s.Black
		}

		mv, ok, err := gen.GetMove(ctx, pos)
		if err != nil {
			return Outcome{}, err
		}
		if !ok {
			return Outcome{
				FinalPosition: pos,
				FullMoves:     fullmove - 1,
				ExhaustedSide: pos.Turn(),
			}, nil
		}

		// The fullmove counter advances after Black's move.
		if pos.Turn() == chess.Black {
			fullmove++
		}
		pos = pos.Update(mv)
	}
}

// fullmoveNumber reads the sixth FEN field of the position.
func fullmoveNumber(pos *chess.Position) (int, error) {
	fields := strings.Fields(pos.String())
	if len(fields) != 6 {
		return 0, fmt.Errorf("malformed FEN %q", pos.String())
	}
	n, err := strconv.Atoi(fields[5])
	if err != nil {
		return 0, fmt.Errorf("malformed fullmove field in %q: %w", pos.String(), err)
	}
	return n, nil
}
