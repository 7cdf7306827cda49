package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/montanaflynn/stats"
	"github.com/notnil/chess"
	"go.uber.org/zap"

	"bookdepth/internal/explorer"
)

// Experiment fixes the starting position and profiles for a batch of games.
type Experiment struct {
	FEN    string
	Games  int
	Speed  string
	Rating string
}

// Report aggregates the depth samples of one experiment. Aborted is set when
// a game failed before the target count was reached; Depths then holds the
// samples collected up to that point.
type Report struct {
	Depths  []int
	Mean    float64
	Median  float64
	StdDev  float64
	Aborted bool
}

// Driver replays games from the same starting position and accumulates their
// book depths.
type Driver struct {
	source MoveSource
	rng    *rand.Rand
	log    *zap.Logger
}

func NewDriver(source MoveSource, rng *rand.Rand, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{source: source, rng: rng, log: logger}
}

// Run simulates games until the target sample count is reached. A failed
// game stops the run early; the report still carries every sample gathered
// before the failure.
func (d *Driver) Run(ctx context.Context, exp Experiment) (Report, error) {
	opt, err := chess.FEN(exp.FEN)
	if err != nil {
		return Report{}, fmt.Errorf("parse FEN %q: %w", exp.FEN, err)
	}
	start := chess.NewGame(opt).Position()

	book := NewMoveGenerator(d.source, explorer.MastersProfile(), PickTop)
	rated := NewMoveGenerator(d.source, explorer.PlayersProfile(exp.Speed, exp.Rating), PickRandom(d.rng))

	// The side to move plays sampled rated-player moves; the side that has
	// just moved replies with top master moves.
	game := &Simulator{White: book, Black: rated}
	if start.Turn() == chess.White {
		game = &Simulator{White: rated, Black: book}
	}

	report := Report{Depths: make([]int, 0, exp.Games)}
	for len(report.Depths) < exp.Games {
		out, err := game.Play(ctx, start)
		if err != nil {
			d.log.Error("game failed, stopping early",
				zap.Error(err),
				zap.Int("samples", len(report.Depths)))
			report.Aborted = true
			break
		}

		d.log.Info("out of book",
			zap.String("side", colorName(out.ExhaustedSide)),
			zap.Int("fullmove", out.FullMoves+1),
			zap.String("fen", out.FinalPosition.String()))
		d.log.Debug("final position:\n" + RenderBoard(out.FinalPosition))

		report.Depths = append(report.Depths, out.FullMoves)
	}

	fillStats(&report)
	return report, nil
}

func fillStats(r *Report) {
	if len(r.Depths) == 0 {
		return
	}
	data := make(stats.Float64Data, len(r.Depths))
	for i, depth := range r.Depths {
		data[i] = float64(depth)
	}
	if m, err := stats.Mean(data); err == nil {
		r.Mean = m
	}
	if m, err := stats.Median(data); err == nil {
		r.Median = m
	}
	if s, err := stats.StandardDeviation(data); err == nil {
		r.StdDev = s
	}
}
