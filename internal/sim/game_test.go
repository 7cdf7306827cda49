package sim

import (
	"context"
	"testing"

	"github.com/notnil/chess"

	"bookdepth/internal/explorer"
)

func TestPlayCountsCompletedMovePairs(t *testing.T) {
	// 1.e4 e5 2.Nf3, then Black has no book reply: one completed move pair.
	start := chess.StartingPosition()
	masters, _ := bookLine(t, start, []string{"e2e4", "e7e5", "g1f3"}, 40, 30, 30)

	src := &fakeSource{masters: masters}
	gen := func() *MoveGenerator { return NewMoveGenerator(src, explorer.MastersProfile(), PickTop) }
	game := &Simulator{White: gen(), Black: gen()}

	out, err := game.Play(context.Background(), start)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if out.FullMoves != 1 {
		t.Errorf("FullMoves = %d, want 1", out.FullMoves)
	}
	if out.ExhaustedSide != chess.Black {
		t.Errorf("ExhaustedSide = %v, want Black", out.ExhaustedSide)
	}
}

func TestPlayFromBlackToMoveStart(t *testing.T) {
	// Position after 1.e4; Black replies e5, then White is out of book.
	start := mustPosition(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	masters, _ := bookLine(t, start, []string{"e7e5"}, 40, 30, 30)

	src := &fakeSource{masters: masters}
	gen := func() *MoveGenerator { return NewMoveGenerator(src, explorer.MastersProfile(), PickTop) }
	game := &Simulator{White: gen(), Black: gen()}

	out, err := game.Play(context.Background(), start)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if out.FullMoves != 1 {
		t.Errorf("FullMoves = %d, want 1", out.FullMoves)
	}
	if out.ExhaustedSide != chess.White {
		t.Errorf("ExhaustedSide = %v, want White", out.ExhaustedSide)
	}
}

func TestPlayStartPositionHonorsFullmoveField(t *testing.T) {
	// Starting mid-game: after 1.e4 e5 the fullmove field is already 2, so
	// an immediate exhaustion still reports one completed pair.
	start := mustPosition(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	src := &fakeSource{masters: map[string][]explorer.CandidateMove{}}
	gen := func() *MoveGenerator { return NewMoveGenerator(src, explorer.MastersProfile(), PickTop) }
	game := &Simulator{White: gen(), Black: gen()}

	out, err := game.Play(context.Background(), start)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if out.FullMoves != 1 {
		t.Errorf("FullMoves = %d, want 1", out.FullMoves)
	}
}

func TestPlayTerminatesOnDeepLine(t *testing.T) {
	// A long forced line; the simulator must stop exactly where it ends.
	line := []string{
		"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6",
		"b5a4", "g8f6", "e1g1", "f8e7", "f1e1", "b7b5",
	}
	start := chess.StartingPosition()
	masters, _ := bookLine(t, start, line, 40, 30, 30)

	src := &fakeSource{masters: masters}
	gen := func() *MoveGenerator { return NewMoveGenerator(src, explorer.MastersProfile(), PickTop) }
	game := &Simulator{White: gen(), Black: gen()}

	out, err := game.Play(context.Background(), start)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	// 12 plies played, White to move on move 7 with no book left.
	if out.FullMoves != 6 {
		t.Errorf("FullMoves = %d, want 6", out.FullMoves)
	}
	if out.ExhaustedSide != chess.White {
		t.Errorf("ExhaustedSide = %v, want White", out.ExhaustedSide)
	}
}

func TestRenderBoardStartingPosition(t *testing.T) {
	got := RenderBoard(chess.StartingPosition())
	want := "♜ ♞ ♝ ♛ ♚ ♝ ♞ ♜\n"
	if len(got) == 0 || got[:len(want)] != want {
		t.Errorf("unexpected first rank:\n%s", got)
	}
}
