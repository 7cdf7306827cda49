package sim

import (
	"context"
	"os"
	"testing"

	"bookdepth/internal/explorer"
)

// Runs against the live opening explorer; master-book coverage of top-line
// theory after 1.e4 e5 should survive well past move ten.
func TestDeepMasterLineOnline(t *testing.T) {
	if os.Getenv("BOOKDEPTH_ONLINE_TESTS") == "" {
		t.Skip("set BOOKDEPTH_ONLINE_TESTS=1 to query the live explorer")
	}

	client := explorer.NewClient("", nil, nil)
	top := NewMoveGenerator(client, explorer.MastersProfile(), PickTop)
	game := &Simulator{White: top, Black: top}

	start := mustPosition(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	out, err := game.Play(context.Background(), start)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if out.FullMoves < 10 {
		t.Errorf("top master line exhausted after only %d full moves", out.FullMoves)
	}
}
