package sim

import (
	"math/rand"

	"bookdepth/internal/explorer"
)

// Strategy picks one candidate from a non-empty list.
type Strategy func(moves []explorer.CandidateMove) explorer.CandidateMove

// PickTop returns the first candidate. The explorer sorts candidates by game
// count descending, so this is the most popular move.
func PickTop(moves []explorer.CandidateMove) explorer.CandidateMove {
	return moves[0]
}

// PickRandom builds a strategy that samples a candidate with probability
// proportional to its total game count. When every candidate has a zero
// count, the choice is uniform.
func PickRandom(rng *rand.Rand) Strategy {
	return func(moves []explorer.CandidateMove) explorer.CandidateMove {
		total := 0
		for _, m := range moves {
			total += m.Games()
		}
		if total <= 0 {
			return moves[rng.Intn(len(moves))]
		}

		n := rng.Intn(total)
		for _, m := range moves {
			n -= m.Games()
			if n < 0 {
				return m
			}
		}
		return moves[len(moves)-1]
	}
}
