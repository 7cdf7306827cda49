package explorer

import (
	"fmt"
	"net/url"
)

// Source selects which opening explorer collection a profile queries.
type Source int

const (
	// Masters is the OTB master games collection.
	Masters Source = iota
	// Players is the online rated-player games collection.
	Players
)

// Profile describes one side's database and filters. Speed and Rating only
// apply to the Players source.
type Profile struct {
	Source Source
	Speed  string
	Rating string
}

func MastersProfile() Profile {
	return Profile{Source: Masters}
}

func PlayersProfile(speed, rating string) Profile {
	return Profile{Source: Players, Speed: speed, Rating: rating}
}

func (p Profile) url(base, fen string) string {
	params := url.Values{}
	params.Set("fen", fen)

	switch p.Source {
	case Players:
		params.Set("variant", "standard")
		params.Add("speeds[]", p.Speed)
		params.Add("ratings[]", p.Rating)
		return base + "/lichess?" + params.Encode()
	default:
		return base + "/masters?" + params.Encode()
	}
}

// cacheKey is stable across runs; the FEN goes last so keys stay readable.
func (p Profile) cacheKey(fen string) string {
	if p.Source == Players {
		return fmt.Sprintf("lichess|%s|%s|%s", p.Speed, p.Rating, fen)
	}
	return "masters|" + fen
}
