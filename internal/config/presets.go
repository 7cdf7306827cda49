package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// defaultPresets are common opening positions, keyed by a short name with a
// _w/_b suffix for which side is being probed.
var defaultPresets = map[string]string{
	"scotch_w":        "r1bqkbnr/pppp1ppp/2n5/4p3/3PP3/5N2/PPP2PPP/RNBQKB1R b KQkq - 0 3",
	"ruy_w":           "r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3",
	"open_sicilian_w": "rnbqkbnr/pp2pppp/3p4/2p5/3PP3/5N2/PPP2PPP/RNBQKB1R b KQkq - 0 3",

	"e5_b":       "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
	"sicilian_b": "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
	"caro_b":     "rnbqkbnr/pp1ppppp/2p5/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
}

// PresetStore maps preset names to FENs. Entries loaded from a JSON file
// shadow the built-ins.
type PresetStore struct {
	presets map[string]string
}

func LoadPresets(path string) (*PresetStore, error) {
	presets := make(map[string]string, len(defaultPresets))
	for name, fen := range defaultPresets {
		presets[name] = fen
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read presets: %w", err)
		}
		var extra map[string]string
		if err := json.Unmarshal(data, &extra); err != nil {
			return nil, fmt.Errorf("parse presets: %w", err)
		}
		for name, fen := range extra {
			presets[name] = fen
		}
	}

	return &PresetStore{presets: presets}, nil
}

func (s *PresetStore) Lookup(name string) (string, bool) {
	fen, ok := s.presets[name]
	return fen, ok
}

// ResolveFEN turns the --fen argument into a raw FEN: a known preset name
// resolves to its position, a non-empty value is taken as a literal FEN, and
// an empty value prompts on in.
func (s *PresetStore) ResolveFEN(input string, in io.Reader, out io.Writer) (string, error) {
	if fen, ok := s.Lookup(input); ok {
		return fen, nil
	}
	if input != "" {
		return input, nil
	}

	fmt.Fprint(out, "FEN:")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read FEN: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("no FEN given")
	}
	return line, nil
}
