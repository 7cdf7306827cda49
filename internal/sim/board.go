package sim

import (
	"strings"

	"github.com/notnil/chess"
)

// RenderBoard draws the position rank by rank with figurine glyphs, used in
// the end-of-game report.
func RenderBoard(pos *chess.Position) string {
	var sb strings.Builder
	b := pos.Board()

	for r := chess.Rank8; r >= chess.Rank1; r-- {
		for f := chess.FileA; f <= chess.FileH; f++ {
			sq := chess.NewSquare(f, r)
			glyph := pieceGlyph(b.Piece(sq))
			if glyph == "" {
				glyph = "."
			}
			sb.WriteString(glyph)
			if f != chess.FileH {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func colorName(c chess.Color) string {
	if c == chess.White {
		return "White"
	}
	return "Black"
}

func pieceGlyph(p chess.Piece) string {
	if p == chess.NoPiece {
		return ""
	}

	isWhite := p.Color() == chess.White
	switch p.Type() {
	case chess.King:
		if isWhite {
			return "♔"
		}
		return "♚"
	case chess.Queen:
		if isWhite {
			return "♕"
		}
		return "♛"
	case chess.Rook:
		if isWhite {
			return "♖"
		}
		return "♜"
	case chess.Bishop:
		if isWhite {
			return "♗"
		}
		return "♝"
	case chess.Knight:
		if isWhite {
			return "♘"
		}
		return "♞"
	case chess.Pawn:
		if isWhite {
			return "♙"
		}
		return "♟"
	default:
		return ""
	}
}
