package board

import (
	"sort"
	"testing"
)

// boardFrom builds a Board from the placement field of a FEN string.
func boardFrom(t testing.TB, placement string) Board {
	t.Helper()
	var b Board
	rank, file := 0, 0
	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			rank++
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			p := PieceFromChar(c)
			if p == NoPiece || rank > 7 || file > 7 {
				t.Fatalf("bad placement %q at %d", placement, i)
			}
			b[NewSquare(rank, file)] = p
			file++
		}
	}
	return b
}

func positionFrom(t testing.TB, placement string, toMove Color, rights CastlingRights, ep Square) Position {
	t.Helper()
	return Position{
		Board:          boardFrom(t, placement),
		SideToMove:     toMove,
		CastlingRights: rights,
		EnPassant:      ep,
	}
}

// play applies coordinate moves in order, failing the test on any illegal one.
func play(t testing.TB, pos *Position, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := ParseMove(s, pos)
		if err != nil {
			t.Fatalf("play %s: %v", s, err)
		}
		pos.MakeMove(m)
	}
}

func squareNames(sqs []Square) []string {
	out := make([]string, len(sqs))
	for i, sq := range sqs {
		out[i] = sq.String()
	}
	sort.Strings(out)
	return out
}

func moveNames(ml MoveList) []string {
	out := make([]string, len(ml))
	for i, m := range ml {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
