// Package board implements the chess rules: an 8x8 mailbox board, move
// generation, attack detection, legality filtering, special moves, game status
// and move notation.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Squares are stored rank-major with rank 0 being Black's back rank:
// A8=0, H8=7, A1=56, H1=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// NewSquare creates a square from rank and file (0-indexed, rank 0 = 8th rank).
func NewSquare(rank, file int) Square {
	return Square(rank*8 + file)
}

// SquareAt returns the square at (rank, file), or NoSquare if off the board.
func SquareAt(rank, file int) Square {
	if rank < 0 || rank > 7 || file < 0 || file > 7 {
		return NoSquare
	}
	return NewSquare(rank, file)
}

// Rank returns the internal rank (0-7, where 0 is the 8th rank).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// String returns the algebraic ID for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '8'-sq.Rank())
}

// ParseSquare parses an algebraic ID (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	file := int(s[0]) - 'a'
	rank := 8 - (int(s[1]) - '0')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	return NewSquare(rank, file), nil
}

// MustSquare parses an algebraic ID and panics on failure. Intended for
// constants and tests.
func MustSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Offset returns the square dr ranks and df files away, or NoSquare when that
// leaves the board.
func (sq Square) Offset(dr, df int) Square {
	return SquareAt(sq.Rank()+dr, sq.File()+df)
}

// BackRank returns the internal rank index of a color's first rank.
func BackRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// PromotionRank returns the internal rank index where c's pawns promote.
func PromotionRank(c Color) int {
	return BackRank(c.Other())
}

// pawnStartRank returns the rank index c's pawns start on.
func pawnStartRank(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// forward returns the rank delta of a pawn step for c.
func forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}
