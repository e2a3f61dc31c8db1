package board

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by Board.Validate.
var (
	ErrKingCount      = errors.New("board must have exactly one king per color")
	ErrPawnBackRank   = errors.New("pawn on a back rank")
	ErrKingNotOnBoard = errors.New("king not on board")
)

// Board is an 8x8 mailbox indexed by Square. It is a value type: assigning a
// Board copies every square.
type Board [64]Piece

var backRankOrder = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartBoard returns the standard initial arrangement.
func StartBoard() Board {
	var b Board
	for file := 0; file < 8; file++ {
		b[NewSquare(0, file)] = NewPiece(backRankOrder[file], Black)
		b[NewSquare(1, file)] = BlackPawn
		b[NewSquare(6, file)] = WhitePawn
		b[NewSquare(7, file)] = NewPiece(backRankOrder[file], White)
	}
	return b
}

// PieceAt returns the piece on sq, or NoPiece when sq is empty or off the board.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b[sq]
}

// IsEmpty returns true if no piece stands on sq.
func (b *Board) IsEmpty(sq Square) bool {
	return b.PieceAt(sq) == NoPiece
}

// Set places p on sq. NoPiece clears the square.
func (b *Board) Set(sq Square, p Piece) {
	b[sq] = p
}

// KingSquare returns the square of c's king, or NoSquare when it is missing.
func (b *Board) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq := A8; sq < NoSquare; sq++ {
		if b[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// mustKingSquare is KingSquare for callers that rely on the one-king invariant.
func (b *Board) mustKingSquare(c Color) Square {
	sq := b.KingSquare(c)
	if sq == NoSquare {
		panic(fmt.Errorf("%w: %s", ErrKingNotOnBoard, c))
	}
	return sq
}

// Count returns the number of pieces of type pt and color c.
func (b *Board) Count(pt PieceType, c Color) int {
	want := NewPiece(pt, c)
	n := 0
	for _, p := range b {
		if p == want {
			n++
		}
	}
	return n
}

// Material returns the summed piece values of c.
func (b *Board) Material(c Color) int {
	total := 0
	for _, p := range b {
		if p != NoPiece && p.Color() == c {
			total += p.Value()
		}
	}
	return total
}

// Validate checks the structural invariants every reachable board satisfies.
func (b *Board) Validate() error {
	if b.Count(King, White) != 1 || b.Count(King, Black) != 1 {
		return ErrKingCount
	}
	for file := 0; file < 8; file++ {
		for _, rank := range []int{0, 7} {
			if b[NewSquare(rank, file)].Type() == Pawn {
				return fmt.Errorf("%w: %s", ErrPawnBackRank, NewSquare(rank, file))
			}
		}
	}
	return nil
}

// String returns a text diagram of the board, white at the bottom.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  +-----------------+\n")
	for rank := 0; rank < 8; rank++ {
		fmt.Fprintf(&sb, "%d | ", 8-rank)
		for file := 0; file < 8; file++ {
			p := b[NewSquare(rank, file)]
			if p == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String())
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  +-----------------+\n")
	sb.WriteString("    a b c d e f g h\n")
	return sb.String()
}
