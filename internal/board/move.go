package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-13: promotion piece (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
// bits 14-15: flags (0=normal, 1=promotion, 2=en passant, 3=castling)
type Move uint16

// Move flags
const (
	FlagNormal    uint16 = 0 << 14
	FlagPromotion uint16 = 1 << 14
	FlagEnPassant uint16 = 2 << 14
	FlagCastling  uint16 = 3 << 14
)

// NoMove represents an invalid or null move. A8->A8 can never be generated.
const NoMove Move = 0

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	// promo: Knight=0, Bishop=1, Rook=2, Queen=3
	promoIdx := promo - Knight
	return Move(from) | Move(to)<<6 | Move(promoIdx)<<12 | Move(FlagPromotion)
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagEnPassant)
}

// NewCastling creates a castling move (king's movement).
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagCastling)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Flag returns the move flag.
func (m Move) Flag() uint16 {
	return uint16(m) & 0xC000
}

// Promotion returns the promotion piece type (only valid if IsPromotion() is true).
func (m Move) Promotion() PieceType {
	return PieceType((m>>12)&3) + Knight
}

// WithPromotion returns the promotion move with its piece replaced by pt.
func (m Move) WithPromotion(pt PieceType) Move {
	if !m.IsPromotion() || !pt.CanPromoteTo() {
		return m
	}
	return NewPromotion(m.From(), m.To(), pt)
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Flag() == FlagPromotion
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Flag() == FlagCastling
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	if m.IsCastling() {
		return false
	}
	return pos.Board.PieceAt(m.To()) != NoPiece
}

// String returns the coordinate form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		promoChars := []byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[m.Promotion()-Knight])
	}

	return s
}

// ParseMove parses a coordinate move string and matches it against the legal
// moves of pos. A promotion without a piece letter defaults to queen.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	promo := Queen
	if len(s) == 5 {
		var ok bool
		promo, ok = ParsePromotion(s[4])
		if !ok {
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	for _, m := range pos.LegalMoves(from) {
		if m.To() != to {
			continue
		}
		if m.IsPromotion() {
			return m.WithPromotion(promo), nil
		}
		if len(s) == 5 {
			return NoMove, fmt.Errorf("move %s is not a promotion", s[:4])
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("illegal move: %s", s)
}

// MoveList is a small ordered collection of moves.
type MoveList []Move

// Contains returns true if the list contains the move.
func (ml MoveList) Contains(m Move) bool {
	for _, x := range ml {
		if x == m {
			return true
		}
	}
	return false
}

// Targets returns the distinct destination squares in generation order.
func (ml MoveList) Targets() []Square {
	var seen [64]bool
	out := make([]Square, 0, len(ml))
	for _, m := range ml {
		to := m.To()
		if seen[to] {
			continue
		}
		seen[to] = true
		out = append(out, to)
	}
	return out
}

// Find returns the first move from src to dst, or NoMove.
func (ml MoveList) Find(src, dst Square) Move {
	for _, m := range ml {
		if m.From() == src && m.To() == dst {
			return m
		}
	}
	return NoMove
}
