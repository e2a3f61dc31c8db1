package board

import "fmt"

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the rights as "KQkq" letters, or "-" when none remain.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

func castleRight(c Color, kingSide bool) CastlingRights {
	if c == White {
		if kingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if kingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// castlingMask[sq] is ANDed into the rights whenever a move starts or ends on
// sq. Rook corners drop one right, king homes drop both.
var castlingMask [64]CastlingRights

func init() {
	for sq := range castlingMask {
		castlingMask[sq] = AllCastling
	}
	castlingMask[A1] &^= WhiteQueenSideCastle
	castlingMask[H1] &^= WhiteKingSideCastle
	castlingMask[E1] &^= WhiteKingSideCastle | WhiteQueenSideCastle
	castlingMask[A8] &^= BlackQueenSideCastle
	castlingMask[H8] &^= BlackKingSideCastle
	castlingMask[E8] &^= BlackKingSideCastle | BlackQueenSideCastle
}

// Position is a board together with the state needed to generate moves.
// It is a value type; copies are fully independent.
type Position struct {
	Board          Board
	SideToMove     Color
	CastlingRights CastlingRights
	// EnPassant is the square a pawn passed over on the previous ply, or
	// NoSquare.
	EnPassant Square
}

// NewPosition returns the initial position.
func NewPosition() Position {
	return Position{
		Board:          StartBoard(),
		SideToMove:     White,
		CastlingRights: AllCastling,
		EnPassant:      NoSquare,
	}
}

// PositionFromBoard wraps b with no castling rights and no en-passant target.
func PositionFromBoard(b Board, toMove Color) Position {
	return Position{
		Board:          b,
		SideToMove:     toMove,
		CastlingRights: NoCastling,
		EnPassant:      NoSquare,
	}
}

// PieceAt returns the piece on sq.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Board.PieceAt(sq)
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.Board.InCheck(p.SideToMove)
}

// Validate checks the board and that every castling right still has its king
// and rook at home.
func (p *Position) Validate() error {
	if err := p.Board.Validate(); err != nil {
		return err
	}
	for _, c := range []Color{White, Black} {
		for _, kingSide := range []bool{true, false} {
			if !p.CastlingRights.CanCastle(c, kingSide) {
				continue
			}
			king, rook := castleKingFrom(c), castleRookFrom(c, kingSide)
			if p.Board[king] != NewPiece(King, c) || p.Board[rook] != NewPiece(Rook, c) {
				return fmt.Errorf("castling right %s without king and rook at home",
					castleRight(c, kingSide))
			}
		}
	}
	return nil
}

// String returns a diagram plus the side to move, rights and en-passant target.
func (p *Position) String() string {
	s := p.Board.String()
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.CastlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	return s
}
