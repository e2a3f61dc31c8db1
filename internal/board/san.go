package board

import (
	"fmt"
	"strings"
)

// ToSAN renders m, played from pos, in short algebraic notation: piece letter
// (none for pawns), origin file for pawn captures, 'x' on capture, destination,
// "=Q" style promotion suffix, then '#' on mate or '+' on check. Castling is
// "O-O" or "O-O-O". Like pieces that could reach the same square are not
// disambiguated.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := pos.PieceAt(from)

	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	if m.IsCastling() {
		if to.File() > from.File() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := piece.Type()
		sb.WriteString(pt.Letter())

		if m.IsCapture(pos) {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteString(m.Promotion().Letter())
		}
	}

	sb.WriteString(checkSuffix(pos.Apply(m)))
	return sb.String()
}

// checkSuffix returns "#" if the side to move in after is mated, "+" if it is
// only in check, and "" otherwise.
func checkSuffix(after Position) string {
	st := after.Status()
	switch {
	case st.IsCheckmate:
		return "#"
	case st.InCheck:
		return "+"
	}
	return ""
}

// Notation renders the move from->to (promoting to promo when the pawn reaches
// the last rank) played from pos. The move must be legal.
func Notation(pos *Position, from, to Square, promo PieceType) string {
	m := pos.LegalMoves(from).Find(from, to)
	if m == NoMove {
		return NewMove(from, to).String()
	}
	return m.WithPromotion(promo).ToSAN(pos)
}

// FormatMoveNumber renders a history entry for display: "1. e4" for White and
// "1... e5" for Black.
func FormatMoveNumber(n int, mover Color, san string) string {
	if mover == Black {
		return fmt.Sprintf("%d... %s", n, san)
	}
	return fmt.Sprintf("%d. %s", n, san)
}
