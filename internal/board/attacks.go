package board

// IsSquareAttacked returns true if any piece of the color opposing defender
// attacks sq. Pawns attack their two forward diagonals whether or not the
// square is occupied, and never attack the square in front of them.
func (b *Board) IsSquareAttacked(sq Square, defender Color) bool {
	them := defender.Other()

	// An enemy pawn attacking sq stands one step behind it from the enemy's
	// point of view.
	pawn := NewPiece(Pawn, them)
	dir := forward(them)
	for _, df := range []int{-1, 1} {
		if from := sq.Offset(-dir, df); from != NoSquare && b[from] == pawn {
			return true
		}
	}

	knight := NewPiece(Knight, them)
	for _, o := range knightOffsets {
		if from := sq.Offset(o.dr, o.df); from != NoSquare && b[from] == knight {
			return true
		}
	}

	king := NewPiece(King, them)
	for _, o := range kingOffsets {
		if from := sq.Offset(o.dr, o.df); from != NoSquare && b[from] == king {
			return true
		}
	}

	queen := NewPiece(Queen, them)
	if b.rayHits(sq, rookDirs, NewPiece(Rook, them), queen) {
		return true
	}
	return b.rayHits(sq, bishopDirs, NewPiece(Bishop, them), queen)
}

// rayHits walks each direction from sq and reports whether the first piece met
// is one of the two given sliders.
func (b *Board) rayHits(sq Square, dirs []offset, slider, queen Piece) bool {
	for _, d := range dirs {
		for to := sq.Offset(d.dr, d.df); to != NoSquare; to = to.Offset(d.dr, d.df) {
			p := b[to]
			if p == NoPiece {
				continue
			}
			if p == slider || p == queen {
				return true
			}
			break
		}
	}
	return false
}

// InCheck returns true if c's king is attacked. It panics if c has no king.
func (b *Board) InCheck(c Color) bool {
	return b.IsSquareAttacked(b.mustKingSquare(c), c)
}

// Attackers returns the squares of the pieces of the color opposing defender
// that attack sq, in board order.
func (b *Board) Attackers(sq Square, defender Color) []Square {
	var out []Square
	them := defender.Other()
	for from := A8; from < NoSquare; from++ {
		p := b[from]
		if p == NoPiece || p.Color() != them {
			continue
		}
		if b.attacksFrom(from, p, sq) {
			out = append(out, from)
		}
	}
	return out
}

func (b *Board) attacksFrom(from Square, p Piece, sq Square) bool {
	if p.Type() == Pawn {
		dir := forward(p.Color())
		return sq == from.Offset(dir, -1) || sq == from.Offset(dir, 1)
	}
	for _, to := range PseudoLegalTargets(b, from, p) {
		if to == sq {
			return true
		}
	}
	return false
}
