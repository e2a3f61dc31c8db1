package board

func castleKingFrom(c Color) Square {
	return NewSquare(BackRank(c), 4)
}

func castleRookFrom(c Color, kingSide bool) Square {
	if kingSide {
		return NewSquare(BackRank(c), 7)
	}
	return NewSquare(BackRank(c), 0)
}

// CastleKingTo returns the king's destination when c castles.
func CastleKingTo(c Color, kingSide bool) Square {
	if kingSide {
		return NewSquare(BackRank(c), 6)
	}
	return NewSquare(BackRank(c), 2)
}

// CastleRookTo returns the rook's destination when c castles.
func CastleRookTo(c Color, kingSide bool) Square {
	if kingSide {
		return NewSquare(BackRank(c), 5)
	}
	return NewSquare(BackRank(c), 3)
}

// CanCastle reports whether the side to move may castle in the given direction
// right now: the right is held, king and rook are home, the squares between them
// are empty, and the king is not in check and crosses no attacked square.
func (p *Position) CanCastle(kingSide bool) bool {
	us := p.SideToMove
	if !p.CastlingRights.CanCastle(us, kingSide) {
		return false
	}
	kingFrom := castleKingFrom(us)
	rookFrom := castleRookFrom(us, kingSide)
	if p.Board[kingFrom] != NewPiece(King, us) || p.Board[rookFrom] != NewPiece(Rook, us) {
		return false
	}

	rank := BackRank(us)
	lo, hi := rookFrom.File()+1, kingFrom.File()-1
	if kingSide {
		lo, hi = kingFrom.File()+1, rookFrom.File()-1
	}
	for file := lo; file <= hi; file++ {
		if !p.Board.IsEmpty(NewSquare(rank, file)) {
			return false
		}
	}

	if p.Board.IsSquareAttacked(kingFrom, us) {
		return false
	}
	step := 1
	if !kingSide {
		step = -1
	}
	kingTo := CastleKingTo(us, kingSide)
	for file := kingFrom.File() + step; ; file += step {
		if p.Board.IsSquareAttacked(NewSquare(rank, file), us) {
			return false
		}
		if file == kingTo.File() {
			break
		}
	}
	return true
}

func (p *Position) castlingMoves(from Square) MoveList {
	us := p.SideToMove
	if from != castleKingFrom(us) {
		return nil
	}
	var moves MoveList
	for _, kingSide := range []bool{true, false} {
		if p.CanCastle(kingSide) {
			moves = append(moves, NewCastling(from, CastleKingTo(us, kingSide)))
		}
	}
	return moves
}

// enPassantMove returns the en-passant capture available to the pawn on from.
func (p *Position) enPassantMove(from Square) (Move, bool) {
	ep := p.EnPassant
	if ep == NoSquare {
		return NoMove, false
	}
	us := p.SideToMove
	if p.Board[from] != NewPiece(Pawn, us) {
		return NoMove, false
	}
	if ep.Rank() != from.Rank()+forward(us) {
		return NoMove, false
	}
	if df := ep.File() - from.File(); df != 1 && df != -1 {
		return NoMove, false
	}
	if p.Board[ep] != NoPiece || p.Board[enPassantVictim(ep, us)] != NewPiece(Pawn, us.Other()) {
		return NoMove, false
	}
	return NewEnPassant(from, ep), true
}

// enPassantVictim returns the square of the pawn removed when mover captures en
// passant onto ep.
func enPassantVictim(ep Square, mover Color) Square {
	return ep.Offset(-forward(mover), 0)
}

// NeedsPromotion reports whether moving piece to to must be followed by a
// promotion.
func NeedsPromotion(piece Piece, to Square) bool {
	return piece.Type() == Pawn && to.Rank() == PromotionRank(piece.Color())
}
