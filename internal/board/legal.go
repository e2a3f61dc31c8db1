package board

// isLegal simulates m on a scratch copy and reports whether the mover's king
// is left unattacked.
func (p *Position) isLegal(m Move) bool {
	scratch := *p
	us := scratch.SideToMove
	scratch.MovePieces(m)
	return !scratch.Board.InCheck(us)
}

// LegalMoves returns the legal moves of the side-to-move piece on from.
// Each promoting destination appears once per promotion piece.
func (p *Position) LegalMoves(from Square) MoveList {
	candidates := p.pseudoMoves(from)
	legal := candidates[:0]
	for _, m := range candidates {
		if p.isLegal(m) {
			legal = append(legal, m)
		}
	}
	if len(legal) == 0 {
		return nil
	}
	return legal
}

// LegalTargets returns the distinct destinations of LegalMoves(from).
func (p *Position) LegalTargets(from Square) []Square {
	return p.LegalMoves(from).Targets()
}

// AllLegalMoves returns every legal move of the side to move, in board order.
func (p *Position) AllLegalMoves() MoveList {
	var moves MoveList
	for sq := A8; sq < NoSquare; sq++ {
		piece := p.Board[sq]
		if piece == NoPiece || piece.Color() != p.SideToMove {
			continue
		}
		moves = append(moves, p.LegalMoves(sq)...)
	}
	return moves
}

// HasLegalMove reports whether the side to move has any legal move. The king is
// tried first since it is the likeliest escape.
func (p *Position) HasLegalMove() bool {
	king := p.Board.mustKingSquare(p.SideToMove)
	if p.anyLegal(king) {
		return true
	}
	for sq := A8; sq < NoSquare; sq++ {
		piece := p.Board[sq]
		if sq == king || piece == NoPiece || piece.Color() != p.SideToMove {
			continue
		}
		if p.anyLegal(sq) {
			return true
		}
	}
	return false
}

func (p *Position) anyLegal(from Square) bool {
	for _, m := range p.pseudoMoves(from) {
		if p.isLegal(m) {
			return true
		}
	}
	return false
}

// IsLegal reports whether m is one of the legal moves in p.
func (p *Position) IsLegal(m Move) bool {
	return p.LegalMoves(m.From()).Contains(m)
}
