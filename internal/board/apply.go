package board

import "fmt"

// MovePieces relocates the pieces for m and updates castling rights and the
// en-passant target. It returns the captured piece (the passed pawn for en
// passant), or NoPiece. Promotion and the turn flip are left to the caller.
func (p *Position) MovePieces(m Move) Piece {
	from, to := m.From(), m.To()
	piece := p.Board[from]
	captured := p.Board[to]

	switch {
	case m.IsEnPassant():
		victim := enPassantVictim(to, piece.Color())
		captured = p.Board[victim]
		p.Board[victim] = NoPiece
	case m.IsCastling():
		kingSide := to.File() > from.File()
		c := piece.Color()
		rookFrom, rookTo := castleRookFrom(c, kingSide), CastleRookTo(c, kingSide)
		p.Board[rookTo] = p.Board[rookFrom]
		p.Board[rookFrom] = NoPiece
		captured = NoPiece
	}

	p.Board[to] = piece
	p.Board[from] = NoPiece

	p.CastlingRights &= castlingMask[from] & castlingMask[to]

	p.EnPassant = NoSquare
	if piece.Type() == Pawn {
		if dr := to.Rank() - from.Rank(); dr == 2 || dr == -2 {
			p.EnPassant = NewSquare((from.Rank()+to.Rank())/2, from.File())
		}
	}
	return captured
}

// PromotePawn replaces the pawn on sq with a piece of type pt and the same
// color.
func (p *Position) PromotePawn(sq Square, pt PieceType) error {
	pawn := p.Board[sq]
	if pawn.Type() != Pawn {
		return fmt.Errorf("no pawn on %s", sq)
	}
	if !pt.CanPromoteTo() {
		return fmt.Errorf("cannot promote to %s", pt)
	}
	p.Board[sq] = NewPiece(pt, pawn.Color())
	return nil
}

// PassTurn hands the move to the other side.
func (p *Position) PassTurn() {
	p.SideToMove = p.SideToMove.Other()
}

// MakeMove applies m completely: pieces, promotion and turn. It returns the
// captured piece. m is assumed to be legal in p.
func (p *Position) MakeMove(m Move) Piece {
	captured := p.MovePieces(m)
	if m.IsPromotion() {
		p.Board[m.To()] = NewPiece(m.Promotion(), p.SideToMove)
	}
	p.PassTurn()
	return captured
}

// Apply returns a copy of p with m made.
func (p *Position) Apply(m Move) Position {
	next := *p
	next.MakeMove(m)
	return next
}
