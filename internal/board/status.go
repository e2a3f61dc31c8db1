package board

// Status summarises the side to move's situation.
type Status struct {
	InCheck     bool
	IsCheckmate bool
	IsStalemate bool
}

// GameOver returns true on checkmate or stalemate.
func (s Status) GameOver() bool {
	return s.IsCheckmate || s.IsStalemate
}

// Status computes check, checkmate and stalemate for the side to move.
func (p *Position) Status() Status {
	inCheck := p.InCheck()
	hasMove := p.HasLegalMove()
	return Status{
		InCheck:     inCheck,
		IsCheckmate: inCheck && !hasMove,
		IsStalemate: !inCheck && !hasMove,
	}
}

// IsCheckmate reports whether c is checkmated on b, with no castling rights or
// en-passant target.
func IsCheckmate(b Board, c Color) bool {
	pos := PositionFromBoard(b, c)
	return pos.Status().IsCheckmate
}

// IsStalemate reports whether c is stalemated on b, with no castling rights or
// en-passant target.
func IsStalemate(b Board, c Color) bool {
	pos := PositionFromBoard(b, c)
	return pos.Status().IsStalemate
}
