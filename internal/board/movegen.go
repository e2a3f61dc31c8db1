package board

type offset struct{ dr, df int }

var (
	knightOffsets = [8]offset{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	kingOffsets = [8]offset{
		{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
		{0, 1}, {1, -1}, {1, 0}, {1, 1},
	}
	rookDirs   = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	queenDirs  = append(append([]offset{}, rookDirs...), bishopDirs...)
)

// promotionOrder lists promotion pieces strongest first.
var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// PseudoLegalTargets returns the squares piece could move to from from,
// following its movement pattern only. Check, castling and en passant are not
// considered. An empty or unknown piece yields nil.
func PseudoLegalTargets(b *Board, from Square, piece Piece) []Square {
	if piece == NoPiece || !from.IsValid() {
		return nil
	}
	us := piece.Color()
	var out []Square

	switch piece.Type() {
	case Pawn:
		dir := forward(us)
		one := from.Offset(dir, 0)
		if one != NoSquare && b.IsEmpty(one) {
			out = append(out, one)
			if from.Rank() == pawnStartRank(us) {
				two := from.Offset(2*dir, 0)
				if two != NoSquare && b.IsEmpty(two) {
					out = append(out, two)
				}
			}
		}
		for _, df := range []int{-1, 1} {
			to := from.Offset(dir, df)
			if to == NoSquare {
				continue
			}
			if target := b[to]; target != NoPiece && target.Color() != us {
				out = append(out, to)
			}
		}
	case Knight:
		out = stepTargets(b, from, us, knightOffsets[:])
	case King:
		out = stepTargets(b, from, us, kingOffsets[:])
	case Bishop:
		out = slideTargets(b, from, us, bishopDirs)
	case Rook:
		out = slideTargets(b, from, us, rookDirs)
	case Queen:
		out = slideTargets(b, from, us, queenDirs)
	}
	return out
}

func stepTargets(b *Board, from Square, us Color, offsets []offset) []Square {
	out := make([]Square, 0, len(offsets))
	for _, o := range offsets {
		to := from.Offset(o.dr, o.df)
		if to == NoSquare {
			continue
		}
		if target := b[to]; target == NoPiece || target.Color() != us {
			out = append(out, to)
		}
	}
	return out
}

func slideTargets(b *Board, from Square, us Color, dirs []offset) []Square {
	var out []Square
	for _, d := range dirs {
		to := from.Offset(d.dr, d.df)
		for to != NoSquare {
			target := b[to]
			if target != NoPiece {
				if target.Color() != us {
					out = append(out, to)
				}
				break
			}
			out = append(out, to)
			to = to.Offset(d.dr, d.df)
		}
	}
	return out
}

// pseudoMoves returns every candidate move of the piece on from, including
// castling and en passant, without the own-king safety test. Promotions are
// expanded into one move per promotion piece.
func (p *Position) pseudoMoves(from Square) MoveList {
	piece := p.Board.PieceAt(from)
	if piece == NoPiece || piece.Color() != p.SideToMove {
		return nil
	}

	var moves MoveList
	for _, to := range PseudoLegalTargets(&p.Board, from, piece) {
		if NeedsPromotion(piece, to) {
			for _, pt := range promotionOrder {
				moves = append(moves, NewPromotion(from, to, pt))
			}
			continue
		}
		moves = append(moves, NewMove(from, to))
	}

	switch piece.Type() {
	case Pawn:
		if ep, ok := p.enPassantMove(from); ok {
			moves = append(moves, ep)
		}
	case King:
		moves = append(moves, p.castlingMoves(from)...)
	}
	return moves
}
