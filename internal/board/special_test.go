package board

import "testing"

func TestCastlingAvailability(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		rights    CastlingRights
		kingSide  bool
		queenSide bool
	}{
		{"both open", "r3k2r/8/8/8/8/8/8/R3K2R", AllCastling, true, true},
		{"transit attacked", "r3kr2/8/8/8/8/8/8/R3K2R", AllCastling, false, true},
		{"landing attacked", "r3k1r1/8/8/8/8/8/8/R3K2R", AllCastling, false, true},
		{"transit attacked by pawn", "4k3/8/8/8/8/8/6p1/R3K2R", AllCastling &^ (BlackKingSideCastle | BlackQueenSideCastle), false, true},
		{"occupied", "r3k2r/8/8/8/8/8/8/R3K1NR", AllCastling, false, true},
		{"b-file attacked only", "1r2k3/8/8/8/8/8/8/R3K2R", WhiteKingSideCastle | WhiteQueenSideCastle, true, true},
		{"b-file occupied", "4k3/8/8/8/8/8/8/RN2K2R", WhiteKingSideCastle | WhiteQueenSideCastle, true, false},
		{"in check", "4k3/8/8/8/4q3/8/8/R3K2R", WhiteKingSideCastle | WhiteQueenSideCastle, false, false},
		{"right revoked", "4k3/8/8/8/8/8/8/R3K2R", WhiteQueenSideCastle, false, true},
		{"rook missing", "4k3/8/8/8/8/8/8/4K2R", WhiteKingSideCastle | WhiteQueenSideCastle, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := positionFrom(t, tc.placement, White, tc.rights, NoSquare)
			moves := pos.LegalMoves(E1)
			if got := moves.Contains(NewCastling(E1, G1)); got != tc.kingSide {
				t.Errorf("O-O available = %v, want %v", got, tc.kingSide)
			}
			if got := moves.Contains(NewCastling(E1, C1)); got != tc.queenSide {
				t.Errorf("O-O-O available = %v, want %v", got, tc.queenSide)
			}
		})
	}
}

func TestCastlingExecution(t *testing.T) {
	pos := positionFrom(t, "r3k2r/8/8/8/8/8/8/R3K2R", White, AllCastling, NoSquare)
	pos.MakeMove(NewCastling(E1, G1))
	if pos.PieceAt(G1) != WhiteKing || pos.PieceAt(F1) != WhiteRook {
		t.Fatalf("after O-O: g1=%s f1=%s", pos.PieceAt(G1), pos.PieceAt(F1))
	}
	if pos.PieceAt(E1) != NoPiece || pos.PieceAt(H1) != NoPiece {
		t.Fatal("origin squares not cleared")
	}
	if pos.CastlingRights != BlackKingSideCastle|BlackQueenSideCastle {
		t.Errorf("rights = %s, want kq", pos.CastlingRights)
	}

	pos.MakeMove(NewCastling(E8, C8))
	if pos.PieceAt(C8) != BlackKing || pos.PieceAt(D8) != BlackRook || pos.PieceAt(A8) != NoPiece {
		t.Fatalf("after O-O-O:\n%s", pos.Board.String())
	}
	if pos.CastlingRights != NoCastling {
		t.Errorf("rights = %s, want -", pos.CastlingRights)
	}
}

func TestCastlingRightsCleared(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
		want  CastlingRights
	}{
		{"kingside rook moves", []string{"h1h2"}, WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle},
		{"king moves", []string{"e1e2"}, BlackKingSideCastle | BlackQueenSideCastle},
		{"rook captured in corner", []string{"a1a8"}, WhiteKingSideCastle | BlackKingSideCastle},
		{"rook returns home", []string{"h1h2", "a8a7", "h2h1"}, WhiteQueenSideCastle | BlackKingSideCastle},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := positionFrom(t, "r3k2r/8/8/8/8/8/8/R3K2R", White, AllCastling, NoSquare)
			play(t, &pos, tc.moves...)
			if pos.CastlingRights != tc.want {
				t.Errorf("rights = %s, want %s", pos.CastlingRights, tc.want)
			}
		})
	}
}

func TestEnPassant(t *testing.T) {
	pos := NewPosition()
	play(t, &pos, "e2e4", "a7a6", "e4e5", "d7d5")

	if pos.EnPassant != D6 {
		t.Fatalf("EnPassant = %s, want d6", pos.EnPassant)
	}
	ep := NewEnPassant(E5, D6)
	if !pos.LegalMoves(E5).Contains(ep) {
		t.Fatalf("e5 moves %v lack en passant", moveNames(pos.LegalMoves(E5)))
	}

	next := pos
	captured := next.MakeMove(ep)
	if captured != BlackPawn {
		t.Errorf("captured = %s, want p", captured)
	}
	if next.PieceAt(D5) != NoPiece || next.PieceAt(D6) != WhitePawn || next.PieceAt(E5) != NoPiece {
		t.Errorf("board after exd6:\n%s", next.Board.String())
	}
	if next.EnPassant != NoSquare {
		t.Errorf("EnPassant = %s after capture", next.EnPassant)
	}

	// One ply later the chance is gone.
	play(t, &pos, "a2a3", "h7h6")
	if pos.LegalMoves(E5).Contains(ep) {
		t.Error("en passant still offered two plies later")
	}
}

func TestEnPassantOnlyAfterDoubleStep(t *testing.T) {
	pos := NewPosition()
	play(t, &pos, "e2e4", "d7d6", "e4e5", "d6d5")
	if pos.EnPassant != NoSquare {
		t.Fatalf("single step set EnPassant = %s", pos.EnPassant)
	}
	for _, m := range pos.LegalMoves(E5) {
		if m.IsEnPassant() {
			t.Fatalf("unexpected en passant %s", m)
		}
	}
}

func TestEnPassantExposingKing(t *testing.T) {
	// Both pawns leave rank 5, opening the rook onto the king.
	pos := positionFrom(t, "8/8/8/K2pP2r/8/8/8/7k", White, NoCastling, D6)
	if pos.LegalMoves(E5).Contains(NewEnPassant(E5, D6)) {
		t.Error("en passant allowed while it exposes the king")
	}
}

func TestPromotionMoves(t *testing.T) {
	pos := positionFrom(t, "k7/4P3/8/8/8/8/8/K7", White, NoCastling, NoSquare)
	moves := pos.LegalMoves(E7)
	if len(moves) != 4 {
		t.Fatalf("promotion moves = %v, want 4", moveNames(moves))
	}
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if !moves.Contains(NewPromotion(E7, E8, pt)) {
			t.Errorf("missing promotion to %s", pt)
		}
	}
	if got := squareNames(pos.LegalTargets(E7)); !equalStrings(got, []string{"e8"}) {
		t.Errorf("LegalTargets = %v, want [e8]", got)
	}

	next := pos
	next.MovePieces(NewPromotion(E7, E8, Queen))
	if next.PieceAt(E8) != WhitePawn || next.SideToMove != White {
		t.Fatal("MovePieces promoted or flipped the turn")
	}
	if err := next.PromotePawn(E8, Knight); err != nil {
		t.Fatal(err)
	}
	if next.PieceAt(E8) != WhiteKnight {
		t.Errorf("e8 = %s, want N", next.PieceAt(E8))
	}
	if err := next.PromotePawn(E8, Queen); err == nil {
		t.Error("promoting a knight succeeded")
	}

	pos.MakeMove(NewPromotion(E7, E8, Queen))
	if pos.PieceAt(E8) != WhiteQueen || pos.SideToMove != Black {
		t.Errorf("MakeMove promotion: e8=%s side=%s", pos.PieceAt(E8), pos.SideToMove)
	}
}

func TestNeedsPromotion(t *testing.T) {
	tests := []struct {
		piece Piece
		to    Square
		want  bool
	}{
		{WhitePawn, E8, true},
		{WhitePawn, E7, false},
		{BlackPawn, A1, true},
		{BlackPawn, A8, false},
		{WhiteRook, E8, false},
	}
	for _, tc := range tests {
		if got := NeedsPromotion(tc.piece, tc.to); got != tc.want {
			t.Errorf("NeedsPromotion(%s, %s) = %v, want %v", tc.piece, tc.to, got, tc.want)
		}
	}
}
