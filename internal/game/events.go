package game

import "github.com/hailam/chesspad/internal/board"

// MoveEvent describes a committed move to observers registered with OnMove.
type MoveEvent struct {
	Entry     HistoryEntry
	Captured  board.Piece
	Castle    bool
	Promotion bool
	Check     bool
	Checkmate bool
	Stalemate bool
}

// IsCapture reports whether the move took a piece.
func (e MoveEvent) IsCapture() bool {
	return e.Captured != board.NoPiece
}

// View is a copy of the read model, safe to hand to another goroutine.
type View struct {
	Board           board.Board
	Turn            board.Color
	CapturedWhite   []board.Piece
	CapturedBlack   []board.Piece
	History         []HistoryEntry
	CastlingRights  board.CastlingRights
	EnPassant       board.Square
	LastMove        board.Move
	Status          board.Status
	Phase           Phase
	Selected        board.Square
	Highlights      []board.Square
	PromotionSquare board.Square
	Mode            Mode
	BotColor        board.Color
	Version         uint64
	StatusText      string
	Result          Result
	CheckedKing     board.Square
	Checkers        []board.Square
}

// Snapshot copies the whole read model.
func (g *Game) Snapshot() View {
	v := View{
		Board:           g.pos.Board,
		Turn:            g.pos.SideToMove,
		CapturedWhite:   g.Captured(board.White),
		CapturedBlack:   g.Captured(board.Black),
		History:         g.History(),
		CastlingRights:  g.pos.CastlingRights,
		EnPassant:       g.pos.EnPassant,
		LastMove:        g.lastMove,
		Status:          g.status,
		Phase:           g.phase,
		Selected:        g.selected,
		Highlights:      g.Highlights(),
		PromotionSquare: g.PromotionSquare(),
		Mode:            g.mode,
		BotColor:        g.botColor,
		Version:         g.version,
		StatusText:      g.StatusText(),
		Result:          g.Result(),
		CheckedKing:     board.NoSquare,
	}
	if g.status.InCheck && g.phase != PhasePendingPromotion {
		v.CheckedKing = g.pos.Board.KingSquare(g.pos.SideToMove)
		v.Checkers = g.pos.Board.Attackers(v.CheckedKing, g.pos.SideToMove)
	}
	return v
}
