package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.AllLegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		next := p.Apply(m)
		nodes += Perft(&next, depth-1)
	}
	return nodes
}

// Divide returns the perft count below each legal move.
func Divide(p *Position, depth int) map[Move]int64 {
	out := make(map[Move]int64)
	if depth < 1 {
		return out
	}
	for _, m := range p.AllLegalMoves() {
		next := p.Apply(m)
		out[m] = Perft(&next, depth-1)
	}
	return out
}
