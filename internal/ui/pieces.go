package ui

import (
	"fmt"
	"strings"

	"github.com/hailam/chesspad/internal/board"
)

// pieceViewBox is the side of the square the piece outlines are drawn in.
const pieceViewBox = 45

// pieceShapes holds the outline of each piece type, drawn in fill and stroke.
// Details drawn in the contrasting color use the marker {detail}.
var pieceShapes = [6]string{
	board.Pawn: `
		<path d="M 15,36 C 15,29 18,25 22.5,20 C 27,25 30,29 30,36 Z"/>
		<circle cx="22.5" cy="14" r="6"/>`,
	board.Knight: `
		<path d="M 13,36 L 32,36 C 33,26 31,16 23,11 L 21,6 L 18,11 L 12,17 L 9,23 L 12,26 L 18,23 C 17,28 13,31 13,36 Z"/>
		<circle cx="17" cy="16" r="1.5" fill="{detail}" stroke="none"/>`,
	board.Bishop: `
		<path d="M 15,36 L 30,36 C 30,30 29,26 27,23 C 31,19 30,13 22.5,9 C 15,13 14,19 18,23 C 16,26 15,30 15,36 Z"/>
		<circle cx="22.5" cy="6" r="2.5"/>
		<path d="M 22.5,13 L 22.5,20 M 19,16.5 L 26,16.5" stroke="{detail}" fill="none"/>`,
	board.Rook: `
		<path d="M 14,36 L 14,18 L 31,18 L 31,36 Z"/>
		<path d="M 12,18 L 12,9 L 16,9 L 16,12 L 20,12 L 20,9 L 25,9 L 25,12 L 29,12 L 29,9 L 33,9 L 33,18 Z"/>
		<path d="M 14,22 L 31,22" stroke="{detail}" fill="none"/>`,
	board.Queen: `
		<path d="M 11,36 L 34,36 L 36,14 L 29,25 L 27,11 L 22.5,24 L 18,11 L 16,25 L 9,14 Z"/>
		<circle cx="9" cy="12" r="2.2"/>
		<circle cx="18" cy="9" r="2.2"/>
		<circle cx="27" cy="9" r="2.2"/>
		<circle cx="36" cy="12" r="2.2"/>`,
	board.King: `
		<path d="M 12,36 L 33,36 L 35,22 C 30,17 26,19 22.5,24 C 19,19 15,17 10,22 Z"/>
		<path d="M 22.5,5 L 22.5,17 M 18,9.5 L 27,9.5" fill="none" stroke-width="2.5"/>
		<path d="M 13,30 L 32,30" stroke="{detail}" fill="none"/>`,
}

// pieceSVG returns an SVG document for p.
func pieceSVG(p board.Piece) string {
	fill, stroke, detail := "#ffffff", "#000000", "#000000"
	if p.Color() == board.Black {
		fill, stroke, detail = "#000000", "#000000", "#ffffff"
	}
	shape := strings.ReplaceAll(pieceShapes[p.Type()], "{detail}", detail)

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
	<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round" stroke-linecap="round">
		<path d="M 9,39 L 36,39 L 36,36 L 9,36 Z"/>%s
	</g>
</svg>`, pieceViewBox, pieceViewBox, pieceViewBox, pieceViewBox, fill, stroke, shape)
}
