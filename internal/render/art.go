package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"kasupel/internal/game"
)

var (
	lightCell = color.New(color.BgHiWhite, color.FgBlack)
	darkCell  = color.New(color.BgGreen, color.FgBlack)
	labelText = color.New(color.Bold)
)

// Art renders the snapshot as colored terminal art with rank and file
// labels, white at the bottom.
func Art(snap game.BoardState) string {
	geom := snap.Geometry
	occupied := make(map[game.Square]game.PieceState, len(snap.Pieces))
	for _, pc := range snap.Pieces {
		occupied[pc.Square] = pc
	}

	var b strings.Builder
	for rank := geom.Ranks - 1; rank >= 0; rank-- {
		b.WriteString(labelText.Sprintf("%2d ", rank+1))
		for file := 0; file < geom.Files; file++ {
			sym := " "
			if pc, ok := occupied[game.Square{File: file, Rank: rank}]; ok {
				sym = pieceSymbol(pc)
			}
			cell := darkCell
			if (file+rank)%2 == 1 {
				cell = lightCell
			}
			b.WriteString(cell.Sprintf(" %s ", sym))
		}
		b.WriteByte('\n')
	}
	b.WriteString("   ")
	for file := 0; file < geom.Files; file++ {
		b.WriteString(labelText.Sprintf(" %s ", FileLabel(file)))
	}
	b.WriteByte('\n')
	b.WriteString(fmt.Sprintf("%s to move (%s)\n", snap.TurnName, snap.Status))
	return b.String()
}
