// Package render draws board snapshots for consumers: an SVG diagram for
// the HTTP API and colored terminal art for the CLI.
package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"kasupel/internal/game"
)

const (
	cellSize = 48

	lightFill = "#f0d9b5"
	darkFill  = "#b58863"
)

// SVG writes the snapshot as an SVG diagram. White's first rank is at the
// bottom.
func SVG(w io.Writer, snap game.BoardState) {
	geom := snap.Geometry
	width := geom.Files * cellSize
	height := geom.Ranks * cellSize

	canvas := svg.New(w)
	canvas.Start(width, height)

	for rank := 0; rank < geom.Ranks; rank++ {
		for file := 0; file < geom.Files; file++ {
			fill := darkFill
			if (file+rank)%2 == 1 {
				fill = lightFill
			}
			canvas.Rect(file*cellSize, (geom.Ranks-1-rank)*cellSize, cellSize, cellSize, "fill:"+fill)
		}
	}

	for _, pc := range snap.Pieces {
		x := pc.Square.File*cellSize + cellSize/2
		y := (geom.Ranks-1-pc.Square.Rank)*cellSize + cellSize/2 + cellSize/6
		style := "text-anchor:middle;font-size:28px;font-family:sans-serif;"
		if pc.ColorName == "white" {
			style += "fill:#ffffff;stroke:#000000;stroke-width:1"
		} else {
			style += "fill:#000000"
		}
		canvas.Text(x, y, pieceSymbol(pc), style)
	}

	canvas.End()
}

func pieceSymbol(pc game.PieceState) string {
	name := pc.TypeName
	if len(name) > 2 {
		// Variant pieces registered with long names draw as their initial.
		name = strings.ToUpper(name[:1])
	}
	if pc.ColorName == "black" {
		return strings.ToLower(name)
	}
	return name
}

// FileLabel names a file for captions ("a".."z").
func FileLabel(file int) string {
	if file < 0 || file >= 26 {
		return fmt.Sprintf("%d", file)
	}
	return string(rune('a' + file))
}
