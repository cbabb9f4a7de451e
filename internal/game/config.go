package game

import (
	"fmt"
	"time"

	"kasupel/internal/shared"
)

// Placement puts one piece on the starting board.
type Placement struct {
	Color  Color     `json:"color"`
	Type   PieceType `json:"type"`
	Square Square    `json:"square"`
}

// Config enumerates everything a game can be constructed with: board
// dimensions, starting layout, variant movement rules, promotion choices
// and the time control.
type Config struct {
	Files int `json:"files"`
	Ranks int `json:"ranks"`

	// Layout overrides the standard starting arrangement. Each side still
	// needs exactly one king.
	Layout []Placement `json:"layout,omitempty"`

	// Rules adds movement rules for variant piece types.
	Rules RuleSet `json:"-"`

	// Promotions restricts what a pawn may promote to. Zero means all of
	// queen, rook, bishop and knight.
	Promotions PromotionChoices `json:"promotions,omitempty"`

	InitialTime time.Duration `json:"initialTime"`
	Increment   time.Duration `json:"increment"`
	// FixedExtraTime is a non-depleting allowance each turn; only time
	// spent beyond it counts against the main clock.
	FixedExtraTime time.Duration `json:"fixedExtraTime"`
}

// DefaultConfig is a standard 8x8 game at ten minutes with a five second
// increment.
func DefaultConfig() Config {
	return Config{
		Files:       8,
		Ranks:       8,
		InitialTime: 10 * time.Minute,
		Increment:   5 * time.Second,
	}
}

func (c Config) geometry() Geometry {
	geom := Geometry{Files: c.Files, Ranks: c.Ranks}
	if geom.Files == 0 && geom.Ranks == 0 {
		geom = Geometry{Files: 8, Ranks: 8}
	}
	return geom
}

func (c Config) promotionChoices() PromotionChoices {
	if c.Promotions == shared.PromotionNone {
		return shared.PromotionAll
	}
	return c.Promotions
}

func (c Config) validate() error {
	geom := c.geometry()
	if geom.Files < 4 || geom.Ranks < 4 {
		return fmt.Errorf("board %dx%d too small, need at least 4x4", geom.Files, geom.Ranks)
	}
	if geom.Files > 26 {
		return fmt.Errorf("board width %d exceeds the 26-file notation limit", geom.Files)
	}
	if c.InitialTime < 0 || c.Increment < 0 || c.FixedExtraTime < 0 {
		return fmt.Errorf("time control values must not be negative")
	}
	return nil
}

func (c Config) layout() []Placement {
	if len(c.Layout) > 0 {
		return c.Layout
	}
	return standardLayout(c.geometry())
}

// standardLayout is the classic arrangement, generalized to the configured
// width: rooks in the corners, knights and bishops inward, king on the
// center file, a full pawn rank in front.
func standardLayout(geom Geometry) []Placement {
	row := defaultBackRank(geom.Files)
	var layout []Placement
	for file, pt := range row {
		layout = append(layout,
			Placement{Color: White, Type: pt, Square: Square{File: file, Rank: 0}},
			Placement{Color: Black, Type: pt, Square: Square{File: file, Rank: geom.Ranks - 1}},
		)
	}
	for file := 0; file < geom.Files; file++ {
		layout = append(layout,
			Placement{Color: White, Type: Pawn, Square: Square{File: file, Rank: 1}},
			Placement{Color: Black, Type: Pawn, Square: Square{File: file, Rank: geom.Ranks - 2}},
		)
	}
	return layout
}

func defaultBackRank(files int) []PieceType {
	if files == 8 {
		return []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	}
	row := make([]PieceType, files)
	for i := range row {
		row[i] = Bishop
	}
	row[0], row[files-1] = Rook, Rook
	if files >= 6 {
		row[1], row[files-2] = Knight, Knight
	}
	center := files / 2
	if center-1 > 0 {
		row[center-1] = Queen
	}
	row[center] = King
	return row
}
