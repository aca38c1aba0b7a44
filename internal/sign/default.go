package sign

import (
	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/topology"
)

// Glyph names of the Twaeng Pop sign: "P", "O", the shared stroke between O
// and the second P, "P" again and the exclamation mark.
const (
	GlyphP1   = "p1"
	GlyphO    = "o"
	GlyphOP2  = "o_p2"
	GlyphP2   = "p2"
	GlyphExcl = "excl"
)

// Rocket groups of the default sign.
const (
	GroupColored = "colored"
	GroupWhite   = "white"
)

// Letter colors of the default sign.
var (
	ColorP1     = render.RGB(240, 5, 2)
	ColorP1O    = render.RGB(20, 0, 40)
	ColorO      = render.RGB(12, 35, 120)
	ColorOP2    = render.RGB(28, 70, 6)
	ColorP2     = render.RGB(200, 40, 0)
	ColorP2Excl = render.RGB(150, 8, 1)
	ColorExcl   = render.RGB(150, 12, 8)
	White       = render.RGB(255, 130, 80)
)

var (
	pathP1   = []int{0, 1, 2, 3, 4}
	pathO    = []int{16, 15, 14, 13, 18}
	pathP2   = []int{24, 23, 22, 21}
	pathExcl = []int{24, 23, 22, 21}
)

// Default describes the 25 LED Twaeng Pop sign.
func Default() Def {
	return Def{
		LEDs:  25,
		Start: 6,
		Table: topology.Table{
			1:  {0, 2, 5},
			2:  {1, 3, 5},
			4:  {3, 7},
			5:  {1, 2, 6},
			6:  {5, 7, 9},
			7:  {4, 6, 8},
			8:  {7, 9, 10},
			9:  {6, 8, 11},
			10: {8, 12},
			11: {9, 12, 15},
			12: {10, 11, 13},
			13: {12, 14, 18},
			14: {11, 12, 13, 15, 17},
			15: {11, 14, 16, 17},
			16: {15},
			17: {14, 15, 20},
			18: {13, 19},
			19: {18, 20, 21, 22},
			20: {17, 19, 22, 23},
			21: {19, 22},
			22: {19, 20, 21, 23},
			23: {20, 22, 24},
		},
		Glyphs: map[string][]int{
			GlyphP1:   {0, 1, 2, 3, 4, 5, 6, 7},
			GlyphO:    {8, 9, 10, 11, 12},
			GlyphOP2:  {},
			GlyphP2:   {13, 14, 15, 16, 17, 18, 19, 20},
			GlyphExcl: {21, 22, 23, 24},
		},
		Rules: []Rule{
			{Glyphs: []string{GlyphP1, GlyphO}, Color: ColorP1O},
			{Glyphs: []string{GlyphP1}, Color: ColorP1},
			{Glyphs: []string{GlyphOP2}, Color: ColorOP2},
			{Glyphs: []string{GlyphO}, Color: ColorO},
			{Glyphs: []string{GlyphP2, GlyphExcl}, Color: ColorP2Excl},
			{Glyphs: []string{GlyphP2}, Color: ColorP2},
			{Glyphs: []string{GlyphExcl}, Color: ColorExcl},
		},
		Groups: []GroupDef{
			{Name: GroupColored, Rockets: []RocketDef{
				{Name: "r1", Offset: 0, Path: pathP1, Glyph: GlyphP1, Color: ColorP1},
				{Name: "r2", Offset: 280, Path: pathO, Glyph: GlyphO, Color: ColorO},
				{Name: "r3", Offset: 560, Path: pathP2, Glyph: GlyphP2, Color: ColorP2},
				{Name: "r4", Offset: 700, Path: pathExcl, Glyph: GlyphExcl, Color: ColorExcl},
			}},
			{Name: GroupWhite, Rockets: []RocketDef{
				{Name: "r5", Offset: 0, Path: pathP1, Glyph: GlyphP1, Color: White},
				{Name: "r6", Offset: 0, Path: pathO, Glyph: GlyphO, Color: White},
				{Name: "r7", Offset: 210, Path: pathP2, Glyph: GlyphP2, Color: White},
				{Name: "r8", Offset: 210, Path: pathExcl, Glyph: GlyphExcl, Color: ColorExcl},
			}},
		},
	}
}
