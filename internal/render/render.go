// Package render draws a game snapshot onto an ebiten image: flat fills
// for the paddles and ball, a dashed center divider, a blocky sprite-digit
// score line, and the state prompt.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vvolkov/paddle/internal/game"
)

var (
	backgroundColor = color.RGBA{0x16, 0x16, 0x1a, 0xff}
	fieldColor      = color.RGBA{0xe6, 0xe6, 0xe6, 0xff}
	dividerColor    = color.RGBA{0x55, 0x55, 0x5e, 0xff}
)

const (
	dashLength = 12
	dashGap    = 10
	dividerW   = 3

	digitCell = 4 // pixel size of one sprite cell
	scoreTopY = 14
)

// glyphs holds 3x5 sprite rows for the score line characters; bit 2 is the
// left column.
var glyphs = map[byte][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

func Draw(screen *ebiten.Image, snap game.Snapshot) {
	screen.Fill(backgroundColor)

	drawDivider(screen, snap.FieldWidth, snap.FieldHeight)
	fillRect(screen, snap.Player, fieldColor)
	fillRect(screen, snap.AI, fieldColor)
	fillRect(screen, snap.Ball, fieldColor)
	drawScoreLine(screen, snap.ScoreLine, snap.FieldWidth)

	if snap.Prompt != "" {
		drawPrompt(screen, snap.Prompt, snap.FieldWidth, snap.FieldHeight)
	}
}

func fillRect(screen *ebiten.Image, r game.Rect, clr color.Color) {
	vector.DrawFilledRect(screen,
		float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		clr, false)
}

func drawDivider(screen *ebiten.Image, fieldW, fieldH float64) {
	x := float32(fieldW/2) - dividerW/2
	for y := float32(0); y < float32(fieldH); y += dashLength + dashGap {
		vector.DrawFilledRect(screen, x, y, dividerW, dashLength, dividerColor, false)
	}
}

// ScoreLineWidth reports the pixel width of a rendered score line; used to
// center it.
func ScoreLineWidth(line string) int {
	if line == "" {
		return 0
	}
	// 3 cells per glyph plus a one-cell gap between glyphs.
	return len(line)*4*digitCell - digitCell
}

func drawScoreLine(screen *ebiten.Image, line string, fieldW float64) {
	x := (int(fieldW) - ScoreLineWidth(line)) / 2
	for i := 0; i < len(line); i++ {
		drawGlyph(screen, line[i], x, scoreTopY)
		x += 4 * digitCell
	}
}

func drawGlyph(screen *ebiten.Image, ch byte, x, y int) {
	rows, ok := glyphs[ch]
	if !ok {
		return
	}
	for r, bits := range rows {
		for c := 0; c < 3; c++ {
			if bits&(1<<(2-c)) == 0 {
				continue
			}
			vector.DrawFilledRect(screen,
				float32(x+c*digitCell), float32(y+r*digitCell),
				digitCell, digitCell, fieldColor, false)
		}
	}
}

func drawPrompt(screen *ebiten.Image, prompt string, fieldW, fieldH float64) {
	face := basicfont.Face7x13
	bounds := text.BoundString(face, prompt)
	x := (int(fieldW) - bounds.Dx()) / 2
	y := int(fieldH)/2 + 60
	text.Draw(screen, prompt, face, x, y, fieldColor)
}
