package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vvolkov/paddle/internal/game"
	"github.com/vvolkov/paddle/internal/render"
)

const (
	// A touch becomes steering input once it has been dragged this far
	// from where it landed; a plain tap acts as the start button.
	touchDragThreshold = 12

	// Window resizes arrive continuously while the user drags the frame;
	// the field is rebuilt once the size has been stable this long.
	resizeSettle = 250 * time.Millisecond
)

type App struct {
	ctrl *game.Controller

	fieldW, fieldH     int
	pendingW, pendingH int
	resizeAt           time.Time

	last time.Time

	touchIDs     []ebiten.TouchID
	touchOrigins map[ebiten.TouchID]int
}

func NewApp(width, height int, rng *rand.Rand) *App {
	return &App{
		ctrl:         game.NewController(float64(width), float64(height), rng),
		fieldW:       width,
		fieldH:       height,
		touchOrigins: make(map[ebiten.TouchID]int),
	}
}

func (a *App) Update() error {
	now := time.Now()
	dt := game.NominalFrameMs
	if !a.last.IsZero() {
		dt = float64(now.Sub(a.last).Microseconds()) / 1000.0
	}
	a.last = now

	if a.pendingW != 0 && time.Since(a.resizeAt) >= resizeSettle {
		a.fieldW, a.fieldH = a.pendingW, a.pendingH
		a.pendingW, a.pendingH = 0, 0
		a.ctrl.Resize(float64(a.fieldW), float64(a.fieldH))
	}

	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.ctrl.PressStart()
	}

	touchUp, touchDown := a.sampleTouches()
	a.ctrl.SetUpHeld(up || touchUp)
	a.ctrl.SetDownHeld(down || touchDown)

	a.ctrl.Step(dt)
	return nil
}

// sampleTouches maps touch drags to held steering: dragging above the
// touch origin steers up, below steers down. A fresh tap doubles as the
// start command.
func (a *App) sampleTouches() (up, down bool) {
	a.touchIDs = inpututil.AppendJustPressedTouchIDs(a.touchIDs[:0])
	for _, id := range a.touchIDs {
		_, y := ebiten.TouchPosition(id)
		a.touchOrigins[id] = y
		a.ctrl.PressStart()
	}

	a.touchIDs = ebiten.AppendTouchIDs(a.touchIDs[:0])
	for _, id := range a.touchIDs {
		origin, ok := a.touchOrigins[id]
		if !ok {
			continue
		}
		_, y := ebiten.TouchPosition(id)
		switch {
		case y < origin-touchDragThreshold:
			up = true
		case y > origin+touchDragThreshold:
			down = true
		}
	}

	a.touchIDs = inpututil.AppendJustReleasedTouchIDs(a.touchIDs[:0])
	for _, id := range a.touchIDs {
		delete(a.touchOrigins, id)
	}
	return up, down
}

func (a *App) Draw(screen *ebiten.Image) {
	render.Draw(screen, a.ctrl.Snapshot())
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.fieldW || outsideHeight != a.fieldH {
		if a.pendingW != outsideWidth || a.pendingH != outsideHeight {
			a.pendingW, a.pendingH = outsideWidth, outsideHeight
			a.resizeAt = time.Now()
		}
		return outsideWidth, outsideHeight
	}
	a.pendingW, a.pendingH = 0, 0
	return a.fieldW, a.fieldH
}

func main() {
	width := flag.Int("width", int(game.DefaultFieldWidth), "initial window width")
	height := flag.Int("height", int(game.DefaultFieldHeight), "initial window height")
	flag.Parse()

	log.SetOutput(os.Stdout)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	app := NewApp(*width, *height, rng)

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Paddle")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatalf("run game: %v", err)
	}
}
