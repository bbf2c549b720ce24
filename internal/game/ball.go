package game

import (
	"math"
	"math/rand"
)

// Crossing reports which field edge the ball fully passed during an update.
// The crossing itself does not touch the score; the controller interprets
// it (left edge means the computer scored, right edge the player).
type Crossing uint8

const (
	CrossNone Crossing = iota
	CrossLeft
	CrossRight
)

// Ball is a moving square. While at rest (post-reset, pre-launch) both
// velocity components are zero; size and base speed never change after
// construction.
type Ball struct {
	x, y        float64
	vx, vy      float64
	size        float64
	baseSpeed   float64
	speed       float64 // current magnitude, grows with paddle hits
	fieldWidth  float64
	fieldHeight float64
	rng         *rand.Rand
}

func NewBall(fieldWidth, fieldHeight float64, rng *rand.Rand) *Ball {
	b := &Ball{
		size:        BallSize,
		baseSpeed:   BallBaseSpeed,
		fieldWidth:  fieldWidth,
		fieldHeight: fieldHeight,
		rng:         rng,
	}
	b.Reset()
	return b
}

// Reset centers the ball and zeroes its velocity.
func (b *Ball) Reset() {
	b.x = (b.fieldWidth - b.size) / 2
	b.y = (b.fieldHeight - b.size) / 2
	b.vx = 0
	b.vy = 0
	b.speed = b.baseSpeed
}

// Launch gives the ball base speed at a uniformly random angle within
// ±LaunchArcDeg of horizontal, heading left when towardPlayer is set.
func (b *Ball) Launch(towardPlayer bool) {
	angle := (b.rng.Float64()*2 - 1) * LaunchArcDeg * math.Pi / 180
	dir := 1.0
	if towardPlayer {
		dir = -1
	}
	b.speed = b.baseSpeed
	b.vx = dir * b.baseSpeed * math.Cos(angle)
	b.vy = b.baseSpeed * math.Sin(angle)
}

func (b *Ball) Moving() bool {
	return b.vx != 0 || b.vy != 0
}

// Update integrates one step scaled against the nominal frame duration.
// Top/bottom wall reflection resolves first, then the edge-crossing check,
// both against the same updated position.
func (b *Ball) Update(dt float64) Crossing {
	scale := dt / NominalFrameMs
	b.x += b.vx * scale
	b.y += b.vy * scale

	if b.y < 0 {
		b.y = 0
		b.vy = -b.vy
	}
	if b.y+b.size > b.fieldHeight {
		b.y = b.fieldHeight - b.size
		b.vy = -b.vy
	}

	if b.x+b.size < 0 {
		return CrossLeft
	}
	if b.x > b.fieldWidth {
		return CrossRight
	}
	return CrossNone
}

// CheckPaddleCollision resolves an overlap with the paddle: the hit offset
// from the paddle center (-1..1) maps to a bounce angle up to
// ±MaxBounceDeg, the ball speeds up one step, flips horizontally away from
// the paddle, and is pushed flush against the paddle face it arrived at so
// the same contact cannot trigger twice. Reports whether a hit was handled.
func (b *Ball) CheckPaddleCollision(p *Paddle) bool {
	r := p.Bounds()
	if b.x > r.X+r.Width || b.x+b.size < r.X ||
		b.y > r.Y+r.Height || b.y+b.size < r.Y {
		return false
	}

	offset := clamp((b.y+b.size/2-(r.Y+r.Height/2))/(r.Height/2), -1, 1)
	angle := offset * MaxBounceDeg * math.Pi / 180

	b.speed = math.Min(b.speed*SpeedStep, b.baseSpeed*MaxSpeedMult)

	if b.vx < 0 {
		b.x = r.X + r.Width
		b.vx = b.speed * math.Cos(angle)
	} else {
		b.x = r.X - b.size
		b.vx = -b.speed * math.Cos(angle)
	}
	b.vy = b.speed * math.Sin(angle)
	return true
}

func (b *Ball) Bounds() Rect {
	return Rect{X: b.x, Y: b.y, Width: b.size, Height: b.size}
}

func (b *Ball) Center() (x, y float64) {
	return b.x + b.size/2, b.y + b.size/2
}

func (b *Ball) Velocity() (vx, vy float64) {
	return b.vx, b.vy
}
