package game

import "math"

// Paddle is a vertically movable rectangle pinned to one side of the
// field. Its y position is always clamped to [0, fieldHeight-height].
type Paddle struct {
	x, y        float64
	width       float64
	height      float64
	speed       float64
	fieldHeight float64
}

func NewPaddle(x, fieldHeight float64) *Paddle {
	p := &Paddle{
		x:           x,
		width:       PaddleWidth,
		height:      PaddleHeight,
		speed:       PaddleSpeed,
		fieldHeight: fieldHeight,
	}
	p.Reset()
	return p
}

// Reset re-centers the paddle vertically. X and size are fixed for the
// paddle's lifetime.
func (p *Paddle) Reset() {
	p.y = (p.fieldHeight - p.height) / 2
}

func (p *Paddle) MoveUp(dt float64) {
	p.shift(-p.speed * dt / NominalFrameMs)
}

func (p *Paddle) MoveDown(dt float64) {
	p.shift(p.speed * dt / NominalFrameMs)
}

func (p *Paddle) shift(dy float64) {
	p.y = clamp(p.y+dy, 0, p.fieldHeight-p.height)
}

// MoveToward steps the paddle center toward targetY. reaction scales the
// effective time, throttling both the step size and the trigger threshold:
// once the target is within a single frame's reach the paddle stays put
// rather than overshooting.
func (p *Paddle) MoveToward(targetY, dt, reaction float64) {
	dist := targetY - p.CenterY()
	step := p.speed * reaction * dt / NominalFrameMs
	if math.Abs(dist) <= step {
		return
	}
	if dist < 0 {
		p.MoveUp(dt * reaction)
	} else {
		p.MoveDown(dt * reaction)
	}
}

func (p *Paddle) CenterY() float64 {
	return p.y + p.height/2
}

// Bounds returns a read-only snapshot for collision tests and rendering.
func (p *Paddle) Bounds() Rect {
	return Rect{X: p.x, Y: p.y, Width: p.width, Height: p.height}
}
