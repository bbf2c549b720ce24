package game

import "math"

// PredictImpactY extrapolates where the ball's center will cross the
// vertical plane at planeX, folding the straight-line prediction back into
// [0, fieldHeight] once per intermediate wall bounce. The result is always
// in range, however many bounces the ball has left.
func PredictImpactY(b *Ball, planeX, fieldHeight float64) float64 {
	cx, cy := b.Center()
	vx, vy := b.Velocity()
	if vx == 0 {
		return fieldHeight / 2
	}
	frames := (planeX - cx) / vx
	return mirrorIntoRange(cy+vy*frames, fieldHeight)
}

// mirrorIntoRange reflects y off 0 and limit repeatedly until it lands
// inside [0, limit].
func mirrorIntoRange(y, limit float64) float64 {
	period := 2 * limit
	y = math.Mod(y, period)
	if y < 0 {
		y += period
	}
	if y > limit {
		y = period - y
	}
	return y
}

// steerAI drives the computer paddle for one frame. While the ball
// approaches it chases the predicted impact point, jittered so the paddle
// stays beatable; while the ball retreats it drifts back to field center
// at half reaction.
func (c *Controller) steerAI(dt float64) {
	vx, _ := c.ball.Velocity()
	if vx > 0 {
		target := PredictImpactY(c.ball, c.ai.Bounds().X, c.fieldHeight)
		target += (c.rng.Float64()*2 - 1) * AIJitter
		c.ai.MoveToward(target, dt, AIReaction)
		return
	}
	c.ai.MoveToward(c.fieldHeight/2, dt, AIReaction/2)
}
