package game

import (
	"math/rand"
	"testing"
)

func TestMirrorIntoRange(t *testing.T) {
	const h = 450.0
	cases := []struct{ in, want float64 }{
		{0, 0},
		{100, 100},
		{450, 450},
		{500, 400},   // one bottom bounce
		{-50, 50},    // one top bounce
		{950, 50},    // down, up, down
		{-1000, 100}, // several bounces
	}
	for _, c := range cases {
		if got := mirrorIntoRange(c.in, h); got != c.want {
			t.Fatalf("mirrorIntoRange(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMirrorIntoRangeAlwaysInBounds(t *testing.T) {
	const h = 450.0
	for y := -5000.0; y <= 5000.0; y += 13.7 {
		got := mirrorIntoRange(y, h)
		if got < 0 || got > h {
			t.Fatalf("mirrorIntoRange(%v) = %v, out of [0,%v]", y, got, h)
		}
	}
}

func TestPredictImpactStraightLine(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBall(DefaultFieldWidth, DefaultFieldHeight, rng)
	b.x = 100
	b.y = 200
	b.vx = 5
	b.vy = 0

	cx, cy := b.Center()
	got := PredictImpactY(b, cx+300, DefaultFieldHeight)
	if got != cy {
		t.Fatalf("flat trajectory should hit at %v, got %v", cy, got)
	}
}

func TestPredictImpactReflectsOffWalls(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBall(DefaultFieldWidth, DefaultFieldHeight, rng)
	b.x = 0
	b.y = DefaultFieldHeight/2 - b.size/2
	b.vx = 1
	b.vy = 4 // steep enough to bounce several times on the way over

	got := PredictImpactY(b, DefaultFieldWidth, DefaultFieldHeight)
	if got < 0 || got > DefaultFieldHeight {
		t.Fatalf("prediction %v escaped [0,%v]", got, DefaultFieldHeight)
	}
}

func TestPredictImpactRestingBallTargetsCenter(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewBall(DefaultFieldWidth, DefaultFieldHeight, rng)
	if got := PredictImpactY(b, DefaultFieldWidth, DefaultFieldHeight); got != DefaultFieldHeight/2 {
		t.Fatalf("resting ball should predict field center, got %v", got)
	}
}
