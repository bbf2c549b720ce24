package game

// Simulation constants. Speeds are expressed in field units per nominal
// frame and scaled by the actual elapsed time each step, so the game plays
// the same at any refresh rate.
const (
	NominalFrameMs = 1000.0 / 60.0

	DefaultFieldWidth  = float64(800)
	DefaultFieldHeight = float64(450)

	PaddleWidth  = float64(12)
	PaddleHeight = float64(80)
	PaddleSpeed  = float64(7)
	PaddleInset  = float64(20) // gap between a paddle and its side wall

	BallSize      = float64(10)
	BallBaseSpeed = float64(6)

	// Paddle bounces steepen up to ±60° and speed the ball up by 5% per
	// hit, capped at 1.5x the base speed.
	MaxBounceDeg = float64(60)
	LaunchArcDeg = float64(45)
	SpeedStep    = 1.05
	MaxSpeedMult = 1.5

	WinScore = 5

	LaunchDelayMs = float64(600)
	ScoredPauseMs = float64(1000)

	// A changed score blinks for 3 on/off cycles.
	FlashUnitMs   = float64(200)
	FlashWindowMs = FlashUnitMs * 6

	// The computer paddle reacts at a fraction of full paddle speed so it
	// stays beatable, and its predicted target is jittered by up to
	// ±AIJitter units. While the ball moves away it drifts back to center
	// at half reaction.
	AIReaction = 0.75
	AIJitter   = float64(10)
)

type State uint8

const (
	StateWaiting State = iota
	StatePlaying
	StateScored
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePlaying:
		return "playing"
	case StateScored:
		return "scored"
	case StateGameOver:
		return "gameover"
	}
	return "unknown"
}

// Rect is an axis-aligned rectangle snapshot used for collision tests and
// render payloads.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// Snapshot is everything a front-end needs to draw one frame.
type Snapshot struct {
	State       State   `json:"state"`
	Player      Rect    `json:"player"`
	AI          Rect    `json:"ai"`
	Ball        Rect    `json:"ball"`
	BallMoving  bool    `json:"ballMoving"`
	ScoreLine   string  `json:"scoreLine"`
	Prompt      string  `json:"prompt,omitempty"`
	FieldWidth  float64 `json:"fieldWidth"`
	FieldHeight float64 `json:"fieldHeight"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
