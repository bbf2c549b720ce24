package game

import "math/rand"

// Controller owns the two paddles, the ball, and the score board, and runs
// the top-level state machine. All entry points must be called from a
// single frame/event dispatch goroutine; the controller does no locking of
// its own.
type Controller struct {
	fieldWidth  float64
	fieldHeight float64

	player *Paddle
	ai     *Paddle
	ball   *Ball
	score  *ScoreBoard

	state         State
	scoredElapsed float64

	// Deferred launch after a start command. The pending flag doubles as
	// the cancellation guard: any transition that invalidates the launch
	// clears it, so a stale launch never fires.
	launchPending bool
	launchElapsed float64

	upHeld   bool
	downHeld bool

	rng *rand.Rand
}

func NewController(fieldWidth, fieldHeight float64, rng *rand.Rand) *Controller {
	c := &Controller{
		fieldWidth:  fieldWidth,
		fieldHeight: fieldHeight,
		score:       NewScoreBoard(),
		state:       StateWaiting,
		rng:         rng,
	}
	c.buildEntities()
	return c
}

func (c *Controller) buildEntities() {
	c.player = NewPaddle(PaddleInset, c.fieldHeight)
	c.ai = NewPaddle(c.fieldWidth-PaddleInset-PaddleWidth, c.fieldHeight)
	c.ball = NewBall(c.fieldWidth, c.fieldHeight, c.rng)
}

func (c *Controller) State() State       { return c.state }
func (c *Controller) Score() *ScoreBoard { return c.score }

// SetUpHeld and SetDownHeld record held steering input. The player paddle
// answers them every frame in every state; responsiveness outside PLAYING
// is deliberate.
func (c *Controller) SetUpHeld(held bool)   { c.upHeld = held }
func (c *Controller) SetDownHeld(held bool) { c.downHeld = held }

// PressStart begins a game from WAITING or restarts one from GAME_OVER.
// It is ignored in every other state.
func (c *Controller) PressStart() {
	if c.state != StateWaiting && c.state != StateGameOver {
		return
	}
	c.player.Reset()
	c.ai.Reset()
	c.ball.Reset()
	c.score.Reset()
	c.state = StatePlaying
	c.launchPending = true
	c.launchElapsed = 0
}

// Step advances the whole simulation by dt milliseconds of wall time.
func (c *Controller) Step(dt float64) {
	if c.upHeld {
		c.player.MoveUp(dt)
	}
	if c.downHeld {
		c.player.MoveDown(dt)
	}

	switch c.state {
	case StatePlaying:
		c.stepPlaying(dt)
	case StateScored:
		c.stepScored(dt)
	}

	c.score.Update(dt)
}

func (c *Controller) stepPlaying(dt float64) {
	if c.launchPending {
		c.launchElapsed += dt
		if c.launchElapsed >= LaunchDelayMs {
			c.launchPending = false
			c.ball.Launch(c.rng.Intn(2) == 0)
		}
	}

	c.steerAI(dt)

	crossing := c.ball.Update(dt)
	if c.ball.Moving() {
		if !c.ball.CheckPaddleCollision(c.player) {
			c.ball.CheckPaddleCollision(c.ai)
		}
	}

	switch crossing {
	case CrossLeft:
		c.score.SetAIScore(c.score.AIScore() + 1)
		c.pointScored()
	case CrossRight:
		c.score.SetPlayerScore(c.score.PlayerScore() + 1)
		c.pointScored()
	}
}

func (c *Controller) pointScored() {
	c.ball.Reset()
	c.launchPending = false
	if c.score.PlayerScore() >= WinScore || c.score.AIScore() >= WinScore {
		c.state = StateGameOver
		return
	}
	c.state = StateScored
	c.scoredElapsed = 0
}

func (c *Controller) stepScored(dt float64) {
	c.scoredElapsed += dt
	if c.scoredElapsed >= ScoredPauseMs {
		c.ball.Launch(c.rng.Intn(2) == 0)
		c.state = StatePlaying
	}
}

// Resize rebuilds the entities for a new field size. Scores carry over; a
// resize is not a game reset. If a rally was in progress the round restarts
// through the scored pause so the recentered ball relaunches cleanly.
func (c *Controller) Resize(fieldWidth, fieldHeight float64) {
	if fieldWidth == c.fieldWidth && fieldHeight == c.fieldHeight {
		return
	}
	c.fieldWidth = fieldWidth
	c.fieldHeight = fieldHeight
	c.buildEntities()
	c.launchPending = false
	if c.state == StatePlaying {
		c.state = StateScored
		c.scoredElapsed = 0
	}
}

// Snapshot captures the render state for the current frame.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		State:       c.state,
		Player:      c.player.Bounds(),
		AI:          c.ai.Bounds(),
		Ball:        c.ball.Bounds(),
		BallMoving:  c.ball.Moving(),
		ScoreLine:   c.score.Line(),
		FieldWidth:  c.fieldWidth,
		FieldHeight: c.fieldHeight,
	}
	switch c.state {
	case StateWaiting:
		snap.Prompt = c.score.StartMessage()
	case StateGameOver:
		snap.Prompt = c.score.GameOverMessage(c.score.PlayerScore() >= WinScore)
	}
	return snap
}
