package game

import "fmt"

// Side identifies which score is flashing, if any.
type Side uint8

const (
	SideNone Side = iota
	SidePlayer
	SideAI
)

// ScoreBoard tracks both scores and the blink feedback applied to a score
// that just changed. The flashed side is hidden during the odd phases of
// the flash window, producing 3 on/off cycles.
type ScoreBoard struct {
	playerScore  int
	aiScore      int
	flashSide    Side
	flashElapsed float64
}

func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{}
}

// SetPlayerScore updates the player score and starts a flash, but only if
// the value actually changed.
func (s *ScoreBoard) SetPlayerScore(n int) {
	if n == s.playerScore {
		return
	}
	s.playerScore = n
	s.startFlash(SidePlayer)
}

func (s *ScoreBoard) SetAIScore(n int) {
	if n == s.aiScore {
		return
	}
	s.aiScore = n
	s.startFlash(SideAI)
}

func (s *ScoreBoard) PlayerScore() int { return s.playerScore }
func (s *ScoreBoard) AIScore() int     { return s.aiScore }

func (s *ScoreBoard) startFlash(side Side) {
	s.flashSide = side
	s.flashElapsed = 0
}

// Update advances the flash timer and expires it past the flash window.
func (s *ScoreBoard) Update(dt float64) {
	if s.flashSide == SideNone {
		return
	}
	s.flashElapsed += dt
	if s.flashElapsed >= FlashWindowMs {
		s.flashSide = SideNone
	}
}

func (s *ScoreBoard) Flashing() bool {
	return s.flashSide != SideNone
}

func (s *ScoreBoard) FlashSide() Side {
	return s.flashSide
}

func (s *ScoreBoard) hidden(side Side) bool {
	if s.flashSide != side {
		return false
	}
	return int(s.flashElapsed/FlashUnitMs)%2 == 1
}

// Line renders the zero-padded score line, blanking whichever side is in
// the hidden phase of its blink.
func (s *ScoreBoard) Line() string {
	player := fmt.Sprintf("%02d", s.playerScore)
	ai := fmt.Sprintf("%02d", s.aiScore)
	if s.hidden(SidePlayer) {
		player = "  "
	}
	if s.hidden(SideAI) {
		ai = "  "
	}
	return player + " - " + ai
}

func (s *ScoreBoard) StartMessage() string {
	return "PRESS SPACE OR TAP TO PLAY"
}

func (s *ScoreBoard) GameOverMessage(playerWon bool) string {
	if playerWon {
		return "YOU WIN - PRESS SPACE TO PLAY AGAIN"
	}
	return "GAME OVER - PRESS SPACE TO PLAY AGAIN"
}

// Reset zeroes both scores and clears any active flash.
func (s *ScoreBoard) Reset() {
	s.playerScore = 0
	s.aiScore = 0
	s.flashSide = SideNone
	s.flashElapsed = 0
}
