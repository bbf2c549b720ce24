package ws

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/vvolkov/paddle/internal/game"
)

func newTestSession() *Session {
	rng := rand.New(rand.NewSource(1))
	return &Session{
		id:   "test",
		ctrl: game.NewController(game.DefaultFieldWidth, game.DefaultFieldHeight, rng),
		done: make(chan struct{}),
	}
}

func mustMessage(t *testing.T, typ uint8, payload any) Message {
	t.Helper()
	msg, err := NewMessage(typ, 0, payload)
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	return msg
}

func TestStartMessageBeginsGame(t *testing.T) {
	s := newTestSession()
	var pending ResizePayload
	var pendingAt time.Time

	s.handleMessage(mustMessage(t, MsgStart, struct{}{}), &pending, &pendingAt, func() {})
	if got := s.ctrl.Snapshot().State; got != game.StatePlaying {
		t.Fatalf("expected PLAYING after start message, got %v", got)
	}
}

func TestInputMessageSteersPaddle(t *testing.T) {
	s := newTestSession()
	var pending ResizePayload
	var pendingAt time.Time

	s.handleMessage(mustMessage(t, MsgInput, InputPayload{Down: true}), &pending, &pendingAt, func() {})
	before := s.ctrl.Snapshot().Player.Y
	s.ctrl.Step(game.NominalFrameMs)
	if after := s.ctrl.Snapshot().Player.Y; after <= before {
		t.Fatalf("expected paddle to move down after input message, %v -> %v", before, after)
	}

	// Released input stops the paddle.
	s.handleMessage(mustMessage(t, MsgInput, InputPayload{}), &pending, &pendingAt, func() {})
	before = s.ctrl.Snapshot().Player.Y
	s.ctrl.Step(game.NominalFrameMs)
	if after := s.ctrl.Snapshot().Player.Y; after != before {
		t.Fatalf("expected paddle to hold after release, %v -> %v", before, after)
	}
}

func TestResizeMessageArmsSettleTimer(t *testing.T) {
	s := newTestSession()
	var pending ResizePayload
	var pendingAt time.Time
	armed := 0

	s.handleMessage(mustMessage(t, MsgResize, ResizePayload{Width: 1024, Height: 600}),
		&pending, &pendingAt, func() { armed++ })
	if armed != 1 {
		t.Fatalf("expected settle timer armed once, got %d", armed)
	}
	if pending.Width != 1024 || pending.Height != 600 {
		t.Fatalf("pending size not recorded: %+v", pending)
	}
	if pendingAt.IsZero() {
		t.Fatalf("pending timestamp not recorded")
	}

	// The field is untouched until the settle fires.
	if got := s.ctrl.Snapshot().FieldWidth; got != game.DefaultFieldWidth {
		t.Fatalf("resize applied before settle: %v", got)
	}
}

func TestResizeMessageRejectsZeroDimensions(t *testing.T) {
	s := newTestSession()
	var pending ResizePayload
	var pendingAt time.Time

	s.handleMessage(mustMessage(t, MsgResize, ResizePayload{Width: 0, Height: 600}),
		&pending, &pendingAt, func() { t.Fatalf("settle timer must not arm for a malformed resize") })
	if pending.Width != 0 || !pendingAt.IsZero() {
		t.Fatalf("malformed resize must be dropped, pending=%+v", pending)
	}
}

func TestMessageRoundTrip(t *testing.T) {
	msg, err := NewMessage(MsgResize, 42, ResizePayload{Width: 640, Height: 480})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	data, err := Encode(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Type != MsgResize || got.Tick != 42 {
		t.Fatalf("header mangled: %+v", got)
	}
	var rs ResizePayload
	if err := json.Unmarshal(got.Payload, &rs); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if rs.Width != 640 || rs.Height != 480 {
		t.Fatalf("payload mangled: %+v", rs)
	}
}
