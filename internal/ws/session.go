package ws

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"time"

	"github.com/vvolkov/paddle/internal/game"
)

const (
	// TickRate drives the server-side frame loop, matching the nominal
	// 60 Hz the simulation is tuned against.
	TickRate = 60

	// Resize messages arrive in bursts while the hosting container is
	// being dragged; the pending size is applied once it has been stable
	// for resizeSettle, checked every resizePoll.
	resizeSettle = 250 * time.Millisecond
	resizePoll   = 50 * time.Millisecond
)

// Session runs one single-player game for one connection: a 60 Hz loop
// measuring real elapsed time per tick, inbound input/resize handling, and
// a per-frame snapshot stream back to the page. All controller access
// happens on the session goroutine.
type Session struct {
	id     string
	conn   *Conn
	ctrl   *game.Controller
	tick   uint32
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSession(id string, conn *Conn) *Session {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Session{
		id:   id,
		conn: conn,
		ctrl: game.NewController(game.DefaultFieldWidth, game.DefaultFieldHeight, rng),
		done: make(chan struct{}),
	}
}

func (s *Session) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go func() {
		s.run(ctx)
		close(s.done)
	}()
}

// Done returns a channel that closes when the session loop exits.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) run(ctx context.Context) {
	defer s.cancel()

	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	msgs := s.conn.ReadLoop(ctx)
	last := time.Now()

	// Pending resize, settle timer active only while one is outstanding.
	var settle *time.Ticker
	var settleC <-chan time.Time
	var pending ResizePayload
	var pendingAt time.Time
	stopSettle := func() {
		if settle != nil {
			settle.Stop()
			settle = nil
			settleC = nil
		}
	}
	defer stopSettle()

	for {
		select {
		case now := <-ticker.C:
			dt := float64(now.Sub(last).Microseconds()) / 1000.0
			last = now
			s.ctrl.Step(dt)
			s.tick++
			msg, err := NewMessage(MsgFrame, s.tick, s.ctrl.Snapshot())
			if err != nil {
				log.Printf("session %s: encode frame: %v", s.id, err)
				continue
			}
			s.conn.Send(msg)

		case <-settleC:
			if time.Since(pendingAt) < resizeSettle {
				continue
			}
			s.ctrl.Resize(pending.Width, pending.Height)
			stopSettle()

		case msg, ok := <-msgs:
			if !ok {
				log.Printf("session %s: client disconnected", s.id)
				return
			}
			s.handleMessage(msg, &pending, &pendingAt, func() {
				if settle == nil {
					settle = time.NewTicker(resizePoll)
					settleC = settle.C
				}
			})

		case <-s.conn.Done():
			return

		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) handleMessage(msg Message, pending *ResizePayload, pendingAt *time.Time, armSettle func()) {
	switch msg.Type {
	case MsgInput:
		var in InputPayload
		if err := json.Unmarshal(msg.Payload, &in); err != nil {
			return
		}
		s.ctrl.SetUpHeld(in.Up)
		s.ctrl.SetDownHeld(in.Down)

	case MsgStart:
		s.ctrl.PressStart()

	case MsgResize:
		var rs ResizePayload
		if err := json.Unmarshal(msg.Payload, &rs); err != nil {
			return
		}
		if rs.Width <= 0 || rs.Height <= 0 {
			log.Printf("session %s: rejected resize %vx%v", s.id, rs.Width, rs.Height)
			return
		}
		*pending = rs
		*pendingAt = time.Now()
		armSettle()

	case MsgPing:
		var ping PingPayload
		if err := json.Unmarshal(msg.Payload, &ping); err != nil {
			return
		}
		pong, _ := NewMessage(MsgPong, s.tick, PongPayload{
			ClientTime: ping.ClientTime,
			ServerTime: uint64(time.Now().UnixMilli()),
		})
		s.conn.Send(pong)
	}
}
