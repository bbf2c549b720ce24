package ws

import "encoding/json"

// Client -> Server message types
const (
	MsgInput  uint8 = 0x01
	MsgStart  uint8 = 0x02
	MsgResize uint8 = 0x03
	MsgPing   uint8 = 0x04
)

// Server -> Client message types
const (
	MsgFrame uint8 = 0x81
	MsgPong  uint8 = 0x86
)

type Message struct {
	Type    uint8           `json:"type"`
	Tick    uint32          `json:"tick"`
	Payload json.RawMessage `json:"payload"`
}

// InputPayload carries the held steering flags sampled by the page. Held
// state, not key events: the client resends on every change.
type InputPayload struct {
	Up   bool `json:"up"`
	Down bool `json:"down"`
}

// ResizePayload reports the canvas size. The session debounces bursts of
// these while the hosting container settles.
type ResizePayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PingPayload struct {
	ClientTime uint64 `json:"clientTime"`
}

type PongPayload struct {
	ClientTime uint64 `json:"clientTime"`
	ServerTime uint64 `json:"serverTime"`
}

func Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func Decode(data []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return msg, err
}

func NewMessage(typ uint8, tick uint32, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Type:    typ,
		Tick:    tick,
		Payload: json.RawMessage(data),
	}, nil
}
