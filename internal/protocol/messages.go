// Package protocol defines the JSON messages the frame inspector exchanges
// over its websocket.
package protocol

import "encoding/json"

// MessageType discriminates protocol messages.
type MessageType string

const (
	// MsgHello is sent to a newly connected inspector with the application's
	// window and assets details.
	MsgHello MessageType = "hello"

	// MsgFrame is broadcast periodically with frame timing statistics.
	MsgFrame MessageType = "frame"

	// MsgStop is broadcast once when the application loop ends.
	MsgStop MessageType = "stop"

	// MsgPing may be sent by an inspector; the server answers with MsgPong.
	MsgPing MessageType = "ping"

	// MsgPong answers MsgPing.
	MsgPong MessageType = "pong"
)

// Envelope wraps every protocol message with a type discriminator.
type Envelope struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HelloData describes the running application.
type HelloData struct {
	Title     string `json:"title"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	AssetsDir string `json:"assets_dir"`
}

// FrameData is a snapshot of the loop's timing.
type FrameData struct {
	Frame      uint64  `json:"frame"`
	TPS        float64 `json:"tps"`
	FPS        float64 `json:"fps"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	StateDepth int     `json:"state_depth"`
}

// StopData is sent when the loop ends.
type StopData struct {
	Frames uint64 `json:"frames"`
}

// Marshal encodes a typed protocol message into a JSON envelope.
func Marshal(msgType MessageType, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Data: raw})
}

// Unmarshal decodes a JSON envelope. Callers switch on env.Type and then
// json.Unmarshal env.Data into the appropriate *Data struct.
func Unmarshal(b []byte) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(b, &env)
	return env, err
}
