// Package protocol defines the WebSocket message types exchanged between
// call clients and the engagement service.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Client → Server messages.
	TypeVideoFrame MessageType = "video_frame" // JPEG frame plus optional scene text
	TypeAudioChunk MessageType = "audio_chunk" // PCM audio for transcription

	// Server → Client messages.
	TypeEngagementUpdate MessageType = "engagement_update" // Room snapshot
	TypeError            MessageType = "error"             // Per-message failure

	// Bidirectional.
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"
)

// Error codes carried in ErrorData.
const (
	CodeDecodeError = "decode_error"
	CodeBadMessage  = "bad_message"
)

// Message is the base wrapper for all WebSocket messages.
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct.
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message.
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes.
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// VideoFrameData contains one video frame. Frame is base64 JPEG, with or
// without a data-URI prefix. SceneText optionally carries a client-side scene
// description so clients without a server-side describer still get context
// scoring.
type VideoFrameData struct {
	Frame         string   `json:"frame"`
	SceneText     string   `json:"scene_text,omitempty"`
	SceneKeywords []string `json:"scene_keywords,omitempty"`
	FrameID       uint64   `json:"frame_id,omitempty"`
}

// AudioChunkData contains microphone audio.
type AudioChunkData struct {
	Format     string `json:"format"`      // "pcm16"
	SampleRate int    `json:"sample_rate"` // e.g. 16000
	Data       string `json:"data"`        // base64 encoded
}

// ErrorData reports a per-message failure; the connection stays open.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PingData identifies a health-check round trip.
type PingData struct {
	ID string `json:"id,omitempty"`
}

// PongData answers a ping.
type PongData struct {
	ID     string `json:"id,omitempty"`
	PingTS int64  `json:"ping_ts,omitempty"`
}
