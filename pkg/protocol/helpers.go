package protocol

import (
	"encoding/base64"
	"strings"
)

// NewVideoFrameMessage creates a video_frame message from raw JPEG data.
func NewVideoFrameMessage(jpeg []byte, sceneText string, frameID uint64) (*Message, error) {
	return NewMessage(TypeVideoFrame, VideoFrameData{
		Frame:     base64.StdEncoding.EncodeToString(jpeg),
		SceneText: sceneText,
		FrameID:   frameID,
	})
}

// NewAudioChunkMessage creates an audio_chunk message from PCM data.
func NewAudioChunkMessage(pcm []byte, sampleRate int) (*Message, error) {
	return NewMessage(TypeAudioChunk, AudioChunkData{
		Format:     "pcm16",
		SampleRate: sampleRate,
		Data:       base64.StdEncoding.EncodeToString(pcm),
	})
}

// NewErrorMessage creates an error response.
func NewErrorMessage(code, message string) (*Message, error) {
	return NewMessage(TypeError, ErrorData{Code: code, Message: message})
}

// NewPingMessage creates a ping message.
func NewPingMessage(id string) (*Message, error) {
	return NewMessage(TypePing, PingData{ID: id})
}

// NewPongMessage creates a pong response echoing the ping.
func NewPongMessage(id string, pingTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{ID: id, PingTS: pingTS})
}

// GetVideoFrameData extracts video frame data from a message.
func (m *Message) GetVideoFrameData() (*VideoFrameData, error) {
	var data VideoFrameData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetAudioChunkData extracts audio chunk data from a message.
func (m *Message) GetAudioChunkData() (*AudioChunkData, error) {
	var data AudioChunkData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DecodeFrame decodes the base64 image payload, tolerating an optional
// "data:image/...;base64," prefix.
func (f *VideoFrameData) DecodeFrame() ([]byte, error) {
	payload := f.Frame
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}

// DecodeAudio decodes the base64 PCM payload.
func (a *AudioChunkData) DecodeAudio() ([]byte, error) {
	return base64.StdEncoding.DecodeString(a.Data)
}
