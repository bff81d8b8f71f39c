// Package session drives the per-connection engagement pipeline: decode an
// incoming message, run detection and tracking, gather modality observations,
// fuse scores, and produce the one response to send back.
//
// Each connection owns one Session and one Tracker; the scorer and the scene
// parser are stateless and shared across all sessions. Message handling
// within a session is strictly sequential.
package session

import (
	"context"
	"math"
	"time"

	"github.com/engageiq/go-engage/internal/log"
	"github.com/engageiq/go-engage/pkg/analyze"
	"github.com/engageiq/go-engage/pkg/engage"
	"github.com/engageiq/go-engage/pkg/notify"
	"github.com/engageiq/go-engage/pkg/protocol"
	"github.com/engageiq/go-engage/pkg/scene"
	"github.com/engageiq/go-engage/pkg/track"
)

// Collaborators are the external analysis services a session consumes. Any
// of them may be nil; a nil collaborator behaves like a disabled modality.
type Collaborators struct {
	Detector    analyze.PersonDetector
	Emotion     analyze.EmotionClassifier
	Pose        analyze.PoseEstimator
	Describer   analyze.SceneDescriber
	Transcriber analyze.SpeechTranscriber
	Sink        notify.Sink
}

// Session is the per-connection pipeline state.
type Session struct {
	ID string

	cfg     Config
	scorer  *engage.Scorer
	collab  Collaborators
	tracker *track.Tracker
	limiter *notify.Limiter

	// pending is the last transcript, folded into the next video cycle.
	pending *analyze.Transcript

	now func() time.Time
}

// New creates a session with its own tracker.
func New(id string, cfg Config, scorer *engage.Scorer, collab Collaborators) *Session {
	if cfg.NotifyInterval <= 0 {
		cfg.NotifyInterval = DefaultConfig().NotifyInterval
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = DefaultConfig().NotifyTimeout
	}
	return &Session{
		ID:      id,
		cfg:     cfg,
		scorer:  scorer,
		collab:  collab,
		tracker: track.New(cfg.Tracker),
		limiter: notify.NewLimiter(cfg.NotifyInterval),
		now:     time.Now,
	}
}

// Tracker exposes the session's tracker for inspection.
func (s *Session) Tracker() *track.Tracker { return s.tracker }

// Handle processes one inbound message and returns the response to write,
// or nil when the message produces none. Malformed input yields an error
// message; the session stays usable. Unknown message types are ignored.
func (s *Session) Handle(ctx context.Context, data []byte) *protocol.Message {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		return errorMessage(protocol.CodeBadMessage, "unparseable message")
	}

	switch msg.Type {
	case protocol.TypeVideoFrame:
		return s.handleVideoFrame(ctx, msg)
	case protocol.TypeAudioChunk:
		return s.handleAudioChunk(ctx, msg)
	case protocol.TypePing:
		pong, err := protocol.NewPongMessage("", msg.Timestamp)
		if err != nil {
			return nil
		}
		return pong
	default:
		log.Debug("ignoring message", "session", s.ID, "type", msg.Type)
		return nil
	}
}

// handleVideoFrame runs one full scoring cycle and returns the
// engagement_update response.
func (s *Session) handleVideoFrame(ctx context.Context, msg *protocol.Message) *protocol.Message {
	frame, err := msg.GetVideoFrameData()
	if err != nil {
		return errorMessage(protocol.CodeDecodeError, "malformed video_frame payload")
	}
	jpeg, err := frame.DecodeFrame()
	if err != nil {
		return errorMessage(protocol.CodeDecodeError, "frame is not valid base64")
	}

	detections := s.detect(ctx, jpeg)
	tracks := s.tracker.Update(detections)

	obs := s.describeScene(ctx, jpeg, frame.SceneText)

	// The pending transcript applies to everyone scored this cycle; there is
	// no speaker attribution.
	speech := s.pending
	s.pending = nil

	var persons []engage.PersonEngagement
	for _, trk := range tracks {
		if !trk.Active() {
			continue
		}
		in := engage.PersonInput{
			Context:    obs,
			Speech:     speech,
			Box:        &trk.Box,
			Confidence: trk.Box.Confidence,
		}
		if s.cfg.Modalities.Emotion && s.collab.Emotion != nil {
			if emo, err := s.collab.Emotion.Analyze(ctx, jpeg, trk.Box); err == nil {
				in.Emotion = emo
			} else {
				log.Debug("emotion unavailable", "session", s.ID, "track", trk.ID, "err", err)
			}
		}
		if s.cfg.Modalities.Pose && s.collab.Pose != nil {
			if pose, err := s.collab.Pose.Estimate(ctx, jpeg, trk.Box); err == nil {
				in.Pose = pose
			} else {
				log.Debug("pose unavailable", "session", s.ID, "track", trk.ID, "err", err)
			}
		}
		persons = append(persons, s.scorer.ScorePerson(trk.ID, in))
	}

	room := s.scorer.AggregateRoom(persons)
	s.notifyRoom(ctx, room, obs)

	resp, err := protocol.NewMessage(protocol.TypeEngagementUpdate, room)
	if err != nil {
		log.Error("encode engagement update", "session", s.ID, "err", err)
		return nil
	}
	return resp
}

// handleAudioChunk transcribes audio for the next video cycle. Audio never
// produces a direct response.
func (s *Session) handleAudioChunk(ctx context.Context, msg *protocol.Message) *protocol.Message {
	if !s.cfg.Modalities.Speech || s.collab.Transcriber == nil {
		return nil
	}
	chunk, err := msg.GetAudioChunkData()
	if err != nil {
		return errorMessage(protocol.CodeDecodeError, "malformed audio_chunk payload")
	}
	pcm, err := chunk.DecodeAudio()
	if err != nil {
		return errorMessage(protocol.CodeDecodeError, "audio is not valid base64")
	}

	transcript, err := s.collab.Transcriber.Transcribe(ctx, pcm, chunk.SampleRate)
	if err != nil {
		log.Debug("transcription unavailable", "session", s.ID, "err", err)
		return nil
	}
	s.pending = transcript
	return nil
}

// detect finds people in the frame. A failed or missing detector yields no
// detections, which reads as an empty room rather than an error.
func (s *Session) detect(ctx context.Context, jpeg []byte) []track.Box {
	if s.collab.Detector == nil {
		return nil
	}
	boxes, err := s.collab.Detector.Detect(ctx, jpeg)
	if err != nil {
		log.Debug("detection unavailable", "session", s.ID, "err", err)
		return nil
	}
	return boxes
}

// describeScene resolves the context observation for this cycle. Client-sent
// scene text wins over the server-side describer.
func (s *Session) describeScene(ctx context.Context, jpeg []byte, clientText string) *scene.Observation {
	if !s.cfg.Modalities.Scene {
		return nil
	}
	text := clientText
	if text == "" && s.collab.Describer != nil {
		described, err := s.collab.Describer.Describe(ctx, jpeg)
		if err != nil {
			log.Debug("scene description unavailable", "session", s.ID, "err", err)
		} else {
			text = described
		}
	}
	if text == "" {
		return nil
	}
	obs := scene.Parse(text)
	return &obs
}

// notifyRoom delivers a rate-limited summary to the external sink. Failures
// are logged and never surfaced to the client.
func (s *Session) notifyRoom(ctx context.Context, room engage.RoomEngagement, obs *scene.Observation) {
	if s.collab.Sink == nil {
		return
	}
	if !s.limiter.Allow(s.now()) {
		return
	}

	n := notify.Notification{
		Engagement: int(math.Round(room.Overall * 100)),
		Keywords:   []string{},
	}
	if obs != nil {
		n.Keywords = obs.Keywords()
	}

	dctx, cancel := context.WithTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()
	if err := s.collab.Sink.Deliver(dctx, n); err != nil {
		log.Warn("notification delivery failed", "session", s.ID, "err", err)
	}
}

func errorMessage(code, text string) *protocol.Message {
	msg, err := protocol.NewErrorMessage(code, text)
	if err != nil {
		return nil
	}
	return msg
}
