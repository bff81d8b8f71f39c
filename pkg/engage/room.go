package engage

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Distribution buckets persons by overall score.
type Distribution struct {
	HighlyEngaged int         `json:"highly_engaged"`
	Neutral       int         `json:"neutral"`
	Disengaged    int         `json:"disengaged"`
	Percentages   Percentages `json:"percentages"`
}

// Percentages is the bucket distribution as percentages rounded to one
// decimal place. They sum to 100 up to rounding.
type Percentages struct {
	HighlyEngaged float64 `json:"highly_engaged"`
	Neutral       float64 `json:"neutral"`
	Disengaged    float64 `json:"disengaged"`
}

// Participation summarizes who is speaking.
type Participation struct {
	SpeakingCount     int     `json:"speaking_count"`
	ParticipationRate float64 `json:"participation_rate"`
}

// RoomEngagement is the per-cycle room snapshot.
type RoomEngagement struct {
	Timestamp          time.Time          `json:"timestamp"`
	Overall            float64            `json:"overall_score"`
	TotalParticipants  int                `json:"total_participants"`
	ActiveParticipants int                `json:"active_participants"`
	Distribution       Distribution       `json:"distribution"`
	ComponentAverages  ComponentScores    `json:"component_averages"`
	Participation      Participation      `json:"participation"`
	Persons            []PersonEngagement `json:"persons"`
}

// AggregateRoom folds per-person scores into one room snapshot. An empty room
// yields a neutral 0.5 overall with zeroed counts, never a division by zero.
func (s *Scorer) AggregateRoom(persons []PersonEngagement) RoomEngagement {
	room := RoomEngagement{
		Timestamp: s.now(),
		Persons:   persons,
	}

	n := len(persons)
	room.TotalParticipants = n
	if n == 0 {
		room.Overall = neutralComponent
		room.ComponentAverages = ComponentScores{
			Context:       neutralComponent,
			Emotion:       neutralComponent,
			BodyLanguage:  neutralComponent,
			Speech:        neutralComponent,
			Participation: neutralComponent,
		}
		return room
	}

	overall := make([]float64, n)
	ctx := make([]float64, n)
	emo := make([]float64, n)
	body := make([]float64, n)
	speech := make([]float64, n)
	part := make([]float64, n)

	for i, p := range persons {
		overall[i] = p.Overall
		ctx[i] = p.Components.Context
		emo[i] = p.Components.Emotion
		body[i] = p.Components.BodyLanguage
		speech[i] = p.Components.Speech
		part[i] = p.Components.Participation

		switch {
		case p.Overall >= highlyEngagedThreshold:
			room.Distribution.HighlyEngaged++
		case p.Overall >= disengagedThreshold:
			room.Distribution.Neutral++
		default:
			room.Distribution.Disengaged++
		}
		if p.Confidence > activeConfidence {
			room.ActiveParticipants++
		}
		if p.Details.IsSpeaking {
			room.Participation.SpeakingCount++
		}
	}

	room.Overall = stat.Mean(overall, nil)
	room.ComponentAverages = ComponentScores{
		Context:       stat.Mean(ctx, nil),
		Emotion:       stat.Mean(emo, nil),
		BodyLanguage:  stat.Mean(body, nil),
		Speech:        stat.Mean(speech, nil),
		Participation: stat.Mean(part, nil),
	}

	total := float64(n)
	room.Distribution.Percentages = Percentages{
		HighlyEngaged: pct(room.Distribution.HighlyEngaged, total),
		Neutral:       pct(room.Distribution.Neutral, total),
		Disengaged:    pct(room.Distribution.Disengaged, total),
	}
	room.Participation.ParticipationRate = float64(room.Participation.SpeakingCount) / total

	return room
}

// pct rounds a bucket share to one decimal percent.
func pct(count int, total float64) float64 {
	return math.Round(float64(count)/total*1000) / 10
}
