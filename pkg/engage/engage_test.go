package engage

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/engageiq/go-engage/pkg/analyze"
	"github.com/engageiq/go-engage/pkg/scene"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func testScorer() *Scorer {
	s := New(DefaultWeights())
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestScorePerson_AllAbsent(t *testing.T) {
	p := testScorer().ScorePerson(1, PersonInput{})

	if !floatEquals(p.Overall, 0.5) {
		t.Errorf("expected neutral overall 0.5, got %f", p.Overall)
	}
	for name, c := range map[string]float64{
		"context":       p.Components.Context,
		"emotion":       p.Components.Emotion,
		"body_language": p.Components.BodyLanguage,
		"speech":        p.Components.Speech,
		"participation": p.Components.Participation,
	} {
		if !floatEquals(c, 0.5) {
			t.Errorf("component %s: expected 0.5, got %f", name, c)
		}
	}
	if p.PersonID != 1 {
		t.Errorf("expected person id 1, got %d", p.PersonID)
	}
}

func TestScorePerson_OpenPosture(t *testing.T) {
	obs := scene.Parse("everyone leaning forward and nodding")
	p := testScorer().ScorePerson(1, PersonInput{Context: &obs})

	if !floatEquals(p.Components.BodyLanguage, 0.75) {
		t.Errorf("open posture: expected 0.75, got %f", p.Components.BodyLanguage)
	}
	if !floatEquals(p.Components.Context, obs.Score) {
		t.Errorf("context component should equal contextual score")
	}
}

func TestScorePerson_ClosedPosture(t *testing.T) {
	obs := scene.Parse("arms crossed, slouching")
	p := testScorer().ScorePerson(1, PersonInput{Context: &obs})

	if !floatEquals(p.Components.BodyLanguage, 0.35) {
		t.Errorf("closed posture: expected 0.35, got %f", p.Components.BodyLanguage)
	}
}

func TestScorePerson_OpenPostureWinsTie(t *testing.T) {
	obs := scene.Parse("leaning forward with arms crossed")
	if !obs.HasOpenPosture() || !obs.HasClosedPosture() {
		t.Fatal("expected both posture flags set")
	}
	p := testScorer().ScorePerson(1, PersonInput{Context: &obs})
	if !floatEquals(p.Components.BodyLanguage, 0.75) {
		t.Errorf("open should win the tie, got %f", p.Components.BodyLanguage)
	}
}

func TestScorePerson_PoseFallback(t *testing.T) {
	obs := scene.Parse("a group of people at a table")
	if obs.HasOpenPosture() || obs.HasClosedPosture() {
		t.Fatal("expected no posture cues in description")
	}
	pose := &analyze.Pose{Posture: "forward", Engagement: 0.9}

	p := testScorer().ScorePerson(1, PersonInput{Context: &obs, Pose: pose})
	if !floatEquals(p.Components.BodyLanguage, 0.9) {
		t.Errorf("pose should supply body language, got %f", p.Components.BodyLanguage)
	}
	if p.Details.Posture != "forward" {
		t.Errorf("expected posture detail, got %q", p.Details.Posture)
	}
}

func TestScorePerson_PoseWithoutContext(t *testing.T) {
	pose := &analyze.Pose{Posture: "backward", Engagement: 0.3}
	p := testScorer().ScorePerson(1, PersonInput{Pose: pose})
	if !floatEquals(p.Components.BodyLanguage, 0.3) {
		t.Errorf("expected 0.3 from pose alone, got %f", p.Components.BodyLanguage)
	}
}

func TestScorePerson_EmotionPassthrough(t *testing.T) {
	emo := &analyze.Emotion{
		Scores:     map[string]float64{"happy": 1},
		Dominant:   "happy",
		Engagement: 1.0,
	}
	p := testScorer().ScorePerson(1, PersonInput{Emotion: emo})
	if !floatEquals(p.Components.Emotion, 1.0) {
		t.Errorf("expected emotion component 1.0, got %f", p.Components.Emotion)
	}
	if p.Details.DominantEmotion != "happy" {
		t.Errorf("expected dominant emotion in details, got %q", p.Details.DominantEmotion)
	}
}

func TestScorePerson_Participation(t *testing.T) {
	speaking := testScorer().ScorePerson(1, PersonInput{Speech: &analyze.Transcript{Speaking: true}})
	if !floatEquals(speaking.Components.Participation, 0.8) {
		t.Errorf("speaking: expected 0.8, got %f", speaking.Components.Participation)
	}

	silent := testScorer().ScorePerson(1, PersonInput{Speech: &analyze.Transcript{Speaking: false}})
	if !floatEquals(silent.Components.Participation, 0.3) {
		t.Errorf("silent: expected 0.3, got %f", silent.Components.Participation)
	}
}

func TestSpeechScore(t *testing.T) {
	tests := []struct {
		name string
		in   analyze.Transcript
		want float64
	}{
		{"empty", analyze.Transcript{}, 0.5},
		{"positive sentiment", analyze.Transcript{Text: "good", Sentiment: 0.5}, 0.6},
		{"strong negative sentiment", analyze.Transcript{Text: "bad", Sentiment: -0.8}, 0.58},
		{"weak sentiment ignored", analyze.Transcript{Text: "ok", Sentiment: 0.03}, 0.5},
		{
			"keywords",
			analyze.Transcript{Text: "yes I agree"},
			0.6, // two keywords, three words
		},
		{
			"length bonus over ten words",
			analyze.Transcript{Text: strings.Repeat("word ", 11)},
			0.6,
		},
		{
			"length bonus over twenty words",
			analyze.Transcript{Text: strings.Repeat("word ", 21)},
			0.65,
		},
		{
			"clamped at one",
			analyze.Transcript{
				Text:      "yes I agree this is great and excellent and so interesting a question to think about and believe in today",
				Sentiment: 1.0,
			},
			1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := speechScore(&tt.in)
			if !floatEquals(got, tt.want) {
				t.Errorf("speechScore(%q) = %f, want %f", tt.in.Text, got, tt.want)
			}
		})
	}
}

func TestScorePerson_WeightedOverall(t *testing.T) {
	obs := scene.Parse("engaged and smiling, leaning forward")
	emo := &analyze.Emotion{Dominant: "happy", Engagement: 0.8}
	speech := &analyze.Transcript{Text: "yes", Speaking: true}

	p := testScorer().ScorePerson(1, PersonInput{Context: &obs, Emotion: emo, Speech: speech})

	w := DefaultWeights().Normalize()
	want := obs.Score*w.Context +
		0.8*w.Emotion +
		0.75*w.BodyLanguage +
		0.55*w.Speech +
		0.8*w.Participation
	if !floatEquals(p.Overall, want) {
		t.Errorf("overall = %f, want %f", p.Overall, want)
	}
	if p.Overall < 0 || p.Overall > 1 {
		t.Errorf("overall out of bounds: %f", p.Overall)
	}
}

func TestAggregateRoom_Empty(t *testing.T) {
	room := testScorer().AggregateRoom(nil)

	if !floatEquals(room.Overall, 0.5) {
		t.Errorf("empty room: expected overall 0.5, got %f", room.Overall)
	}
	if room.TotalParticipants != 0 || room.ActiveParticipants != 0 {
		t.Errorf("empty room: expected zero counts")
	}
	d := room.Distribution
	if d.HighlyEngaged != 0 || d.Neutral != 0 || d.Disengaged != 0 {
		t.Errorf("empty room: expected zero distribution")
	}
	if !floatEquals(room.ComponentAverages.Context, 0.5) {
		t.Errorf("empty room: expected neutral component averages")
	}
	if !floatEquals(room.Participation.ParticipationRate, 0) {
		t.Errorf("empty room: expected zero participation rate")
	}
}

func TestAggregateRoom_Buckets(t *testing.T) {
	persons := []PersonEngagement{
		{PersonID: 1, Overall: 0.9, Confidence: 0.9},
		{PersonID: 2, Overall: 0.5, Confidence: 0.9},
		{PersonID: 3, Overall: 0.1, Confidence: 0.3},
	}
	room := testScorer().AggregateRoom(persons)

	d := room.Distribution
	if d.HighlyEngaged != 1 || d.Neutral != 1 || d.Disengaged != 1 {
		t.Errorf("distribution = %+v, want 1/1/1", d)
	}
	if !floatEquals(d.Percentages.HighlyEngaged, 33.3) {
		t.Errorf("expected 33.3%%, got %f", d.Percentages.HighlyEngaged)
	}
	if !floatEquals(room.Overall, 0.5) {
		t.Errorf("expected mean 0.5, got %f", room.Overall)
	}
	if room.ActiveParticipants != 2 {
		t.Errorf("expected 2 active (confidence > 0.5), got %d", room.ActiveParticipants)
	}
}

func TestAggregateRoom_BucketBoundaries(t *testing.T) {
	persons := []PersonEngagement{
		{Overall: 0.7}, // boundary: highly engaged
		{Overall: 0.4}, // boundary: neutral
	}
	d := testScorer().AggregateRoom(persons).Distribution
	if d.HighlyEngaged != 1 {
		t.Errorf("0.7 should be highly engaged")
	}
	if d.Neutral != 1 {
		t.Errorf("0.4 should be neutral")
	}
	if d.Disengaged != 0 {
		t.Errorf("no one disengaged, got %d", d.Disengaged)
	}
}

func TestAggregateRoom_Participation(t *testing.T) {
	persons := []PersonEngagement{
		{Overall: 0.5, Details: Details{IsSpeaking: true}},
		{Overall: 0.5},
		{Overall: 0.5, Details: Details{IsSpeaking: true}},
		{Overall: 0.5},
	}
	room := testScorer().AggregateRoom(persons)
	if room.Participation.SpeakingCount != 2 {
		t.Errorf("expected 2 speaking, got %d", room.Participation.SpeakingCount)
	}
	if !floatEquals(room.Participation.ParticipationRate, 0.5) {
		t.Errorf("expected rate 0.5, got %f", room.Participation.ParticipationRate)
	}
}

func TestAggregateRoom_Repeatable(t *testing.T) {
	// Aggregation is pure over its input; only the timestamp depends on the
	// clock, so with a fixed clock repeated calls must be identical.
	s := testScorer()
	persons := []PersonEngagement{
		{PersonID: 1, Overall: 0.9, Confidence: 0.9, Details: Details{IsSpeaking: true}},
		{PersonID: 2, Overall: 0.45, Confidence: 0.6},
		{PersonID: 3, Overall: 0.2, Confidence: 0.3},
	}

	first := s.AggregateRoom(persons)
	second := s.AggregateRoom(persons)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAggregateRoom_ComponentAverages(t *testing.T) {
	persons := []PersonEngagement{
		{Overall: 0.6, Components: ComponentScores{Context: 0.2, Emotion: 0.4, BodyLanguage: 0.6, Speech: 0.8, Participation: 1.0}},
		{Overall: 0.4, Components: ComponentScores{Context: 0.4, Emotion: 0.6, BodyLanguage: 0.8, Speech: 1.0, Participation: 0.0}},
	}
	avg := testScorer().AggregateRoom(persons).ComponentAverages
	if !floatEquals(avg.Context, 0.3) || !floatEquals(avg.Emotion, 0.5) ||
		!floatEquals(avg.BodyLanguage, 0.7) || !floatEquals(avg.Speech, 0.9) ||
		!floatEquals(avg.Participation, 0.5) {
		t.Errorf("component averages wrong: %+v", avg)
	}
}

func TestParseWeights(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Weights
		wantErr bool
	}{
		{"empty uses defaults", "", DefaultWeights(), false},
		{"uniform", "1,1,1,1,1", Weights{0.2, 0.2, 0.2, 0.2, 0.2}, false},
		{"normalized", "0.35,0.25,0.15,0.15,0.10", DefaultWeights(), false},
		{"too few", "0.5,0.5", Weights{}, true},
		{"not a number", "a,b,c,d,e", Weights{}, true},
		{"negative", "0.5,-0.1,0.2,0.2,0.2", Weights{}, true},
		{"all zero", "0,0,0,0,0", Weights{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeights(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := tt.want.Normalize()
			if !floatEquals(got.Context, want.Context) ||
				!floatEquals(got.Emotion, want.Emotion) ||
				!floatEquals(got.BodyLanguage, want.BodyLanguage) ||
				!floatEquals(got.Speech, want.Speech) ||
				!floatEquals(got.Participation, want.Participation) {
				t.Errorf("ParseWeights(%q) = %+v, want %+v", tt.in, got, want)
			}
		})
	}
}

func TestWeightsNormalize_NonPositiveSum(t *testing.T) {
	got := Weights{}.Normalize()
	if got != DefaultWeights() {
		t.Errorf("zero weights should normalize to defaults, got %+v", got)
	}
}
