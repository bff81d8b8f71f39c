package scene

// The lexicons below are part of the scoring contract: Parse must be exactly
// reproducible, so these lists and the constants in scene.go are fixed.

// positiveKeywords signal engagement when present in a scene description.
var positiveKeywords = []string{
	"engaged", "attentive", "focused", "interested", "participative",
	"active", "alert", "concentrated", "involved", "enthusiastic",
	"smiling", "happy", "excited", "nodding", "leaning forward",
	"eye contact", "looking at", "watching", "listening", "paying attention",
	"energetic", "animated", "vibrant", "lively", "eager",
	"curious", "responsive", "expressive", "bright", "cheerful",
	"positive", "upbeat", "motivated", "open", "receptive",
}

// neutralKeywords signal presence without strong engagement either way.
var neutralKeywords = []string{
	"neutral", "calm", "relaxed", "composed", "steady",
	"sitting", "present", "quiet", "still", "stable",
}

// negativeKeywords signal disengagement.
var negativeKeywords = []string{
	"distracted", "bored", "disengaged", "uninterested", "withdrawn",
	"passive", "tired", "fatigued", "sleepy", "drowsy",
	"looking away", "looking down", "checking phone", "yawning",
	"slouching", "leaning back", "arms crossed", "frowning", "confused",
	"unhappy", "sad", "frustrated", "worried",
}

// negationTokens suppress a positive keyword when they appear shortly
// before it in the text.
var negationTokens = []string{
	"not", "no", "never", "neither", "none", "nobody", "nothing",
	"nowhere", "hardly", "barely", "scarcely", "doesn't", "don't",
	"isn't", "aren't", "wasn't", "weren't", "won't", "wouldn't", "without",
}

// Body language phrases.
var (
	openPosturePhrases = []string{
		"leaning forward", "open posture", "relaxed shoulders", "uncrossed arms", "upright",
	}
	closedPosturePhrases = []string{
		"arms crossed", "leaning back", "slouching", "turned away", "hunched",
	}
	activeGesturePhrases = []string{
		"gesturing", "hand raised", "nodding", "moving", "pointing",
	}
)

// Emotion words.
var (
	positiveEmotionWords = []string{
		"happy", "smiling", "pleased", "content", "excited", "surprised", "delighted",
		"joyful", "enthusiastic", "cheerful", "bright", "positive", "upbeat",
		"animated", "expressive", "energetic", "lively",
	}
	negativeEmotionWords = []string{
		"sad", "frustrated", "angry", "confused", "worried", "concerned", "upset",
	}
	neutralEmotionWords = []string{
		"neutral", "calm", "composed", "expressionless", "blank",
	}
)
