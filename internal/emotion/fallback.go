package emotion

import "strings"

const neutralBaseline = 0.3

type keywordCategory struct {
	label    string
	keywords []string
}

// keywordTable drives the heuristic used when no model is available.
// neutral has no keywords and always scores neutralBaseline.
var keywordTable = []keywordCategory{
	{label: "happy", keywords: []string{"happy", "glad", "joy", "great", "excited"}},
	{label: "sad", keywords: []string{"sad", "lonely", "cry", "miss", "depressed"}},
	{label: "angry", keywords: []string{"angry", "mad", "hate", "annoyed", "furious"}},
	{label: "anxious", keywords: []string{"anxious", "worried", "nervous", "afraid", "scared"}},
	{label: "neutral"},
}

// KeywordScores computes a deterministic score list from keyword occurrences.
// Scores are normalized to sum to 1 unless every score is zero.
func KeywordScores(text string) []EmotionScore {
	lowered := strings.ToLower(text)
	scores := make([]EmotionScore, 0, len(keywordTable))
	total := 0.0
	for _, category := range keywordTable {
		score := neutralBaseline
		if category.label != "neutral" {
			score = keywordScore(lowered, category.keywords)
		}
		total += score
		scores = append(scores, EmotionScore{Label: category.label, Score: score})
	}
	if total == 0 {
		return scores
	}
	for i := range scores {
		scores[i].Score /= total
	}
	return scores
}

func keywordScore(lowered string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	hits := 0
	for _, keyword := range keywords {
		hits += strings.Count(lowered, keyword)
	}
	score := float64(hits) / float64(len(keywords))
	if score > 1 {
		return 1
	}
	return score
}
