package model

// DigestFeedback is the rating payload collected after a digest is consumed.
// Ratings are required; model lists and the free-text comment are optional.
// Pointers distinguish "absent" from a zero rating at the decode boundary.
type DigestFeedback struct {
	DigestRating  *int `json:"digestRating"`
	RankingRating *int `json:"rankingRating"`
	SummaryRating *int `json:"summaryRating"`
	VoiceRating   *int `json:"voiceRating"`
	MusicRating   *int `json:"musicRating"`

	RankingModels []string `json:"rankingModels,omitempty"`
	SummaryModels []string `json:"summaryModels,omitempty"`

	// Comment is free text. It is stripped before the payload is handed
	// to analytics and is never stored.
	Comment string `json:"comment,omitempty"`
}

// MissingRatings returns the names of required rating fields absent from
// the payload, in a stable order.
func (f DigestFeedback) MissingRatings() []string {
	var missing []string
	if f.DigestRating == nil {
		missing = append(missing, "digestRating")
	}
	if f.RankingRating == nil {
		missing = append(missing, "rankingRating")
	}
	if f.SummaryRating == nil {
		missing = append(missing, "summaryRating")
	}
	if f.VoiceRating == nil {
		missing = append(missing, "voiceRating")
	}
	if f.MusicRating == nil {
		missing = append(missing, "musicRating")
	}
	return missing
}
