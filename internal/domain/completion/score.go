package completion

const (
	// StarCount is the number of stars rendered.
	StarCount = 5
	// SegmentsPerStar splits each star into thirds.
	SegmentsPerStar = 3
	// MaxSegments is a full five-star rating.
	MaxSegments = StarCount * SegmentsPerStar

	wizardBonus   = 3
	verifiedBonus = 3
	perfectBonus  = 1

	viewsPerSegment     = 20
	unlocksPerSegment   = 5
	operatorsPerSegment = 3
)

// EngagementStats are the counters that earn extra segments.
type EngagementStats struct {
	ProfileViews       int `json:"profile_views"`
	ContactUnlocks     int `json:"contact_unlocks"`
	MessagingOperators int `json:"messaging_operators"`
}

// ScoreInput is what the star rating is derived from.
type ScoreInput struct {
	Athlete  Athlete
	Stats    EngagementStats
	Contacts *ContactsVerification
}

// ScoreSegments returns the star rating in thirds of a star, in [0, MaxSegments].
func ScoreSegments(in ScoreInput) int {
	segments := 0

	pct := 0
	if in.Athlete.CompletionPercentage != nil {
		pct = *in.Athlete.CompletionPercentage
	}

	if !IsFilled(in.Athlete.CurrentStep) && pct >= BaseCompletion {
		segments += wizardBonus
	}
	if in.Contacts.ReviewStatusCanonical() == StatusApproved {
		segments += verifiedBonus
	}
	if pct >= MaxCompletion {
		segments += perfectBonus
	}

	segments += nonNegative(in.Stats.ProfileViews) / viewsPerSegment
	segments += nonNegative(in.Stats.ContactUnlocks) / unlocksPerSegment
	segments += nonNegative(in.Stats.MessagingOperators) / operatorsPerSegment

	return clamp(segments, 0, MaxSegments)
}

// StarFills returns the fill fraction of each star for a segment count,
// e.g. 7 segments -> [1, 1, 0.333, 0, 0].
func StarFills(segments int) [StarCount]float64 {
	var fills [StarCount]float64
	for i := range fills {
		fills[i] = float64(clamp(segments-i*SegmentsPerStar, 0, SegmentsPerStar)) / SegmentsPerStar
	}
	return fills
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
