package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSegments_Engagement(t *testing.T) {
	segments := ScoreSegments(ScoreInput{
		Athlete: Athlete{CurrentStep: sptr("physical"), CompletionPercentage: iptr(60)},
		Stats:   EngagementStats{ProfileViews: 45, ContactUnlocks: 12, MessagingOperators: 9},
	})

	assert.Equal(t, 7, segments)

	fills := StarFills(segments)
	assert.Equal(t, 1.0, fills[0])
	assert.Equal(t, 1.0, fills[1])
	assert.InDelta(t, 1.0/3, fills[2], 1e-9)
	assert.Equal(t, 0.0, fills[3])
	assert.Equal(t, 0.0, fills[4])
}

func TestScoreSegments_Bonuses(t *testing.T) {
	tests := []struct {
		name  string
		input ScoreInput
		want  int
	}{
		{
			name:  "nothing",
			input: ScoreInput{},
			want:  0,
		},
		{
			name:  "wizard finished",
			input: ScoreInput{Athlete: Athlete{CompletionPercentage: iptr(40)}},
			want:  3,
		},
		{
			name:  "wizard still open",
			input: ScoreInput{Athlete: Athlete{CurrentStep: sptr("media"), CompletionPercentage: iptr(90)}},
			want:  0,
		},
		{
			name:  "blank step counts as finished",
			input: ScoreInput{Athlete: Athlete{CurrentStep: sptr(" "), CompletionPercentage: iptr(50)}},
			want:  3,
		},
		{
			name:  "wizard finished below floor",
			input: ScoreInput{Athlete: Athlete{CompletionPercentage: iptr(30)}},
			want:  0,
		},
		{
			name:  "verified contacts",
			input: ScoreInput{Contacts: &ContactsVerification{ReviewStatus: sptr(" APPROVED")}},
			want:  3,
		},
		{
			name:  "pending contacts",
			input: ScoreInput{Contacts: &ContactsVerification{ReviewStatus: sptr("pending")}},
			want:  0,
		},
		{
			name: "perfect profile",
			input: ScoreInput{
				Athlete:  Athlete{CompletionPercentage: iptr(100)},
				Contacts: &ContactsVerification{ReviewStatus: sptr("approved")},
			},
			want: 7,
		},
		{
			name:  "negative counters read as zero",
			input: ScoreInput{Stats: EngagementStats{ProfileViews: -100, ContactUnlocks: -5, MessagingOperators: 3}},
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreSegments(tt.input))
		})
	}
}

func TestScoreSegments_Clamped(t *testing.T) {
	segments := ScoreSegments(ScoreInput{
		Athlete:  Athlete{CompletionPercentage: iptr(100)},
		Contacts: &ContactsVerification{ReviewStatus: sptr("approved")},
		Stats:    EngagementStats{ProfileViews: 10000},
	})
	assert.Equal(t, MaxSegments, segments)
}

func TestStarFills(t *testing.T) {
	assert.Equal(t, [StarCount]float64{}, StarFills(0))
	assert.Equal(t, [StarCount]float64{}, StarFills(-4))
	assert.Equal(t, [StarCount]float64{1, 1, 1, 1, 1}, StarFills(MaxSegments))
	assert.Equal(t, [StarCount]float64{1, 1, 1, 1, 1}, StarFills(40))
	assert.Equal(t, [StarCount]float64{1, 1, 1, 1, 0}, StarFills(12))

	fills := StarFills(14)
	assert.InDelta(t, 2.0/3, fills[4], 1e-9)
}
