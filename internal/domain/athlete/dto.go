package athlete

import (
	"github.com/google/uuid"

	"github.com/scoutline/scoutline-api/internal/domain/completion"
)

// CompletionView is the completion endpoint payload
type CompletionView struct {
	completion.Result
	SectionsComplete int      `json:"sections_complete"`
	MissingSections  []string `json:"missing_sections"`
	CanPublish       bool     `json:"can_publish"`
	PublishThreshold int      `json:"publish_threshold"`
}

func newCompletionView(result completion.Result, threshold int) *CompletionView {
	return &CompletionView{
		Result:           result,
		SectionsComplete: result.SectionsComplete(),
		MissingSections:  result.MissingSections(),
		CanPublish:       result.Completion >= threshold,
		PublishThreshold: threshold,
	}
}

// ReviewRequest is the operator's verdict on submitted identity documents
type ReviewRequest struct {
	ReviewStatus string `json:"review_status" validate:"required,review_status"`
}

// ScoreView is the star rating payload
type ScoreView struct {
	Segments int                           `json:"segments"`
	Stars    [completion.StarCount]float64 `json:"stars"`
	Stats    completion.EngagementStats    `json:"stats"`
}

// PublishStatus is returned by publish and unpublish
type PublishStatus struct {
	AthleteID   uuid.UUID `json:"athlete_id"`
	IsPublished bool      `json:"is_published"`
	Completion  int       `json:"completion"`
}

// ViewCount is returned after recording a profile view
type ViewCount struct {
	ProfileViews int `json:"profile_views"`
}

// RecomputeOptions controls a batch recompute
type RecomputeOptions struct {
	Batch  int
	DryRun bool
}

// RecomputeOutcome reports one athlete of a batch recompute
type RecomputeOutcome struct {
	AthleteID  uuid.UUID
	Previous   *int
	Completion int
	Err        error
}

// Changed reports whether the stored percentage differs from the new one
func (o RecomputeOutcome) Changed() bool {
	return o.Previous == nil || *o.Previous != o.Completion
}
