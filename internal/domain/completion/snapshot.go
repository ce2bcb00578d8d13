package completion

import (
	"regexp"
	"strings"
	"time"
)

// Media categories an athlete can upload into.
const (
	CategoryFeaturedHeadshot = "featured_headshot"
	CategoryFeaturedGame1    = "featured_game1"
	CategoryFeaturedGame2    = "featured_game2"
	CategoryGallery          = "gallery"
	CategoryIntro            = "intro"
	CategoryHighlight        = "highlight"
	CategoryGame             = "game"
)

// MediaCategories lists every accepted media category.
var MediaCategories = []string{
	CategoryFeaturedHeadshot,
	CategoryFeaturedGame1,
	CategoryFeaturedGame2,
	CategoryGallery,
	CategoryIntro,
	CategoryHighlight,
	CategoryGame,
}

// StatusApproved is the canonical review status of a verified contacts record.
const StatusApproved = "approved"

// Snapshot is every record fragment of one athlete, assembled by the caller
// for a single computation. The engine only reads it.
type Snapshot struct {
	Athlete  Athlete
	Contacts *ContactsVerification
	Sports   *SportsExperience
	Physical *PhysicalMetrics
	Awards   []Award
	Media    []MediaItem
	GameMeta []GameMeta
	Social   []SocialProfile
}

// Athlete holds the base identity fields the engines look at.
type Athlete struct {
	Phone                *string
	CurrentStep          *string
	CompletionPercentage *int
}

// ContactsVerification is the identity and residence record under review.
type ContactsVerification struct {
	IDDocumentType      *string
	IDDocumentTypeOther *string
	IDDocumentNumber    *string
	IDDocumentFrontURL  *string
	IDDocumentBackURL   *string
	SelfieURL           *string
	DateOfBirth         *time.Time
	Nationality         *string
	ResidenceCountry    *string
	ResidenceCity       *string
	ResidenceAddress    *string
	ReviewStatus        *string
}

// SportsExperience describes the athlete's sporting career.
type SportsExperience struct {
	Sport            *string
	Role             *string
	Category         *string
	Team             *string
	PreviousTeam     *string
	YearsExperience  *float64
	SeekingTeam      *bool
	SecondaryRole    *string
	PlayingStyle     *string
	ContractStatus   *string
	ContractEndDate  *time.Time
	ContractNotes    *string
	PreferredRegions []string
	TrialWindow      *string
	IsRepresented    *bool
	AgentName        *string
	AgencyName       *string

	// Derived by Snapshot.Derive.
	HasContract       bool
	HasRepresentation bool
}

// PhysicalMetrics holds anthropometric and performance-test results.
type PhysicalMetrics struct {
	HeightCm        *float64
	WeightKg        *float64
	WingspanCm      *float64
	StandingReachCm *float64
	BodyFatPct      *float64
	DominantHand    *string
	DominantFoot    *string
	RestingHRBpm    *float64
	VO2Max          *float64
	VerticalJumpCm  *float64
	BroadJumpCm     *float64
	GripLeftKg      *float64
	GripRightKg     *float64
	Sprint10mS      *float64
	Sprint30mS      *float64
	AgilityTTestS   *float64
	Agility505S     *float64
	YoYoLevel       *float64
	BenchPressKg    *float64
	SquatKg         *float64
	MeasuredAt      *time.Time

	// Derived by Snapshot.Derive.
	HasGripStrength bool
	HasSprintTime   bool
	HasAgilityTime  bool
}

// Award is one award or honour row.
type Award struct {
	Title           *string
	AwardingEntity  *string
	AwardDate       *time.Time
	Season          *string
	Description     *string
	EvidenceURL     *string
	EvidenceMediaID *string

	// Derived by Snapshot.Derive.
	HasDate     bool
	HasEvidence bool
}

// MediaItem is one uploaded photo or video.
type MediaItem struct {
	ID       string
	Category string
}

// GameMeta describes the match a game video was recorded in.
type GameMeta struct {
	MediaItemID string
	MatchDate   *time.Time
	Opponent    *string
	Competition *string
	Season      *string
	TeamLevel   *string
}

// SocialProfile is one linked social network account.
type SocialProfile struct {
	Platform   *string
	ProfileURL *string
	Handle     *string
}

// Derive fills the "any of" flags that collapse several optional columns into
// a single completion item. Compute derives its own copy, so calling this is
// only needed to inspect the flags.
func (s *Snapshot) Derive() {
	if s.Sports != nil {
		sp := s.Sports
		sp.HasContract = anyFilled(sp.ContractStatus, sp.ContractEndDate, sp.ContractNotes)
		sp.HasRepresentation = anyFilled(sp.IsRepresented, sp.AgentName, sp.AgencyName)
	}
	if s.Physical != nil {
		p := s.Physical
		p.HasGripStrength = anyFilled(p.GripLeftKg, p.GripRightKg)
		p.HasSprintTime = anyFilled(p.Sprint10mS, p.Sprint30mS)
		p.HasAgilityTime = anyFilled(p.AgilityTTestS, p.Agility505S)
	}
	for i := range s.Awards {
		a := &s.Awards[i]
		a.HasDate = anyFilled(a.AwardDate, a.Season)
		a.HasEvidence = anyFilled(a.EvidenceURL, a.EvidenceMediaID)
	}
}

// derived returns a copy with the flags recomputed from the underlying
// columns. The receiver's records are left untouched.
func (s Snapshot) derived() Snapshot {
	if s.Sports != nil {
		sp := *s.Sports
		s.Sports = &sp
	}
	if s.Physical != nil {
		p := *s.Physical
		s.Physical = &p
	}
	if s.Awards != nil {
		s.Awards = append([]Award(nil), s.Awards...)
	}
	s.Derive()
	return s
}

func anyFilled(values ...any) bool {
	for _, v := range values {
		if IsFilled(v) {
			return true
		}
	}
	return false
}

var statusSeparators = regexp.MustCompile(`[\s_-]+`)

// CanonicalStatus normalizes a free-text review status: trimmed, lowercase,
// runs of spaces, hyphens and underscores collapsed into one underscore.
func CanonicalStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return statusSeparators.ReplaceAllString(s, "_")
}

// ReviewStatusCanonical returns the canonical review status of a contacts record,
// or an empty string when there is none.
func (c *ContactsVerification) ReviewStatusCanonical() string {
	if c == nil || c.ReviewStatus == nil {
		return ""
	}
	return CanonicalStatus(*c.ReviewStatus)
}

func canonicalCategory(s string) string {
	return CanonicalStatus(s)
}
