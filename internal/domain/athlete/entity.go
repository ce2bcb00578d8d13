package athlete

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Athlete is the base row of an athlete profile (athletes table)
type Athlete struct {
	ID                   uuid.UUID      `db:"id"`
	UserID               uuid.UUID      `db:"user_id"`
	Phone                sql.NullString `db:"phone"`
	CurrentStep          sql.NullString `db:"current_step"`
	CompletionPercentage sql.NullInt32  `db:"completion_percentage"`
	IsPublished          bool           `db:"is_published"`
	PublishedAt          sql.NullTime   `db:"published_at"`
	ProfileViews         int            `db:"profile_views"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

// IsOwnedBy reports whether the profile belongs to the user
func (a *Athlete) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && a.UserID == userID
}

// ContactsVerification is the identity document and residence record
type ContactsVerification struct {
	AthleteID           uuid.UUID      `db:"athlete_id"`
	IDDocumentType      sql.NullString `db:"id_document_type"`
	IDDocumentTypeOther sql.NullString `db:"id_document_type_other"`
	IDDocumentNumber    sql.NullString `db:"id_document_number"`
	IDDocumentFrontURL  sql.NullString `db:"id_document_front_url"`
	IDDocumentBackURL   sql.NullString `db:"id_document_back_url"`
	SelfieURL           sql.NullString `db:"selfie_url"`
	DateOfBirth         sql.NullTime   `db:"date_of_birth"`
	Nationality         sql.NullString `db:"nationality"`
	ResidenceCountry    sql.NullString `db:"residence_country"`
	ResidenceCity       sql.NullString `db:"residence_city"`
	ResidenceAddress    sql.NullString `db:"residence_address"`
	ReviewStatus        sql.NullString `db:"review_status"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

// SportsExperience is the sporting career record
type SportsExperience struct {
	AthleteID        uuid.UUID       `db:"athlete_id"`
	Sport            sql.NullString  `db:"sport"`
	Role             sql.NullString  `db:"role"`
	Category         sql.NullString  `db:"category"`
	Team             sql.NullString  `db:"team"`
	PreviousTeam     sql.NullString  `db:"previous_team"`
	YearsExperience  sql.NullFloat64 `db:"years_experience"`
	SeekingTeam      sql.NullBool    `db:"seeking_team"`
	SecondaryRole    sql.NullString  `db:"secondary_role"`
	PlayingStyle     sql.NullString  `db:"playing_style"`
	ContractStatus   sql.NullString  `db:"contract_status"`
	ContractEndDate  sql.NullTime    `db:"contract_end_date"`
	ContractNotes    sql.NullString  `db:"contract_notes"`
	PreferredRegions pq.StringArray  `db:"preferred_regions"`
	TrialWindow      sql.NullString  `db:"trial_window"`
	IsRepresented    sql.NullBool    `db:"is_represented"`
	AgentName        sql.NullString  `db:"agent_name"`
	AgencyName       sql.NullString  `db:"agency_name"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// PhysicalMetrics holds body measurements and test results
type PhysicalMetrics struct {
	AthleteID       uuid.UUID       `db:"athlete_id"`
	HeightCm        sql.NullFloat64 `db:"height_cm"`
	WeightKg        sql.NullFloat64 `db:"weight_kg"`
	WingspanCm      sql.NullFloat64 `db:"wingspan_cm"`
	StandingReachCm sql.NullFloat64 `db:"standing_reach_cm"`
	BodyFatPct      sql.NullFloat64 `db:"body_fat_pct"`
	DominantHand    sql.NullString  `db:"dominant_hand"`
	DominantFoot    sql.NullString  `db:"dominant_foot"`
	RestingHRBpm    sql.NullFloat64 `db:"resting_hr_bpm"`
	VO2Max          sql.NullFloat64 `db:"vo2_max"`
	VerticalJumpCm  sql.NullFloat64 `db:"vertical_jump_cm"`
	BroadJumpCm     sql.NullFloat64 `db:"broad_jump_cm"`
	GripLeftKg      sql.NullFloat64 `db:"grip_left_kg"`
	GripRightKg     sql.NullFloat64 `db:"grip_right_kg"`
	Sprint10mS      sql.NullFloat64 `db:"sprint_10m_s"`
	Sprint30mS      sql.NullFloat64 `db:"sprint_30m_s"`
	AgilityTTestS   sql.NullFloat64 `db:"agility_t_test_s"`
	Agility505S     sql.NullFloat64 `db:"agility_505_s"`
	YoYoLevel       sql.NullFloat64 `db:"yo_yo_level"`
	BenchPressKg    sql.NullFloat64 `db:"bench_press_kg"`
	SquatKg         sql.NullFloat64 `db:"squat_kg"`
	MeasuredAt      sql.NullTime    `db:"measured_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// Award is one award row
type Award struct {
	ID              uuid.UUID      `db:"id"`
	AthleteID       uuid.UUID      `db:"athlete_id"`
	Title           sql.NullString `db:"title"`
	AwardingEntity  sql.NullString `db:"awarding_entity"`
	AwardDate       sql.NullTime   `db:"award_date"`
	Season          sql.NullString `db:"season"`
	Description     sql.NullString `db:"description"`
	EvidenceURL     sql.NullString `db:"evidence_url"`
	EvidenceMediaID uuid.NullUUID  `db:"evidence_media_id"`
	CreatedAt       time.Time      `db:"created_at"`
}

// MediaItem is one uploaded photo or video
type MediaItem struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	AthleteID   uuid.UUID      `db:"athlete_id" json:"athlete_id"`
	Category    string         `db:"category" json:"category"`
	StorageKey  string         `db:"storage_key" json:"-"`
	ContentType sql.NullString `db:"content_type" json:"-"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`

	// URL is not a column; the service resolves it through storage.
	URL string `db:"-" json:"url"`
}

// GameMeta describes the match a game video comes from
type GameMeta struct {
	MediaItemID uuid.UUID      `db:"media_item_id"`
	MatchDate   sql.NullTime   `db:"match_date"`
	Opponent    sql.NullString `db:"opponent"`
	Competition sql.NullString `db:"competition"`
	Season      sql.NullString `db:"season"`
	TeamLevel   sql.NullString `db:"team_level"`
}

// SocialProfile is a linked social account
type SocialProfile struct {
	ID         uuid.UUID      `db:"id"`
	AthleteID  uuid.UUID      `db:"athlete_id"`
	Platform   sql.NullString `db:"platform"`
	ProfileURL sql.NullString `db:"profile_url"`
	Handle     sql.NullString `db:"handle"`
	CreatedAt  time.Time      `db:"created_at"`
}
