package athlete

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/scoutline/scoutline-api/internal/domain/completion"
)

// Records is everything stored for one athlete
type Records struct {
	Athlete  *Athlete
	Contacts *ContactsVerification
	Sports   *SportsExperience
	Physical *PhysicalMetrics
	Awards   []*Award
	Media    []*MediaItem
	GameMeta []*GameMeta
	Social   []*SocialProfile
}

// SnapshotLoader assembles completion snapshots from the repository
type SnapshotLoader struct {
	repo Repository
}

// NewSnapshotLoader creates a loader
func NewSnapshotLoader(repo Repository) *SnapshotLoader {
	return &SnapshotLoader{repo: repo}
}

// LoadRecords fetches every fragment concurrently. The first failure cancels the rest.
func (l *SnapshotLoader) LoadRecords(ctx context.Context, id uuid.UUID) (*Records, error) {
	var rec Records
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		rec.Athlete, err = l.repo.GetAthlete(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		rec.Contacts, err = l.repo.GetContacts(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		rec.Sports, err = l.repo.GetSports(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		rec.Physical, err = l.repo.GetPhysical(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		rec.Awards, err = l.repo.ListAwards(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		rec.Media, err = l.repo.ListMedia(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		rec.GameMeta, err = l.repo.ListGameMeta(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		rec.Social, err = l.repo.ListSocial(ctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if rec.Athlete == nil {
		return nil, ErrAthleteNotFound
	}
	return &rec, nil
}

// Load returns the derived snapshot and the base athlete row
func (l *SnapshotLoader) Load(ctx context.Context, id uuid.UUID) (completion.Snapshot, *Athlete, error) {
	rec, err := l.LoadRecords(ctx, id)
	if err != nil {
		return completion.Snapshot{}, nil, err
	}
	return rec.Snapshot(), rec.Athlete, nil
}

// Snapshot maps stored rows onto the engine's input and derives the flags
func (rec *Records) Snapshot() completion.Snapshot {
	s := completion.Snapshot{
		Contacts: toContacts(rec.Contacts),
		Sports:   toSports(rec.Sports),
		Physical: toPhysical(rec.Physical),
	}
	if rec.Athlete != nil {
		s.Athlete = toAthlete(rec.Athlete)
	}
	for _, a := range rec.Awards {
		s.Awards = append(s.Awards, toAward(a))
	}
	for _, m := range rec.Media {
		s.Media = append(s.Media, completion.MediaItem{ID: m.ID.String(), Category: m.Category})
	}
	for _, g := range rec.GameMeta {
		s.GameMeta = append(s.GameMeta, completion.GameMeta{
			MediaItemID: g.MediaItemID.String(),
			MatchDate:   nullTime(g.MatchDate),
			Opponent:    nullString(g.Opponent),
			Competition: nullString(g.Competition),
			Season:      nullString(g.Season),
			TeamLevel:   nullString(g.TeamLevel),
		})
	}
	for _, p := range rec.Social {
		s.Social = append(s.Social, completion.SocialProfile{
			Platform:   nullString(p.Platform),
			ProfileURL: nullString(p.ProfileURL),
			Handle:     nullString(p.Handle),
		})
	}
	s.Derive()
	return s
}

func toAthlete(a *Athlete) completion.Athlete {
	return completion.Athlete{
		Phone:                nullString(a.Phone),
		CurrentStep:          nullString(a.CurrentStep),
		CompletionPercentage: nullInt(a.CompletionPercentage),
	}
}

func toContacts(c *ContactsVerification) *completion.ContactsVerification {
	if c == nil {
		return nil
	}
	return &completion.ContactsVerification{
		IDDocumentType:      nullString(c.IDDocumentType),
		IDDocumentTypeOther: nullString(c.IDDocumentTypeOther),
		IDDocumentNumber:    nullString(c.IDDocumentNumber),
		IDDocumentFrontURL:  nullString(c.IDDocumentFrontURL),
		IDDocumentBackURL:   nullString(c.IDDocumentBackURL),
		SelfieURL:           nullString(c.SelfieURL),
		DateOfBirth:         nullTime(c.DateOfBirth),
		Nationality:         nullString(c.Nationality),
		ResidenceCountry:    nullString(c.ResidenceCountry),
		ResidenceCity:       nullString(c.ResidenceCity),
		ResidenceAddress:    nullString(c.ResidenceAddress),
		ReviewStatus:        nullString(c.ReviewStatus),
	}
}

func toSports(s *SportsExperience) *completion.SportsExperience {
	if s == nil {
		return nil
	}
	return &completion.SportsExperience{
		Sport:            nullString(s.Sport),
		Role:             nullString(s.Role),
		Category:         nullString(s.Category),
		Team:             nullString(s.Team),
		PreviousTeam:     nullString(s.PreviousTeam),
		YearsExperience:  nullFloat(s.YearsExperience),
		SeekingTeam:      nullBool(s.SeekingTeam),
		SecondaryRole:    nullString(s.SecondaryRole),
		PlayingStyle:     nullString(s.PlayingStyle),
		ContractStatus:   nullString(s.ContractStatus),
		ContractEndDate:  nullTime(s.ContractEndDate),
		ContractNotes:    nullString(s.ContractNotes),
		PreferredRegions: []string(s.PreferredRegions),
		TrialWindow:      nullString(s.TrialWindow),
		IsRepresented:    nullBool(s.IsRepresented),
		AgentName:        nullString(s.AgentName),
		AgencyName:       nullString(s.AgencyName),
	}
}

func toPhysical(p *PhysicalMetrics) *completion.PhysicalMetrics {
	if p == nil {
		return nil
	}
	return &completion.PhysicalMetrics{
		HeightCm:        nullFloat(p.HeightCm),
		WeightKg:        nullFloat(p.WeightKg),
		WingspanCm:      nullFloat(p.WingspanCm),
		StandingReachCm: nullFloat(p.StandingReachCm),
		BodyFatPct:      nullFloat(p.BodyFatPct),
		DominantHand:    nullString(p.DominantHand),
		DominantFoot:    nullString(p.DominantFoot),
		RestingHRBpm:    nullFloat(p.RestingHRBpm),
		VO2Max:          nullFloat(p.VO2Max),
		VerticalJumpCm:  nullFloat(p.VerticalJumpCm),
		BroadJumpCm:     nullFloat(p.BroadJumpCm),
		GripLeftKg:      nullFloat(p.GripLeftKg),
		GripRightKg:     nullFloat(p.GripRightKg),
		Sprint10mS:      nullFloat(p.Sprint10mS),
		Sprint30mS:      nullFloat(p.Sprint30mS),
		AgilityTTestS:   nullFloat(p.AgilityTTestS),
		Agility505S:     nullFloat(p.Agility505S),
		YoYoLevel:       nullFloat(p.YoYoLevel),
		BenchPressKg:    nullFloat(p.BenchPressKg),
		SquatKg:         nullFloat(p.SquatKg),
		MeasuredAt:      nullTime(p.MeasuredAt),
	}
}

func toAward(a *Award) completion.Award {
	award := completion.Award{
		Title:          nullString(a.Title),
		AwardingEntity: nullString(a.AwardingEntity),
		AwardDate:      nullTime(a.AwardDate),
		Season:         nullString(a.Season),
		Description:    nullString(a.Description),
		EvidenceURL:    nullString(a.EvidenceURL),
	}
	if a.EvidenceMediaID.Valid {
		id := a.EvidenceMediaID.UUID.String()
		award.EvidenceMediaID = &id
	}
	return award
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	return &v.Bool
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func nullInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}
