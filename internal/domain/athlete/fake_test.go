package athlete

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var errBoom = errors.New("boom")

// memRepo is an in-memory Repository for service and handler tests
type memRepo struct {
	mu sync.Mutex

	athletes  map[uuid.UUID]*Athlete
	contacts  map[uuid.UUID]*ContactsVerification
	sports    map[uuid.UUID]*SportsExperience
	physical  map[uuid.UUID]*PhysicalMetrics
	awards    map[uuid.UUID][]*Award
	media     map[uuid.UUID]*MediaItem
	meta      map[uuid.UUID]*GameMeta
	social    map[uuid.UUID][]*SocialProfile
	unlocks   map[uuid.UUID]int
	operators map[uuid.UUID]int

	failAwards  bool
	writes      int
	idPageCalls int
}

func newMemRepo() *memRepo {
	return &memRepo{
		athletes:  map[uuid.UUID]*Athlete{},
		contacts:  map[uuid.UUID]*ContactsVerification{},
		sports:    map[uuid.UUID]*SportsExperience{},
		physical:  map[uuid.UUID]*PhysicalMetrics{},
		awards:    map[uuid.UUID][]*Award{},
		media:     map[uuid.UUID]*MediaItem{},
		meta:      map[uuid.UUID]*GameMeta{},
		social:    map[uuid.UUID][]*SocialProfile{},
		unlocks:   map[uuid.UUID]int{},
		operators: map[uuid.UUID]int{},
	}
}

func (m *memRepo) GetAthlete(_ context.Context, id uuid.UUID) (*Athlete, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.athletes[id]
	if !ok {
		return nil, ErrAthleteNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memRepo) GetContacts(_ context.Context, id uuid.UUID) (*ContactsVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contacts[id], nil
}

func (m *memRepo) GetSports(_ context.Context, id uuid.UUID) (*SportsExperience, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sports[id], nil
}

func (m *memRepo) GetPhysical(_ context.Context, id uuid.UUID) (*PhysicalMetrics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.physical[id], nil
}

func (m *memRepo) ListAwards(_ context.Context, id uuid.UUID) ([]*Award, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAwards {
		return nil, errBoom
	}
	return m.awards[id], nil
}

func (m *memRepo) ListMedia(_ context.Context, id uuid.UUID) ([]*MediaItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*MediaItem
	for _, item := range m.media {
		if item.AthleteID == id {
			cp := *item
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (m *memRepo) ListGameMeta(_ context.Context, id uuid.UUID) ([]*GameMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var meta []*GameMeta
	for mediaID, g := range m.meta {
		if item, ok := m.media[mediaID]; ok && item.AthleteID == id {
			meta = append(meta, g)
		}
	}
	return meta, nil
}

func (m *memRepo) ListSocial(_ context.Context, id uuid.UUID) ([]*SocialProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.social[id], nil
}

func (m *memRepo) UpdateCompletion(_ context.Context, id uuid.UUID, pct int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.athletes[id]
	if !ok {
		return ErrAthleteNotFound
	}
	a.CompletionPercentage = sql.NullInt32{Int32: int32(pct), Valid: true}
	m.writes++
	return nil
}

func (m *memRepo) SetPublished(_ context.Context, id uuid.UUID, published bool, pct int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.athletes[id]
	if !ok {
		return ErrAthleteNotFound
	}
	a.IsPublished = published
	a.CompletionPercentage = sql.NullInt32{Int32: int32(pct), Valid: true}
	m.writes++
	return nil
}

func (m *memRepo) ListAthleteIDs(_ context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idPageCalls++
	var ids []uuid.UUID
	for id := range m.athletes {
		if bytes.Compare(id[:], after[:]) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (m *memRepo) GetMediaItem(_ context.Context, id uuid.UUID) (*MediaItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.media[id]
	if !ok {
		return nil, ErrMediaNotFound
	}
	cp := *item
	return &cp, nil
}

func (m *memRepo) DeleteMediaItem(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.media[id]; !ok {
		return ErrMediaNotFound
	}
	delete(m.media, id)
	delete(m.meta, id)
	return nil
}

func (m *memRepo) SetReviewStatus(_ context.Context, id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[id]
	if !ok {
		return ErrContactsNotFound
	}
	c.ReviewStatus = ns(status)
	return nil
}

func (m *memRepo) CountContactUnlocks(_ context.Context, id uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unlocks[id], nil
}

func (m *memRepo) CountMessagingOperators(_ context.Context, id uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operators[id], nil
}

func (m *memRepo) ProfileViews(_ context.Context, id uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.athletes[id]
	if !ok {
		return 0, ErrAthleteNotFound
	}
	return a.ProfileViews, nil
}

func (m *memRepo) IncrementProfileViews(_ context.Context, id uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.athletes[id]
	if !ok {
		return 0, ErrAthleteNotFound
	}
	a.ProfileViews++
	return a.ProfileViews, nil
}

// memStorage records deleted keys
type memStorage struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memStorage) GetURL(key string) string {
	return "https://cdn.test/" + key
}

func ns(s string) sql.NullString   { return sql.NullString{String: s, Valid: true} }
func nf(f float64) sql.NullFloat64 { return sql.NullFloat64{Float64: f, Valid: true} }
func nb(b bool) sql.NullBool       { return sql.NullBool{Bool: b, Valid: true} }
func nt(t time.Time) sql.NullTime  { return sql.NullTime{Time: t, Valid: true} }

var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

// seedAthlete adds a bare athlete that only has the base row
func (m *memRepo) seedAthlete(userID uuid.UUID) uuid.UUID {
	id := uuid.New()
	m.athletes[id] = &Athlete{ID: id, UserID: userID, CreatedAt: day, UpdatedAt: day}
	return id
}

// seedComplete adds an athlete whose every section contributes
func (m *memRepo) seedComplete(userID uuid.UUID) uuid.UUID {
	id := m.seedAthlete(userID)
	m.athletes[id].Phone = ns("+7 700 000 00 00")

	m.contacts[id] = &ContactsVerification{
		AthleteID:          id,
		IDDocumentType:     ns("passport"),
		IDDocumentNumber:   ns("N1234567"),
		IDDocumentFrontURL: ns("docs/front.jpg"),
		IDDocumentBackURL:  ns("docs/back.jpg"),
		SelfieURL:          ns("docs/selfie.jpg"),
		DateOfBirth:        nt(time.Date(2004, 5, 1, 0, 0, 0, 0, time.UTC)),
		Nationality:        ns("KZ"),
		ResidenceCountry:   ns("KZ"),
		ResidenceCity:      ns("Almaty"),
		ResidenceAddress:   ns("Abay 1"),
		ReviewStatus:       ns("Approved "),
	}

	m.sports[id] = &SportsExperience{
		AthleteID:        id,
		Sport:            ns("football"),
		Role:             ns("winger"),
		Category:         ns("senior"),
		Team:             ns("Kairat"),
		PreviousTeam:     ns("Ordabasy"),
		YearsExperience:  nf(6),
		SeekingTeam:      nb(false),
		SecondaryRole:    ns("striker"),
		PlayingStyle:     ns("direct"),
		ContractStatus:   ns("active"),
		PreferredRegions: pq.StringArray{"EU"},
		TrialWindow:      ns("summer"),
		AgentName:        ns("A. Agent"),
	}

	m.physical[id] = &PhysicalMetrics{
		AthleteID:       id,
		HeightCm:        nf(181),
		WeightKg:        nf(74),
		WingspanCm:      nf(185),
		StandingReachCm: nf(238),
		BodyFatPct:      nf(9.5),
		DominantHand:    ns("right"),
		DominantFoot:    ns("left"),
		RestingHRBpm:    nf(52),
		VO2Max:          nf(58),
		VerticalJumpCm:  nf(61),
		BroadJumpCm:     nf(265),
		GripLeftKg:      nf(48),
		Sprint10mS:      nf(1.72),
		Agility505S:     nf(2.3),
		YoYoLevel:       nf(19.2),
		BenchPressKg:    nf(80),
		SquatKg:         nf(120),
		MeasuredAt:      nt(day),
	}

	m.awards[id] = []*Award{{
		ID:             uuid.New(),
		AthleteID:      id,
		Title:          ns("Best Player"),
		AwardingEntity: ns("KFF"),
		Season:         ns("2024"),
		Description:    ns("League MVP"),
		EvidenceURL:    ns("https://kff.kz/mvp"),
	}}

	categories := []string{
		"featured_headshot", "featured_game1", "featured_game2", "intro",
		"gallery", "gallery", "gallery", "highlight", "highlight", "game", "game",
	}
	for i, category := range categories {
		m.addMedia(id, category, i)
	}

	m.social[id] = []*SocialProfile{{
		ID:         uuid.New(),
		AthleteID:  id,
		Platform:   ns("instagram"),
		ProfileURL: ns("https://instagram.com/winger"),
		Handle:     ns("@winger"),
	}}

	return id
}

func (m *memRepo) addMedia(athleteID uuid.UUID, category string, order int) uuid.UUID {
	mediaID := uuid.New()
	m.media[mediaID] = &MediaItem{
		ID:         mediaID,
		AthleteID:  athleteID,
		Category:   category,
		StorageKey: "athletes/" + athleteID.String() + "/" + mediaID.String(),
		CreatedAt:  day.Add(time.Duration(order) * time.Minute),
	}
	if category == "game" {
		m.meta[mediaID] = &GameMeta{
			MediaItemID: mediaID,
			MatchDate:   nt(day),
			Opponent:    ns("Astana"),
			Competition: ns("Premier League"),
			Season:      ns("2024"),
			TeamLevel:   ns("first team"),
		}
	}
	return mediaID
}
