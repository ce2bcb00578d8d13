package completion

// Section names as reported in the breakdown.
const (
	SectionContacts = "contacts"
	SectionSports   = "sports"
	SectionPhysical = "physical"
	SectionAwards   = "awards"
	SectionMedia    = "media"
	SectionSocial   = "social"
)

// SectionNames lists the six scored profile areas in display order.
var SectionNames = []string{
	SectionContacts,
	SectionSports,
	SectionPhysical,
	SectionAwards,
	SectionMedia,
	SectionSocial,
}

// MinSectionRatio is the fill ratio a lenient section must reach to count.
const MinSectionRatio = 0.6

const idTypeOther = "other"

// Section is the scored state of one profile area.
type Section struct {
	Filled      int     `json:"filled"`
	Total       int     `json:"total"`
	Ratio       float64 `json:"ratio"`
	Contributes bool    `json:"contributes"`
}

// ContactsSection adds the canonical review status to the contacts result.
type ContactsSection struct {
	Section
	ReviewStatus string `json:"review_status"`
}

func lenient(c Count) Section {
	return Section{
		Filled:      c.Filled,
		Total:       c.Total,
		Ratio:       c.Ratio,
		Contributes: c.Total > 0 && c.Ratio >= MinSectionRatio,
	}
}

// Contacts requires every field and an approved review.
func evaluateContacts(a Athlete, cv *ContactsVerification) ContactsSection {
	if cv == nil {
		cv = &ContactsVerification{}
	}

	items := []any{
		a.Phone,
		cv.IDDocumentType,
		cv.IDDocumentNumber,
		cv.IDDocumentFrontURL,
		cv.IDDocumentBackURL,
		cv.SelfieURL,
		cv.DateOfBirth,
		cv.Nationality,
		cv.ResidenceCountry,
		cv.ResidenceCity,
		cv.ResidenceAddress,
	}
	if cv.IDDocumentType != nil && CanonicalStatus(*cv.IDDocumentType) == idTypeOther {
		items = append(items, cv.IDDocumentTypeOther)
	}

	c := CountFilled(items...)
	status := cv.ReviewStatusCanonical()

	return ContactsSection{
		Section: Section{
			Filled:      c.Filled,
			Total:       c.Total,
			Ratio:       c.Ratio,
			Contributes: c.Total > 0 && c.Filled == c.Total && status == StatusApproved,
		},
		ReviewStatus: status,
	}
}

func evaluateSports(sp *SportsExperience) Section {
	if sp == nil {
		sp = &SportsExperience{}
	}

	return lenient(CountFilled(
		sp.Sport,
		sp.Role,
		sp.Category,
		sp.Team,
		sp.PreviousTeam,
		sp.YearsExperience,
		sp.SeekingTeam != nil, // an explicit "no" is still an answer
		sp.SecondaryRole,
		sp.PlayingStyle,
		sp.HasContract,
		sp.PreferredRegions,
		sp.TrialWindow,
		sp.HasRepresentation,
	))
}

func evaluatePhysical(p *PhysicalMetrics) Section {
	if p == nil {
		p = &PhysicalMetrics{}
	}

	return lenient(CountFilled(
		p.HeightCm,
		p.WeightKg,
		p.WingspanCm,
		p.StandingReachCm,
		p.BodyFatPct,
		p.DominantHand,
		p.DominantFoot,
		p.RestingHRBpm,
		p.VO2Max,
		p.VerticalJumpCm,
		p.BroadJumpCm,
		p.HasGripStrength,
		p.HasSprintTime,
		p.HasAgilityTime,
		p.YoYoLevel,
		p.BenchPressKg,
		p.SquatKg,
		p.MeasuredAt,
	))
}

// Award rows are summed field by field, not averaged per row.
func evaluateAwards(awards []Award) Section {
	var c Count
	for _, a := range awards {
		c = c.add(CountFilled(a.Title, a.AwardingEntity, a.HasDate, a.Description, a.HasEvidence))
	}
	return lenient(c)
}

func evaluateSocial(profiles []SocialProfile) Section {
	var c Count
	for _, p := range profiles {
		c = c.add(CountFilled(p.Platform, p.ProfileURL, p.Handle))
	}
	return lenient(c)
}

func evaluateMedia(items []MediaItem, meta []GameMeta) Section {
	complete := make(map[string]bool, len(meta))
	for _, m := range meta {
		if m.MediaItemID == "" {
			continue
		}
		if gameMetaComplete(m) {
			complete[m.MediaItemID] = true
		}
	}

	counts := make(map[string]int, len(MediaCategories))
	completeGames := 0
	for _, item := range items {
		category := canonicalCategory(item.Category)
		counts[category]++
		if category == CategoryGame && item.ID != "" && complete[item.ID] {
			completeGames++
		}
	}

	return lenient(CountFilled(
		counts[CategoryFeaturedHeadshot] > 0,
		counts[CategoryFeaturedGame1] > 0,
		counts[CategoryFeaturedGame2] > 0,
		counts[CategoryIntro] > 0,
		counts[CategoryGallery] >= 1,
		counts[CategoryGallery] >= 2,
		counts[CategoryGallery] >= 3,
		counts[CategoryHighlight] >= 1,
		counts[CategoryHighlight] >= 2,
		completeGames >= 1,
		completeGames >= 2,
	))
}

func gameMetaComplete(m GameMeta) bool {
	c := CountFilled(m.MatchDate, m.Opponent, m.Competition, m.Season, m.TeamLevel)
	return c.Filled == c.Total
}
