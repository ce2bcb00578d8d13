// Package completion scores how complete an athlete profile is.
//
// Compute turns a Snapshot of the athlete's records into a completion
// percentage plus a per-section breakdown. ScoreSegments and StarFills derive
// the star rating shown next to the profile. Both are total functions over
// in-memory data: missing or malformed fields count as not filled and never
// produce an error.
package completion

const (
	// BaseCompletion is granted to every athlete who started the wizard.
	BaseCompletion = 40
	// SectionPoints is added for each contributing section.
	SectionPoints = 10
	// MaxCompletion caps the percentage.
	MaxCompletion = 100
)

// Breakdown is the per-section detail behind a completion percentage.
type Breakdown struct {
	Contacts ContactsSection `json:"contacts"`
	Sports   Section         `json:"sports"`
	Physical Section         `json:"physical"`
	Awards   Section         `json:"awards"`
	Media    Section         `json:"media"`
	Social   Section         `json:"social"`
}

// Result is the output of Compute.
type Result struct {
	Completion int       `json:"completion"`
	Breakdown  Breakdown `json:"breakdown"`
}

// Compute scores a snapshot. The derived flags are always recomputed from
// the underlying fields on a copy; the snapshot is not modified.
func Compute(s Snapshot) Result {
	s = s.derived()
	b := Breakdown{
		Contacts: evaluateContacts(s.Athlete, s.Contacts),
		Sports:   evaluateSports(s.Sports),
		Physical: evaluatePhysical(s.Physical),
		Awards:   evaluateAwards(s.Awards),
		Media:    evaluateMedia(s.Media, s.GameMeta),
		Social:   evaluateSocial(s.Social),
	}

	completion := BaseCompletion + SectionPoints*b.Contributing()
	if completion > MaxCompletion {
		completion = MaxCompletion
	}

	return Result{Completion: completion, Breakdown: b}
}

// Sections returns the six sections keyed by name.
func (b Breakdown) Sections() map[string]Section {
	return map[string]Section{
		SectionContacts: b.Contacts.Section,
		SectionSports:   b.Sports,
		SectionPhysical: b.Physical,
		SectionAwards:   b.Awards,
		SectionMedia:    b.Media,
		SectionSocial:   b.Social,
	}
}

// Contributing counts the sections that crossed their threshold.
func (b Breakdown) Contributing() int {
	n := 0
	for _, s := range b.Sections() {
		if s.Contributes {
			n++
		}
	}
	return n
}

// SectionsComplete is the number of contributing sections, for "3/6" style display.
func (r Result) SectionsComplete() int {
	return r.Breakdown.Contributing()
}

// MissingSections lists sections that do not contribute yet, in display order.
func (r Result) MissingSections() []string {
	sections := r.Breakdown.Sections()
	missing := []string{}
	for _, name := range SectionNames {
		if !sections[name].Contributes {
			missing = append(missing, name)
		}
	}
	return missing
}
