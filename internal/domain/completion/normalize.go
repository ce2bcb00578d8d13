package completion

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FromMap builds a derived Snapshot from an untyped document such as a decoded
// JSON request body. Top-level keys follow the client payload
// (athlete, contactsVerification, sportsExperience, physical, awards,
// mediaItems, mediaGameMeta, socialProfiles); snake_case aliases are accepted.
// Collections may be a list, a single object or absent. Values of the wrong
// type are dropped rather than rejected.
func FromMap(raw map[string]any) Snapshot {
	var s Snapshot

	if a := first(lookup(raw, "athlete")); a != nil {
		s.Athlete = Athlete{
			Phone:                str(a, "phone"),
			CurrentStep:          str(a, "current_step"),
			CompletionPercentage: integer(a, "completion_percentage"),
		}
	}

	if c := first(lookup(raw, "contactsVerification", "contacts_verification")); c != nil {
		s.Contacts = &ContactsVerification{
			IDDocumentType:      str(c, "id_document_type"),
			IDDocumentTypeOther: str(c, "id_document_type_other"),
			IDDocumentNumber:    str(c, "id_document_number"),
			IDDocumentFrontURL:  str(c, "id_document_front_url"),
			IDDocumentBackURL:   str(c, "id_document_back_url"),
			SelfieURL:           str(c, "selfie_url"),
			DateOfBirth:         date(c, "date_of_birth"),
			Nationality:         str(c, "nationality"),
			ResidenceCountry:    str(c, "residence_country"),
			ResidenceCity:       str(c, "residence_city"),
			ResidenceAddress:    str(c, "residence_address"),
			ReviewStatus:        str(c, "review_status"),
		}
	}

	if sp := first(lookup(raw, "sportsExperience", "sports_experience")); sp != nil {
		s.Sports = &SportsExperience{
			Sport:            str(sp, "sport"),
			Role:             str(sp, "role"),
			Category:         str(sp, "category"),
			Team:             str(sp, "team"),
			PreviousTeam:     str(sp, "previous_team"),
			YearsExperience:  number(sp, "years_experience"),
			SeekingTeam:      boolean(sp, "seeking_team"),
			SecondaryRole:    str(sp, "secondary_role"),
			PlayingStyle:     str(sp, "playing_style"),
			ContractStatus:   str(sp, "contract_status"),
			ContractEndDate:  date(sp, "contract_end_date"),
			ContractNotes:    str(sp, "contract_notes"),
			PreferredRegions: strList(sp, "preferred_regions"),
			TrialWindow:      str(sp, "trial_window"),
			IsRepresented:    boolean(sp, "is_represented"),
			AgentName:        str(sp, "agent_name"),
			AgencyName:       str(sp, "agency_name"),
		}
	}

	if p := first(lookup(raw, "physical", "physical_metrics")); p != nil {
		s.Physical = &PhysicalMetrics{
			HeightCm:        number(p, "height_cm"),
			WeightKg:        number(p, "weight_kg"),
			WingspanCm:      number(p, "wingspan_cm"),
			StandingReachCm: number(p, "standing_reach_cm"),
			BodyFatPct:      number(p, "body_fat_pct"),
			DominantHand:    str(p, "dominant_hand"),
			DominantFoot:    str(p, "dominant_foot"),
			RestingHRBpm:    number(p, "resting_hr_bpm"),
			VO2Max:          number(p, "vo2max"),
			VerticalJumpCm:  number(p, "vertical_jump_cm"),
			BroadJumpCm:     number(p, "broad_jump_cm"),
			GripLeftKg:      number(p, "grip_left_kg"),
			GripRightKg:     number(p, "grip_right_kg"),
			Sprint10mS:      number(p, "sprint_10m_s"),
			Sprint30mS:      number(p, "sprint_30m_s"),
			AgilityTTestS:   number(p, "agility_t_test_s"),
			Agility505S:     number(p, "agility_505_s"),
			YoYoLevel:       number(p, "yoyo_level"),
			BenchPressKg:    number(p, "bench_press_kg"),
			SquatKg:         number(p, "squat_kg"),
			MeasuredAt:      date(p, "measured_at"),
		}
	}

	for _, a := range normalizeList(lookup(raw, "awards")) {
		s.Awards = append(s.Awards, Award{
			Title:           str(a, "title"),
			AwardingEntity:  str(a, "awarding_entity"),
			AwardDate:       date(a, "award_date"),
			Season:          str(a, "season"),
			Description:     str(a, "description"),
			EvidenceURL:     str(a, "evidence_url"),
			EvidenceMediaID: str(a, "evidence_media_id"),
		})
	}

	for _, m := range normalizeList(lookup(raw, "mediaItems", "media_items")) {
		item := MediaItem{}
		if id := str(m, "id"); id != nil {
			item.ID = *id
		}
		if category := str(m, "category"); category != nil {
			item.Category = *category
		}
		s.Media = append(s.Media, item)
	}

	for _, m := range normalizeList(lookup(raw, "mediaGameMeta", "media_game_meta")) {
		meta := GameMeta{
			MatchDate:   date(m, "match_date"),
			Opponent:    str(m, "opponent"),
			Competition: str(m, "competition"),
			Season:      str(m, "season"),
			TeamLevel:   str(m, "team_level"),
		}
		if id := str(m, "media_item_id"); id != nil {
			meta.MediaItemID = *id
		}
		s.GameMeta = append(s.GameMeta, meta)
	}

	for _, p := range normalizeList(lookup(raw, "socialProfiles", "social_profiles")) {
		s.Social = append(s.Social, SocialProfile{
			Platform:   str(p, "platform"),
			ProfileURL: str(p, "profile_url"),
			Handle:     str(p, "handle"),
		})
	}

	s.Derive()
	return s
}

func lookup(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// normalizeList turns a list, a single object or anything else into an
// ordered list of objects. Non-object list elements are skipped.
func normalizeList(v any) []map[string]any {
	switch val := v.(type) {
	case map[string]any:
		return []map[string]any{val}
	case []map[string]any:
		return val
	case []any:
		out := make([]map[string]any, 0, len(val))
		for _, e := range val {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func first(v any) map[string]any {
	list := normalizeList(v)
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

func str(m map[string]any, key string) *string {
	switch val := m[key].(type) {
	case string:
		return &val
	case json.Number:
		s := val.String()
		return &s
	case float64:
		if math.IsNaN(val) {
			return nil
		}
		s := strconv.FormatFloat(val, 'f', -1, 64)
		return &s
	case int:
		s := strconv.Itoa(val)
		return &s
	case int64:
		s := strconv.FormatInt(val, 10)
		return &s
	}
	return nil
}

func number(m map[string]any, key string) *float64 {
	var f float64
	switch val := m[key].(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func integer(m map[string]any, key string) *int {
	f := number(m, key)
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	n := int(*f)
	return &n
}

func boolean(m map[string]any, key string) *bool {
	switch val := m[key].(type) {
	case bool:
		return &val
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return nil
		}
		return &b
	}
	return nil
}

func date(m map[string]any, key string) *time.Time {
	switch val := m[key].(type) {
	case time.Time:
		return &val
	case string:
		val = strings.TrimSpace(val)
		if val == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return &t
			}
		}
		// Unrecognised formats still count as answered.
		return &time.Time{}
	}
	return nil
}

func strList(m map[string]any, key string) []string {
	switch val := m[key].(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, e := range val {
			if e != nil {
				out = append(out, fmt.Sprint(e))
			}
		}
		return out
	case string:
		if strings.TrimSpace(val) == "" {
			return nil
		}
		return []string{val}
	}
	return nil
}
