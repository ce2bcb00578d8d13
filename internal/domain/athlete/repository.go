package athlete

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines athlete record access. Single-record getters return
// nil, nil when the athlete has not filled that wizard step yet.
type Repository interface {
	GetAthlete(ctx context.Context, id uuid.UUID) (*Athlete, error)
	GetContacts(ctx context.Context, athleteID uuid.UUID) (*ContactsVerification, error)
	GetSports(ctx context.Context, athleteID uuid.UUID) (*SportsExperience, error)
	GetPhysical(ctx context.Context, athleteID uuid.UUID) (*PhysicalMetrics, error)
	ListAwards(ctx context.Context, athleteID uuid.UUID) ([]*Award, error)
	ListMedia(ctx context.Context, athleteID uuid.UUID) ([]*MediaItem, error)
	ListGameMeta(ctx context.Context, athleteID uuid.UUID) ([]*GameMeta, error)
	ListSocial(ctx context.Context, athleteID uuid.UUID) ([]*SocialProfile, error)

	UpdateCompletion(ctx context.Context, id uuid.UUID, percentage int) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool, percentage int) error
	ListAthleteIDs(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error)

	GetMediaItem(ctx context.Context, id uuid.UUID) (*MediaItem, error)
	DeleteMediaItem(ctx context.Context, id uuid.UUID) error

	SetReviewStatus(ctx context.Context, athleteID uuid.UUID, status string) error

	CountContactUnlocks(ctx context.Context, athleteID uuid.UUID) (int, error)
	CountMessagingOperators(ctx context.Context, athleteID uuid.UUID) (int, error)
	ProfileViews(ctx context.Context, athleteID uuid.UUID) (int, error)
	IncrementProfileViews(ctx context.Context, athleteID uuid.UUID) (int, error)
}

const (
	athleteColumns = `id, user_id, phone, current_step, completion_percentage, is_published,
		published_at, profile_views, created_at, updated_at`

	contactsColumns = `athlete_id, id_document_type, id_document_type_other, id_document_number,
		id_document_front_url, id_document_back_url, selfie_url, date_of_birth, nationality,
		residence_country, residence_city, residence_address, review_status, updated_at`

	sportsColumns = `athlete_id, sport, role, category, team, previous_team, years_experience,
		seeking_team, secondary_role, playing_style, contract_status, contract_end_date,
		contract_notes, preferred_regions, trial_window, is_represented, agent_name,
		agency_name, updated_at`

	physicalColumns = `athlete_id, height_cm, weight_kg, wingspan_cm, standing_reach_cm,
		body_fat_pct, dominant_hand, dominant_foot, resting_hr_bpm, vo2_max, vertical_jump_cm,
		broad_jump_cm, grip_left_kg, grip_right_kg, sprint_10m_s, sprint_30m_s,
		agility_t_test_s, agility_505_s, yo_yo_level, bench_press_kg, squat_kg, measured_at,
		updated_at`

	awardColumns = `id, athlete_id, title, awarding_entity, award_date, season, description,
		evidence_url, evidence_media_id, created_at`

	mediaColumns = `id, athlete_id, category, storage_key, content_type, created_at`

	socialColumns = `id, athlete_id, platform, profile_url, handle, created_at`
)

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a PostgreSQL athlete repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAthlete(ctx context.Context, id uuid.UUID) (*Athlete, error) {
	var a Athlete
	query := `SELECT ` + athleteColumns + ` FROM athletes WHERE id = $1`
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAthleteNotFound
		}
		return nil, fmt.Errorf("get athlete: %w", err)
	}
	return &a, nil
}

func (r *repository) GetContacts(ctx context.Context, athleteID uuid.UUID) (*ContactsVerification, error) {
	var c ContactsVerification
	query := `SELECT ` + contactsColumns + ` FROM athlete_contacts_verification WHERE athlete_id = $1`
	if err := r.db.GetContext(ctx, &c, query, athleteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contacts: %w", err)
	}
	return &c, nil
}

func (r *repository) GetSports(ctx context.Context, athleteID uuid.UUID) (*SportsExperience, error) {
	var s SportsExperience
	query := `SELECT ` + sportsColumns + ` FROM athlete_sports_experience WHERE athlete_id = $1`
	if err := r.db.GetContext(ctx, &s, query, athleteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sports experience: %w", err)
	}
	return &s, nil
}

func (r *repository) GetPhysical(ctx context.Context, athleteID uuid.UUID) (*PhysicalMetrics, error) {
	var p PhysicalMetrics
	query := `SELECT ` + physicalColumns + ` FROM athlete_physical_metrics WHERE athlete_id = $1`
	if err := r.db.GetContext(ctx, &p, query, athleteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get physical metrics: %w", err)
	}
	return &p, nil
}

func (r *repository) ListAwards(ctx context.Context, athleteID uuid.UUID) ([]*Award, error) {
	var awards []*Award
	query := `SELECT ` + awardColumns + ` FROM athlete_awards WHERE athlete_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &awards, query, athleteID); err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	return awards, nil
}

func (r *repository) ListMedia(ctx context.Context, athleteID uuid.UUID) ([]*MediaItem, error) {
	var items []*MediaItem
	query := `SELECT ` + mediaColumns + ` FROM media_items WHERE athlete_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &items, query, athleteID); err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return items, nil
}

func (r *repository) ListGameMeta(ctx context.Context, athleteID uuid.UUID) ([]*GameMeta, error) {
	var meta []*GameMeta
	query := `
		SELECT g.media_item_id, g.match_date, g.opponent, g.competition, g.season, g.team_level
		FROM media_game_meta g
		JOIN media_items m ON m.id = g.media_item_id
		WHERE m.athlete_id = $1
	`
	if err := r.db.SelectContext(ctx, &meta, query, athleteID); err != nil {
		return nil, fmt.Errorf("list game meta: %w", err)
	}
	return meta, nil
}

func (r *repository) ListSocial(ctx context.Context, athleteID uuid.UUID) ([]*SocialProfile, error) {
	var profiles []*SocialProfile
	query := `SELECT ` + socialColumns + ` FROM athlete_social_profiles WHERE athlete_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &profiles, query, athleteID); err != nil {
		return nil, fmt.Errorf("list social profiles: %w", err)
	}
	return profiles, nil
}

func (r *repository) UpdateCompletion(ctx context.Context, id uuid.UUID, percentage int) error {
	query := `UPDATE athletes SET completion_percentage = $2, updated_at = NOW() WHERE id = $1`
	return r.execOne(ctx, "update completion", query, id, percentage)
}

func (r *repository) SetPublished(ctx context.Context, id uuid.UUID, published bool, percentage int) error {
	query := `
		UPDATE athletes
		SET is_published = $2,
			completion_percentage = $3,
			published_at = CASE WHEN $2 THEN COALESCE(published_at, NOW()) ELSE NULL END,
			updated_at = NOW()
		WHERE id = $1
	`
	return r.execOne(ctx, "set published", query, id, published, percentage)
}

func (r *repository) execOne(ctx context.Context, op, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return ErrAthleteNotFound
	}
	return nil
}

func (r *repository) ListAthleteIDs(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT id FROM athletes WHERE id > $1 ORDER BY id LIMIT $2`
	if err := r.db.SelectContext(ctx, &ids, query, after, limit); err != nil {
		return nil, fmt.Errorf("list athlete ids: %w", err)
	}
	return ids, nil
}

func (r *repository) GetMediaItem(ctx context.Context, id uuid.UUID) (*MediaItem, error) {
	var item MediaItem
	query := `SELECT ` + mediaColumns + ` FROM media_items WHERE id = $1`
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("get media item: %w", err)
	}
	return &item, nil
}

// DeleteMediaItem removes the row; game meta goes with it via ON DELETE CASCADE
func (r *repository) DeleteMediaItem(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media item: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrMediaNotFound
	}
	return nil
}

func (r *repository) SetReviewStatus(ctx context.Context, athleteID uuid.UUID, status string) error {
	query := `UPDATE athlete_contacts_verification SET review_status = $2, updated_at = NOW() WHERE athlete_id = $1`
	result, err := r.db.ExecContext(ctx, query, athleteID, status)
	if err != nil {
		return fmt.Errorf("set review status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrContactsNotFound
	}
	return nil
}

func (r *repository) CountContactUnlocks(ctx context.Context, athleteID uuid.UUID) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM contact_unlocks WHERE athlete_id = $1`
	if err := r.db.GetContext(ctx, &n, query, athleteID); err != nil {
		return 0, fmt.Errorf("count contact unlocks: %w", err)
	}
	return n, nil
}

func (r *repository) CountMessagingOperators(ctx context.Context, athleteID uuid.UUID) (int, error) {
	var n int
	query := `SELECT COUNT(DISTINCT operator_id) FROM conversations WHERE athlete_id = $1`
	if err := r.db.GetContext(ctx, &n, query, athleteID); err != nil {
		return 0, fmt.Errorf("count messaging operators: %w", err)
	}
	return n, nil
}

func (r *repository) ProfileViews(ctx context.Context, athleteID uuid.UUID) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT profile_views FROM athletes WHERE id = $1`, athleteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAthleteNotFound
		}
		return 0, fmt.Errorf("get profile views: %w", err)
	}
	return n, nil
}

func (r *repository) IncrementProfileViews(ctx context.Context, athleteID uuid.UUID) (int, error) {
	var n int
	query := `UPDATE athletes SET profile_views = profile_views + 1 WHERE id = $1 RETURNING profile_views`
	if err := r.db.GetContext(ctx, &n, query, athleteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAthleteNotFound
		}
		return 0, fmt.Errorf("increment profile views: %w", err)
	}
	return n, nil
}
