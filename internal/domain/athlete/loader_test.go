package athlete

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutline/scoutline-api/internal/domain/completion"
)

func TestLoadMapsRowsIntoSnapshot(t *testing.T) {
	repo := newMemRepo()
	id := repo.seedComplete(uuid.New())
	loader := NewSnapshotLoader(repo)

	snap, a, err := loader.Load(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, a.ID)
	require.NotNil(t, snap.Athlete.Phone)
	assert.Nil(t, snap.Athlete.CurrentStep)
	assert.Nil(t, snap.Athlete.CompletionPercentage)
	assert.Equal(t, []string{"EU"}, snap.Sports.PreferredRegions)
	assert.False(t, *snap.Sports.SeekingTeam)

	// derived flags are set by the loader
	assert.True(t, snap.Sports.HasContract)
	assert.True(t, snap.Sports.HasRepresentation)
	assert.True(t, snap.Physical.HasGripStrength)
	assert.True(t, snap.Physical.HasSprintTime)
	assert.True(t, snap.Physical.HasAgilityTime)
	assert.True(t, snap.Awards[0].HasDate)
	assert.True(t, snap.Awards[0].HasEvidence)

	assert.Len(t, snap.Media, 11)
	assert.Len(t, snap.GameMeta, 2)
	assert.Equal(t, 100, completion.Compute(snap).Completion)
}

func TestSnapshotNullColumnsAreAbsent(t *testing.T) {
	rec := &Records{
		Athlete:  &Athlete{ID: uuid.New(), CompletionPercentage: sql.NullInt32{Int32: 60, Valid: true}},
		Contacts: &ContactsVerification{IDDocumentType: ns("Other")},
		Physical: &PhysicalMetrics{GripRightKg: nf(40)},
		Awards:   []*Award{{EvidenceMediaID: uuid.NullUUID{UUID: uuid.New(), Valid: true}}},
	}

	snap := rec.Snapshot()

	require.NotNil(t, snap.Athlete.CompletionPercentage)
	assert.Equal(t, 60, *snap.Athlete.CompletionPercentage)
	assert.Nil(t, snap.Contacts.IDDocumentNumber)
	assert.Nil(t, snap.Sports)
	assert.True(t, snap.Physical.HasGripStrength)
	assert.False(t, snap.Physical.HasSprintTime)
	assert.True(t, snap.Awards[0].HasEvidence)
	assert.False(t, snap.Awards[0].HasDate)

	// "other" document type adds the free-text item
	result := completion.Compute(snap)
	assert.Equal(t, 12, result.Breakdown.Contacts.Total)
}

func TestLoadUnknownAthlete(t *testing.T) {
	_, _, err := NewSnapshotLoader(newMemRepo()).Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAthleteNotFound)
}

func TestEngagementWithoutRedis(t *testing.T) {
	repo := newMemRepo()
	id := repo.seedAthlete(uuid.New())
	repo.athletes[id].ProfileViews = 21
	repo.unlocks[id] = 5
	repo.operators[id] = 2

	stats, err := NewStatsStore(nil, repo).Engagement(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, completion.EngagementStats{ProfileViews: 21, ContactUnlocks: 5, MessagingOperators: 2}, stats)
}

func TestViewsKey(t *testing.T) {
	id := uuid.MustParse("6f1c2a9e-0000-4000-8000-000000000001")
	assert.Equal(t, "athlete:6f1c2a9e-0000-4000-8000-000000000001:views", viewsKey(id))
}
