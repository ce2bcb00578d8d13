package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutline/scoutline-api/internal/domain/athlete"
	"github.com/scoutline/scoutline-api/internal/domain/completion"
)

type fakeService struct {
	outcomes []athlete.RecomputeOutcome
	dryRun   bool
	batch    int
	single   uuid.UUID
}

func (f *fakeService) Completion(_ context.Context, id uuid.UUID) (*athlete.CompletionView, error) {
	if id == uuid.Nil {
		return nil, athlete.ErrAthleteNotFound
	}
	return &athlete.CompletionView{
		Result:           completion.Result{Completion: 60},
		SectionsComplete: 2,
		PublishThreshold: 70,
	}, nil
}

func (f *fakeService) RecomputeOne(_ context.Context, id uuid.UUID, dryRun bool) athlete.RecomputeOutcome {
	f.single = id
	f.dryRun = dryRun
	return athlete.RecomputeOutcome{AthleteID: id, Completion: 80}
}

func (f *fakeService) RecomputeAll(_ context.Context, opts athlete.RecomputeOptions, fn func(athlete.RecomputeOutcome)) (int, error) {
	f.batch = opts.Batch
	f.dryRun = opts.DryRun
	for _, o := range f.outcomes {
		fn(o)
	}
	return len(f.outcomes), nil
}

func run(t *testing.T, svc *fakeService, args ...string) (string, string, error) {
	t.Helper()
	closed := false
	root := newRootCmd(func(context.Context) (completionService, func(), error) {
		return svc, func() { closed = true }, nil
	})
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		assert.True(t, closed)
	}
	return stdout.String(), stderr.String(), err
}

func TestShow(t *testing.T) {
	out, _, err := run(t, &fakeService{}, "show", uuid.NewString())
	require.NoError(t, err)
	assert.Contains(t, out, `"completion": 60`)
	assert.Contains(t, out, `"publish_threshold": 70`)

	_, _, err = run(t, &fakeService{}, "show", "nope")
	assert.Error(t, err)
}

func TestRecomputeSingle(t *testing.T) {
	svc := &fakeService{}
	id := uuid.New()

	out, _, err := run(t, svc, "recompute", "--athlete", id.String(), "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, id, svc.single)
	assert.True(t, svc.dryRun)
	assert.Contains(t, out, id.String()+"\tnone -> 80")
	assert.Contains(t, out, "processed 1, changed 1, failed 0 (dry run, nothing written)")
}

func TestRecomputeAllReportsFailures(t *testing.T) {
	sixty := 60
	svc := &fakeService{outcomes: []athlete.RecomputeOutcome{
		{AthleteID: uuid.New(), Previous: &sixty, Completion: 60},
		{AthleteID: uuid.New(), Previous: &sixty, Completion: 70},
		{AthleteID: uuid.New(), Err: athlete.ErrAthleteNotFound},
	}}

	out, errOut, err := run(t, svc, "recompute", "--batch", "50")
	assert.ErrorIs(t, err, errRecomputeFailed)
	assert.Equal(t, 50, svc.batch)
	assert.False(t, svc.dryRun)
	assert.Contains(t, out, "60 -> 70")
	assert.Contains(t, out, "processed 3, changed 1, failed 1")
	assert.Contains(t, errOut, "athlete not found")
}

func TestRecomputeNilAthleteIsSingle(t *testing.T) {
	svc := &fakeService{single: uuid.New()}

	out, _, err := run(t, svc, "recompute", "--athlete", uuid.Nil.String())
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, svc.single)
	assert.Zero(t, svc.batch, "full recompute must not run")
	assert.Contains(t, out, "processed 1,")

	_, _, err = run(t, &fakeService{}, "recompute", "--athlete", "")
	assert.Error(t, err)
}
