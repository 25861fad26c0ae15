package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hirebase/jobboard/internal/domain/model"
	apperrors "github.com/hirebase/jobboard/internal/errors"
	"github.com/hirebase/jobboard/internal/mocks"
)

const testJobID = "job-123"

func newJobService(t *testing.T) (*mocks.MockJobRepository, *JobService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockJobRepository(ctrl)
	service := MustNewJobService(JobServiceOptions{Repo: repo})
	return repo, service
}

func TestNewJobService_RequiresRepo(t *testing.T) {
	_, err := NewJobService(JobServiceOptions{})
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewJobService(JobServiceOptions{}) })
}

func TestJobService_Create(t *testing.T) {
	repo, service := newJobService(t)
	ctx := context.Background()

	req := &model.CreateJobRequest{Title: "Engineer", Company: "Acme", Description: "Do things."}
	want := &model.Job{ID: testJobID, Title: "Engineer", Company: "Acme", CreatedAt: time.Now()}

	repo.EXPECT().Create(ctx, req).Return(want, nil)

	got, err := service.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJobService_GetByID_NotFound(t *testing.T) {
	repo, service := newJobService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, "missing").Return(nil, apperrors.NotFound("Job not found"))

	_, err := service.GetByID(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err), "expected NotFound, got %v", err)
}

func TestJobService_List(t *testing.T) {
	repo, service := newJobService(t)
	ctx := context.Background()

	want := []*model.Job{
		{ID: "b", Title: "Newer"},
		{ID: "a", Title: "Older"},
	}
	repo.EXPECT().List(ctx).Return(want, nil)

	got, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJobService_Delete(t *testing.T) {
	repo, service := newJobService(t)
	ctx := context.Background()

	repo.EXPECT().Delete(ctx, testJobID).Return(int64(1), nil)

	affected, err := service.Delete(ctx, testJobID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestJobService_Delete_MissingIsZeroRows(t *testing.T) {
	repo, service := newJobService(t)
	ctx := context.Background()

	repo.EXPECT().Delete(ctx, "gone").Return(int64(0), nil)

	affected, err := service.Delete(ctx, "gone")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestJobService_Delete_EmptyID(t *testing.T) {
	_, service := newJobService(t)

	_, err := service.Delete(context.Background(), "")
	assert.Error(t, err)
}

func TestJobService_DeleteMany_DeduplicatesInput(t *testing.T) {
	repo, service := newJobService(t)
	ctx := context.Background()

	repo.EXPECT().DeleteMany(ctx, []string{"a", "b"}).Return(int64(2), nil)

	affected, err := service.DeleteMany(ctx, []string{"a", "", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
}

func TestJobService_DeleteMany_EmptyInput(t *testing.T) {
	_, service := newJobService(t)
	ctx := context.Background()

	affected, err := service.DeleteMany(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = service.DeleteMany(ctx, []string{"", ""})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
