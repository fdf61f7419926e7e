package blocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	blockRepo "github.com/m04kA/BMP-BookingService/internal/infra/storage/block"
	"github.com/m04kA/BMP-BookingService/internal/integrations/directoryservice"
	"github.com/m04kA/BMP-BookingService/internal/service/blocks/models"
)

type fakeBlockRepo struct {
	block   *domain.Block
	blocks  []*domain.Block
	getErr  error
	deleted []int64
}

func (f *fakeBlockRepo) Create(_ context.Context, block *domain.Block) (*domain.Block, error) {
	created := *block
	created.ID = 7
	created.CreatedAt = time.Now()
	return &created, nil
}

func (f *fakeBlockRepo) GetByID(_ context.Context, _ int64) (*domain.Block, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.block, nil
}

func (f *fakeBlockRepo) GetByBusiness(_ context.Context, _ int64, _ *time.Time) ([]*domain.Block, error) {
	return f.blocks, nil
}

func (f *fakeBlockRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeDirectoryClient struct {
	business *directoryservice.Business
	err      error
}

func (f *fakeDirectoryClient) GetBusiness(_ context.Context, _ int64) (*directoryservice.Business, error) {
	return f.business, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func managedBusiness(managerIDs ...int64) *fakeDirectoryClient {
	return &fakeDirectoryClient{
		business: &directoryservice.Business{ID: 1, Name: "Test Business", IsActive: true, ManagerIDs: managerIDs},
	}
}

func validCreateRequest() *models.CreateBlockRequest {
	return &models.CreateBlockRequest{
		UserID:     500,
		BusinessID: 1,
		StartsAt:   time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC),
		EndsAt:     time.Date(2025, 11, 1, 13, 0, 0, 0, time.UTC),
		Reason:     "lunch",
	}
}

func TestCreate_Success(t *testing.T) {
	svc := NewService(&fakeBlockRepo{}, managedBusiness(500), noopLogger{})

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, int64(1), resp.BusinessID)
	assert.Equal(t, int64(500), resp.CreatedBy)
	assert.Equal(t, "lunch", resp.Reason)
}

func TestCreate_NotManager(t *testing.T) {
	svc := NewService(&fakeBlockRepo{}, managedBusiness(999), noopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_BusinessNotFound(t *testing.T) {
	svc := NewService(&fakeBlockRepo{}, &fakeDirectoryClient{err: directoryservice.ErrBusinessNotFound}, noopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestCreate_InvalidInterval(t *testing.T) {
	svc := NewService(&fakeBlockRepo{}, managedBusiness(500), noopLogger{})

	req := validCreateRequest()
	req.StartsAt, req.EndsAt = req.EndsAt, req.StartsAt

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_Success(t *testing.T) {
	repo := &fakeBlockRepo{block: &domain.Block{ID: 7, BusinessID: 1}}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	err := svc.Delete(context.Background(), 7, 500)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, repo.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(&fakeBlockRepo{getErr: blockRepo.ErrBlockNotFound}, managedBusiness(500), noopLogger{})

	err := svc.Delete(context.Background(), 7, 500)
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestDelete_NotManager(t *testing.T) {
	repo := &fakeBlockRepo{block: &domain.Block{ID: 7, BusinessID: 1}}
	svc := NewService(repo, managedBusiness(999), noopLogger{})

	err := svc.Delete(context.Background(), 7, 500)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deleted)
}

func TestList_Success(t *testing.T) {
	repo := &fakeBlockRepo{blocks: []*domain.Block{
		{ID: 1, BusinessID: 1},
		{ID: 2, BusinessID: 1},
	}}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	resp, err := svc.List(context.Background(), &models.ListBlocksRequest{UserID: 500, BusinessID: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Blocks, 2)
}

func TestList_NotManager(t *testing.T) {
	svc := NewService(&fakeBlockRepo{}, managedBusiness(999), noopLogger{})

	_, err := svc.List(context.Background(), &models.ListBlocksRequest{UserID: 500, BusinessID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
