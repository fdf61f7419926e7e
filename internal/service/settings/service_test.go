package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/BMP-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/BMP-BookingService/internal/integrations/directoryservice"
	"github.com/m04kA/BMP-BookingService/internal/service/settings/models"
	"github.com/m04kA/BMP-BookingService/pkg/ptr"
)

type fakeSettingsRepo struct {
	settings *domain.BusinessBookingSettings
	getErr   error
	upserted *domain.BusinessBookingSettings
}

func (f *fakeSettingsRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessBookingSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *domain.BusinessBookingSettings) (*domain.BusinessBookingSettings, error) {
	saved := *s
	saved.ID = 3
	saved.UpdatedAt = time.Now()
	f.upserted = &saved
	return &saved, nil
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

func storedSettings() *domain.BusinessBookingSettings {
	return &domain.BusinessBookingSettings{
		ID:                      3,
		BusinessID:              1,
		SlotGranularityMinutes:  15,
		AdvanceBookingDays:      14,
		MinBookingNoticeMinutes: 120,
		UpdatedAt:               time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGet_ReturnsStoredSettings(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{settings: storedSettings()}, managedBusiness(500), noopLogger{})

	resp, err := svc.Get(context.Background(), &models.GetSettingsRequest{UserID: 500, BusinessID: 1})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.SlotGranularityMinutes)
	assert.Equal(t, 14, resp.AdvanceBookingDays)
	assert.Equal(t, 120, resp.MinBookingNoticeMinutes)
	assert.False(t, resp.IsDefault)
	require.NotNil(t, resp.UpdatedAt)
}

func TestGet_DefaultsWhenNotStored(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, managedBusiness(500), noopLogger{})

	resp, err := svc.Get(context.Background(), &models.GetSettingsRequest{UserID: 500, BusinessID: 1})
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultSlotGranularityMinutes, resp.SlotGranularityMinutes)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, resp.MinBookingNoticeMinutes)
	assert.Nil(t, resp.UpdatedAt)
}

func TestGet_ManagerOnly(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{settings: storedSettings()}, managedBusiness(500), noopLogger{})

	_, err := svc.Get(context.Background(), &models.GetSettingsRequest{UserID: 999, BusinessID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_PartialOverStored(t *testing.T) {
	repo := &fakeSettingsRepo{settings: storedSettings()}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:                 500,
		BusinessID:             1,
		SlotGranularityMinutes: ptr.Ptr(60),
	})
	require.NoError(t, err)

	// Обновлена только гранулярность, остальное сохранено из текущих настроек
	assert.Equal(t, 60, resp.SlotGranularityMinutes)
	assert.Equal(t, 14, resp.AdvanceBookingDays)
	assert.Equal(t, 120, resp.MinBookingNoticeMinutes)

	require.NotNil(t, repo.upserted)
	assert.Equal(t, 60, repo.upserted.SlotGranularityMinutes)
	assert.Equal(t, 14, repo.upserted.AdvanceBookingDays)
}

func TestUpdate_StartsFromDefaultsWhenNotStored(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:             500,
		BusinessID:         1,
		AdvanceBookingDays: ptr.Ptr(30),
	})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.AdvanceBookingDays)
	assert.Equal(t, domain.DefaultSlotGranularityMinutes, resp.SlotGranularityMinutes)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, resp.MinBookingNoticeMinutes)
}

func TestUpdate_InvalidGranularity(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, managedBusiness(500), noopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:                 500,
		BusinessID:             1,
		SlotGranularityMinutes: ptr.Ptr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_NegativeNoticeRejected(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, managedBusiness(500), noopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:                  500,
		BusinessID:              1,
		MinBookingNoticeMinutes: ptr.Ptr(-5),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_ManagerOnly(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:                 999,
		BusinessID:             1,
		SlotGranularityMinutes: ptr.Ptr(60),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.upserted)
}

func TestUpdate_BusinessNotFound(t *testing.T) {
	client := &fakeDirectoryClient{err: directoryservice.ErrBusinessNotFound}
	svc := NewService(&fakeSettingsRepo{}, client, noopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:                 500,
		BusinessID:             1,
		SlotGranularityMinutes: ptr.Ptr(60),
	})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
