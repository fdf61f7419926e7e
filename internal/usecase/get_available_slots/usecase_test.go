package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	storageSettings "github.com/m04kA/BMP-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/BMP-BookingService/internal/integrations/directoryservice"
	"github.com/m04kA/BMP-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetForDay(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeBlockRepo struct {
	blocks []*domain.Block
	err    error
}

func (f *fakeBlockRepo) GetOverlappingDay(_ context.Context, _ int64, _ time.Time) ([]*domain.Block, error) {
	return f.blocks, f.err
}

type fakeSettingsRepo struct {
	settings *domain.BusinessBookingSettings
	err      error
}

func (f *fakeSettingsRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessBookingSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type fakeDirectoryClient struct {
	business    *directoryservice.Business
	businessErr error
	service     *directoryservice.Service
	serviceErr  error
	hours       *domain.OperatingHours
	hoursErr    error
}

func (f *fakeDirectoryClient) GetBusiness(_ context.Context, _ int64) (*directoryservice.Business, error) {
	return f.business, f.businessErr
}

func (f *fakeDirectoryClient) GetService(_ context.Context, _, _ int64) (*directoryservice.Service, error) {
	return f.service, f.serviceErr
}

func (f *fakeDirectoryClient) GetOperatingHours(_ context.Context, _ int64, _ time.Weekday) (*domain.OperatingHours, error) {
	return f.hours, f.hoursErr
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func mustTimeString(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func testDirectoryClient(t *testing.T, durationMinutes int, open, close string) *fakeDirectoryClient {
	t.Helper()
	return &fakeDirectoryClient{
		business: &directoryservice.Business{ID: 1, Name: "Test Business", IsActive: true},
		service:  &directoryservice.Service{ID: 10, BusinessID: 1, Name: "Haircut", DurationMinutes: durationMinutes},
		hours: &domain.OperatingHours{
			BusinessID: 1,
			DayOfWeek:  time.Saturday,
			OpenTime:   mustTimeString(t, open),
			CloseTime:  mustTimeString(t, close),
		},
	}
}

// saturday 2025-11-01
var testDate = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

func newTestUseCase(
	bookings *fakeBookingRepo,
	blocks *fakeBlockRepo,
	settings *fakeSettingsRepo,
	directory *fakeDirectoryClient,
) *UseCase {
	return NewUseCase(bookings, blocks, settings, directory, noopLogger{})
}

func TestExecute_FullOpenDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeBlockRepo{},
		&fakeSettingsRepo{},
		testDirectoryClient(t, 60, "09:00", "18:00"),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 17)

	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, int64(1), resp.BusinessID)
	assert.Equal(t, int64(10), resp.ServiceID)
	assert.Equal(t, time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC), resp.Slots[0].StartsAt)
	assert.Equal(t, time.Date(2025, 11, 1, 17, 0, 0, 0, time.UTC), resp.Slots[16].StartsAt)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
}

func TestExecute_ActiveBookingExcludesSlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{{
			ID:              1,
			BusinessID:      1,
			ServiceID:       10,
			BookingDate:     testDate,
			StartTime:       mustTimeString(t, "10:00"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		}}},
		&fakeBlockRepo{},
		&fakeSettingsRepo{},
		testDirectoryClient(t, 60, "09:00", "18:00"),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 14)

	starts := make(map[time.Time]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		starts[s.StartsAt] = true
	}
	assert.False(t, starts[time.Date(2025, 11, 1, 9, 30, 0, 0, time.UTC)])
	assert.False(t, starts[time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)])
	assert.False(t, starts[time.Date(2025, 11, 1, 10, 30, 0, 0, time.UTC)])
	assert.True(t, starts[time.Date(2025, 11, 1, 11, 0, 0, 0, time.UTC)])
}

func TestExecute_CancelledBookingDoesNotOccupySlot(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{{
			ID:              1,
			BusinessID:      1,
			ServiceID:       10,
			BookingDate:     testDate,
			StartTime:       mustTimeString(t, "10:00"),
			DurationMinutes: 60,
			Status:          domain.StatusCancelledByUser,
		}}},
		&fakeBlockRepo{},
		&fakeSettingsRepo{},
		testDirectoryClient(t, 60, "09:00", "18:00"),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 17)
}

func TestExecute_BlockExcludesSlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeBlockRepo{blocks: []*domain.Block{{
			ID:         1,
			BusinessID: 1,
			StartsAt:   time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC),
			EndsAt:     time.Date(2025, 11, 1, 13, 0, 0, 0, time.UTC),
		}}},
		&fakeSettingsRepo{},
		testDirectoryClient(t, 60, "09:00", "18:00"),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	starts := make(map[time.Time]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		starts[s.StartsAt] = true
	}
	assert.True(t, starts[time.Date(2025, 11, 1, 11, 0, 0, 0, time.UTC)])
	assert.False(t, starts[time.Date(2025, 11, 1, 11, 30, 0, 0, time.UTC)])
	assert.False(t, starts[time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)])
	assert.False(t, starts[time.Date(2025, 11, 1, 12, 30, 0, 0, time.UTC)])
	assert.True(t, starts[time.Date(2025, 11, 1, 13, 0, 0, 0, time.UTC)])
}

func TestExecute_CrossMidnightBlockCoversMorning(t *testing.T) {
	// Блок начался накануне вечером и заканчивается утром запрошенного дня
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeBlockRepo{blocks: []*domain.Block{{
			ID:         1,
			BusinessID: 1,
			StartsAt:   time.Date(2025, 10, 31, 22, 0, 0, 0, time.UTC),
			EndsAt:     time.Date(2025, 11, 1, 11, 0, 0, 0, time.UTC),
		}}},
		&fakeSettingsRepo{},
		testDirectoryClient(t, 60, "09:00", "18:00"),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, time.Date(2025, 11, 1, 11, 0, 0, 0, time.UTC), resp.Slots[0].StartsAt)
}

func TestExecute_ClosedDayReturnsEmptyList(t *testing.T) {
	client := testDirectoryClient(t, 60, "09:00", "18:00")
	client.hours.IsClosed = true

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeBlockRepo{}, &fakeSettingsRepo{}, client)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	require.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoHoursRecordUsesDefaults(t *testing.T) {
	client := testDirectoryClient(t, 60, "09:00", "18:00")
	client.hours = nil

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeBlockRepo{}, &fakeSettingsRepo{}, client)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 17)

	// Для воскресенья без записи бизнес считается закрытым
	sunday := testDate.AddDate(0, 0, 1)
	resp, err = uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_CustomGranularityFromSettings(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeBlockRepo{},
		&fakeSettingsRepo{settings: &domain.BusinessBookingSettings{
			BusinessID:             1,
			SlotGranularityMinutes: 60,
		}},
		testDirectoryClient(t, 60, "09:00", "18:00"),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 9)
}

func TestExecute_MissingSettingsFallBackToDefaults(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeBlockRepo{},
		&fakeSettingsRepo{err: storageSettings.ErrSettingsNotFound},
		testDirectoryClient(t, 60, "09:00", "18:00"),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 17)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeBlockRepo{},
		&fakeSettingsRepo{},
		&fakeDirectoryClient{businessErr: directoryservice.ErrBusinessNotFound},
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	client := testDirectoryClient(t, 60, "09:00", "18:00")
	client.service = nil
	client.serviceErr = directoryservice.ErrServiceNotFound

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeBlockRepo{}, &fakeSettingsRepo{}, client)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeBlockRepo{},
		&fakeSettingsRepo{},
		testDirectoryClient(t, 60, "09:00", "18:00"),
	)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero business id", &Request{BusinessID: 0, ServiceID: 10, Date: testDate}},
		{"negative service id", &Request{BusinessID: 1, ServiceID: -1, Date: testDate}},
		{"zero date", &Request{BusinessID: 1, ServiceID: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_InvalidServiceDuration(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeBlockRepo{},
		&fakeSettingsRepo{},
		testDirectoryClient(t, 0, "09:00", "18:00"),
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
