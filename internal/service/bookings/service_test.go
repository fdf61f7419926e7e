package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/BMP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/BMP-BookingService/internal/integrations/directoryservice"
	"github.com/m04kA/BMP-BookingService/internal/service/bookings/models"
	"github.com/m04kA/BMP-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking      *domain.Booking
	bookings     []*domain.Booking
	getErr       error
	cancelled    []domain.BookingStatus
	cancelReason string
	updated      []domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updated = append(f.updated, status)
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, status domain.BookingStatus, reason string) error {
	f.cancelled = append(f.cancelled, status)
	f.cancelReason = reason
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

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              42,
		UserID:          100,
		BusinessID:      1,
		ServiceID:       10,
		BookingDate:     time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Haircut",
		ServicePrice:    1500,
	}
}

func TestGetByID_Owner(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, managedBusiness(), noopLogger{})

	resp, err := svc.GetByID(context.Background(), 42, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "2025-11-01", resp.BookingDate)
}

func TestGetByID_Manager(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	resp, err := svc.GetByID(context.Background(), 42, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestGetByID_Stranger(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 777)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	svc := NewService(repo, managedBusiness(), noopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, managedBusiness(), noopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Status: ptr.Ptr("definitely-not-a-status"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBusinessBookings_ManagerOnly(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{confirmedBooking()}}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	resp, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID:     500,
		BusinessID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID:     777,
		BusinessID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_ByOwner(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, managedBusiness(), noopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID:             100,
		CancellationReason: "changed plans",
	})
	require.NoError(t, err)
	require.Len(t, repo.cancelled, 1)
	assert.Equal(t, domain.StatusCancelledByUser, repo.cancelled[0])
	assert.Equal(t, "changed plans", repo.cancelReason)
}

func TestCancel_ByManager(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 500})
	require.NoError(t, err)
	require.Len(t, repo.cancelled, 1)
	assert.Equal(t, domain.StatusCancelledByBusiness, repo.cancelled[0])
}

func TestCancel_ByStranger(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 777})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_CompletedBooking(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCompleted
	repo := &fakeBookingRepo{booking: booking}
	svc := NewService(repo, managedBusiness(), noopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 100})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_ManagerOnly(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 500,
		Status: string(domain.StatusCompleted),
	})
	require.NoError(t, err)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, domain.StatusCompleted, repo.updated[0])

	err = svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 777,
		Status: string(domain.StatusCompleted),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := NewService(repo, managedBusiness(500), noopLogger{})

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 500,
		Status: "paused",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
