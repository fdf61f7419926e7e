package directoryservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BMP-BookingService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, noopLogger{})
}

func TestGetBusiness(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/businesses/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1, "name": "Test Business", "is_active": true, "manager_ids": [200, 201]}`))
	})

	business, err := client.GetBusiness(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), business.ID)
	assert.Equal(t, []int64{200, 201}, business.ManagerIDs)
}

func TestGetBusiness_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code": 404, "message": "not found"}`))
	})

	_, err := client.GetBusiness(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestGetService_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetService(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetOperatingHours(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/businesses/1/operating-hours", r.URL.Path)
		assert.Equal(t, "6", r.URL.Query().Get("dayOfWeek"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"business_id": 1, "day_of_week": 6, "is_closed": false, "open_time": "09:00", "close_time": "18:00"}`))
	})

	hours, err := client.GetOperatingHours(context.Background(), 1, time.Saturday)
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, hours.DayOfWeek)
	assert.Equal(t, types.TimeString("09:00"), hours.OpenTime)
	assert.Equal(t, types.TimeString("18:00"), hours.CloseTime)
}

func TestGetOperatingHours_NoRecordReturnsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	hours, err := client.GetOperatingHours(context.Background(), 1, time.Sunday)
	require.NoError(t, err)
	assert.Nil(t, hours)
}

func TestGetOperatingHours_InvalidWindowRejected(t *testing.T) {
	// Окно с открытием позже закрытия не должно попадать в расчет доступности
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"business_id": 1, "day_of_week": 6, "is_closed": false, "open_time": "18:00", "close_time": "09:00"}`))
	})

	_, err := client.GetOperatingHours(context.Background(), 1, time.Saturday)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetOperatingHours_ClosedDaySkipsWindowCheck(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"business_id": 1, "day_of_week": 0, "is_closed": true}`))
	})

	hours, err := client.GetOperatingHours(context.Background(), 1, time.Sunday)
	require.NoError(t, err)
	assert.True(t, hours.IsClosed)
}
