package geolocate

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider() *Provider {
	return NewProvider(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleAt(lat, lon float64) entity.LocationSample {
	return entity.LocationSample{
		Coordinate: entity.Coordinate{Latitude: lat, Longitude: lon},
		CapturedAt: time.Now(),
	}
}

func TestRequestOnce_ReturnsCachedSample(t *testing.T) {
	p := newTestProvider()
	userID := uuid.New()

	p.Report(userID, sampleAt(28.6139, 77.2090))

	got, err := p.RequestOnce(context.Background(), userID, service.LocationOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 28.6139, got.Coordinate.Latitude, 1e-9)
}

func TestRequestOnce_RejectsStaleCache(t *testing.T) {
	p := newTestProvider()
	userID := uuid.New()

	stale := sampleAt(28.6139, 77.2090)
	stale.CapturedAt = time.Now().Add(-time.Hour)
	p.Report(userID, stale)

	_, err := p.RequestOnce(context.Background(), userID, service.LocationOptions{
		MaxCacheAge: time.Minute,
		Timeout:     50 * time.Millisecond,
	})
	require.Error(t, err)

	var locErr *service.LocationError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, service.LocationTimeout, locErr.Code)
}

func TestRequestOnce_WaitsForNextReport(t *testing.T) {
	p := newTestProvider()
	userID := uuid.New()

	go func() {
		time.Sleep(20 * time.Millisecond)
		p.Report(userID, sampleAt(19.0760, 72.8777))
	}()

	got, err := p.RequestOnce(context.Background(), userID, service.LocationOptions{Timeout: time.Second})
	require.NoError(t, err)
	assert.InDelta(t, 19.0760, got.Coordinate.Latitude, 1e-9)
}

func TestRequestOnce_FailsOnReportedError(t *testing.T) {
	p := newTestProvider()
	userID := uuid.New()

	go func() {
		time.Sleep(20 * time.Millisecond)
		p.ReportError(userID, &service.LocationError{Code: service.LocationPermissionDenied, Message: "denied"})
	}()

	_, err := p.RequestOnce(context.Background(), userID, service.LocationOptions{Timeout: time.Second})
	require.Error(t, err)

	var locErr *service.LocationError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, service.LocationPermissionDenied, locErr.Code)
}

func TestRequestOnce_ErrorInvalidatesCachedSample(t *testing.T) {
	p := newTestProvider()
	userID := uuid.New()

	p.Report(userID, sampleAt(28.6139, 77.2090))
	p.ReportError(userID, &service.LocationError{Code: service.LocationPermissionDenied, Message: "denied"})

	// The pre-error fix must not be served once positioning has failed.
	_, err := p.RequestOnce(context.Background(), userID, service.LocationOptions{})
	require.Error(t, err)

	var locErr *service.LocationError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, service.LocationPermissionDenied, locErr.Code)
}

func TestWatch_ReceivesEveryReport(t *testing.T) {
	p := newTestProvider()
	userID := uuid.New()

	var (
		mu      sync.Mutex
		samples []entity.LocationSample
	)
	sub, err := p.Watch(userID, service.LocationOptions{}, func(s entity.LocationSample) {
		mu.Lock()
		samples = append(samples, s)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer sub.Cancel()

	p.Report(userID, sampleAt(1, 1))
	p.Report(userID, sampleAt(2, 2))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, samples, 2)
	assert.InDelta(t, 2.0, samples[1].Coordinate.Latitude, 1e-9)
}

func TestWatch_NoCallbackAfterCancel(t *testing.T) {
	p := newTestProvider()
	userID := uuid.New()

	var calls int
	sub, err := p.Watch(userID, service.LocationOptions{}, func(entity.LocationSample) {
		calls++
	})
	require.NoError(t, err)

	p.Report(userID, sampleAt(1, 1))
	sub.Cancel()
	p.Report(userID, sampleAt(2, 2))

	assert.Equal(t, 1, calls)
}

func TestWatch_CancelIsIdempotent(t *testing.T) {
	p := newTestProvider()
	userID := uuid.New()

	sub, err := p.Watch(userID, service.LocationOptions{}, func(entity.LocationSample) {})
	require.NoError(t, err)

	sub.Cancel()
	assert.NotPanics(t, func() { sub.Cancel() })
}

func TestWatch_IsolatedPerUser(t *testing.T) {
	p := newTestProvider()
	alice := uuid.New()
	bob := uuid.New()

	var aliceCalls int
	sub, err := p.Watch(alice, service.LocationOptions{}, func(entity.LocationSample) {
		aliceCalls++
	})
	require.NoError(t, err)
	defer sub.Cancel()

	p.Report(bob, sampleAt(1, 1))
	assert.Zero(t, aliceCalls)
}

func TestLastError_ClearedByNextFix(t *testing.T) {
	p := newTestProvider()
	userID := uuid.New()

	assert.Nil(t, p.LastError(userID))

	p.ReportError(userID, &service.LocationError{Code: service.LocationPositionUnavailable, Message: "no signal"})
	require.NotNil(t, p.LastError(userID))

	p.Report(userID, sampleAt(1, 1))
	assert.Nil(t, p.LastError(userID))
}
