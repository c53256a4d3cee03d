package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"yatra/config"
	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"
	"yatra/internal/errors"
	"yatra/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPlaces = []entity.Place{
	{
		ID:         "delhi-india-gate",
		Name:       "India Gate",
		Coordinate: entity.Coordinate{Latitude: 28.6129, Longitude: 77.2295},
		City:       "New Delhi",
		Category:   entity.CategoryAttraction,
	},
	{
		ID:         "delhi-red-fort",
		Name:       "Red Fort",
		Coordinate: entity.Coordinate{Latitude: 28.6562, Longitude: 77.2410},
		City:       "New Delhi",
		Category:   entity.CategoryAttraction,
	},
	{
		ID:         "delhi-karims",
		Name:       "Karim's",
		Coordinate: entity.Coordinate{Latitude: 28.6494, Longitude: 77.2336},
		City:       "New Delhi",
		Category:   entity.CategoryRestaurant,
	},
	{
		ID:         "delhi-imperial-hotel",
		Name:       "The Imperial",
		Coordinate: entity.Coordinate{Latitude: 28.6254, Longitude: 77.2180},
		City:       "New Delhi",
		Category:   entity.CategoryHotel,
	},
	{
		ID:         "agra-taj-mahal",
		Name:       "Taj Mahal",
		Coordinate: entity.Coordinate{Latitude: 27.1751, Longitude: 78.0421},
		City:       "Agra",
		Category:   entity.CategoryAttraction,
	},
}

var delhiSample = entity.LocationSample{
	Coordinate: entity.Coordinate{Latitude: 28.6139, Longitude: 77.2090},
	CapturedAt: time.Now(),
}

// fakeSubscription flips a flag on cancel.
type fakeSubscription struct {
	cancel func()
}

func (s *fakeSubscription) Cancel() { s.cancel() }

// fakeLocationProvider lets tests push samples into registered watchers.
type fakeLocationProvider struct {
	mu         sync.Mutex
	watchers   map[uuid.UUID]func(entity.LocationSample)
	sample     entity.LocationSample
	requestErr error
	lastErr    *service.LocationError
	cancels    int
	watchCalls int
	watchHook  func()
}

func newFakeLocationProvider() *fakeLocationProvider {
	return &fakeLocationProvider{watchers: make(map[uuid.UUID]func(entity.LocationSample))}
}

func (p *fakeLocationProvider) RequestOnce(_ context.Context, _ uuid.UUID, _ service.LocationOptions) (entity.LocationSample, error) {
	if p.requestErr != nil {
		return entity.LocationSample{}, p.requestErr
	}
	return p.sample, nil
}

func (p *fakeLocationProvider) Watch(userID uuid.UUID, _ service.LocationOptions, fn func(entity.LocationSample)) (service.Subscription, error) {
	p.mu.Lock()
	p.watchCalls++
	hook := p.watchHook
	p.watchHook = nil
	p.mu.Unlock()

	if hook != nil {
		hook()
	}

	p.mu.Lock()
	p.watchers[userID] = fn
	p.mu.Unlock()

	return &fakeSubscription{cancel: func() {
		p.mu.Lock()
		delete(p.watchers, userID)
		p.cancels++
		p.mu.Unlock()
	}}, nil
}

func (p *fakeLocationProvider) LastError(_ uuid.UUID) *service.LocationError {
	return p.lastErr
}

func (p *fakeLocationProvider) push(userID uuid.UUID, sample entity.LocationSample) {
	p.mu.Lock()
	fn := p.watchers[userID]
	p.mu.Unlock()

	if fn != nil {
		fn(sample)
	}
}

// fakePushDispatcher records every dispatched place ID.
type fakePushDispatcher struct {
	mu         sync.Mutex
	permission bool
	dispatched []string
}

func (d *fakePushDispatcher) RequestPermission(_ context.Context, _ uuid.UUID) bool {
	return d.permission
}

func (d *fakePushDispatcher) Dispatch(_ context.Context, _ uuid.UUID, place entity.NearbyPlace) {
	d.mu.Lock()
	d.dispatched = append(d.dispatched, place.ID)
	d.mu.Unlock()
}

func (d *fakePushDispatcher) DispatchBooking(_ context.Context, _ uuid.UUID, _ *entity.Booking) {}

func (d *fakePushDispatcher) ids() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.dispatched))
	copy(out, d.dispatched)
	return out
}

// fakeKVStore is an in-memory key-value store with optional write failure.
type fakeKVStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	putErr error
}

func newFakeKVStore() *fakeKVStore {
	return &fakeKVStore{data: make(map[string][]byte)}
}

func (s *fakeKVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[key]
	return raw, ok, nil
}

func (s *fakeKVStore) Put(_ context.Context, key string, value []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *fakeKVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

type proximityFixture struct {
	svc        usecase.ProximityUsecase
	provider   *fakeLocationProvider
	dispatcher *fakePushDispatcher
	store      *fakeKVStore
	userID     uuid.UUID
}

func newProximityFixture(t *testing.T) *proximityFixture {
	t.Helper()

	provider := newFakeLocationProvider()
	dispatcher := &fakePushDispatcher{permission: true}
	store := newFakeKVStore()

	cfg := &config.ProximityConfig{DefaultRadiusKm: 10, MinRadiusKm: 1, MaxRadiusKm: 50}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &proximityFixture{
		svc:        NewProximityService(cfg, provider, dispatcher, store, testPlaces, logger),
		provider:   provider,
		dispatcher: dispatcher,
		store:      store,
		userID:     uuid.New(),
	}
}

func TestProximityService_DefaultSettings(t *testing.T) {
	f := newProximityFixture(t)

	settings, err := f.svc.GetSettings(context.Background(), f.userID)
	require.NoError(t, err)

	assert.True(t, settings.Enabled)
	assert.Equal(t, 10.0, settings.RadiusKm)
	assert.True(t, settings.NotifyAttractions)
	assert.True(t, settings.NotifyRestaurants)
	assert.True(t, settings.NotifyHotels)
}

func TestProximityService_NoSampleYieldsEmptyList(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))

	state, err := f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, state.NearbyPlaces)
	assert.True(t, state.LocationLoading)
	assert.Empty(t, f.dispatcher.ids())
}

func TestProximityService_NearbyFilteredByRadiusAndSorted(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	f.provider.push(f.userID, delhiSample)

	state, err := f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)

	// The Taj Mahal is ~180 km away and must not appear.
	ids := make([]string, 0, len(state.NearbyPlaces))
	for _, p := range state.NearbyPlaces {
		ids = append(ids, p.ID)
	}
	assert.NotContains(t, ids, "agra-taj-mahal")
	require.Len(t, state.NearbyPlaces, 4)

	// Ascending distance order.
	for i := 1; i < len(state.NearbyPlaces); i++ {
		assert.LessOrEqual(t, state.NearbyPlaces[i-1].DistanceKm, state.NearbyPlaces[i].DistanceKm)
	}

	assert.False(t, state.LocationLoading)
	require.NotNil(t, state.Latitude)
	assert.InDelta(t, delhiSample.Coordinate.Latitude, *state.Latitude, 1e-9)
}

func TestProximityService_DisabledSettingsYieldEmptyList(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	disabled := false
	_, err := f.svc.UpdateSettings(ctx, f.userID, entity.NotificationSettingsPatch{Enabled: &disabled})
	require.NoError(t, err)

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	f.provider.push(f.userID, delhiSample)

	state, err := f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, state.NearbyPlaces)
	assert.Empty(t, f.dispatcher.ids())
}

func TestProximityService_CategoryFilter(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	off := false
	_, err := f.svc.UpdateSettings(ctx, f.userID, entity.NotificationSettingsPatch{
		NotifyRestaurants: &off,
		NotifyHotels:      &off,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	f.provider.push(f.userID, delhiSample)

	state, err := f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	for _, p := range state.NearbyPlaces {
		assert.Equal(t, entity.CategoryAttraction, p.Category)
	}
	require.Len(t, state.NearbyPlaces, 2)
}

func TestProximityService_DispatchAtMostOncePerPlace(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	f.provider.push(f.userID, delhiSample)
	first := len(f.dispatcher.ids())
	require.Equal(t, 4, first)

	// Same position again: everything already notified.
	f.provider.push(f.userID, delhiSample)
	assert.Len(t, f.dispatcher.ids(), first)
}

func TestProximityService_NotifiedSetSurvivesRestart(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	f.provider.push(f.userID, delhiSample)
	require.Len(t, f.dispatcher.ids(), 4)

	// Rebuild the engine over the same store.
	cfg := &config.ProximityConfig{DefaultRadiusKm: 10, MinRadiusKm: 1, MaxRadiusKm: 50}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider2 := newFakeLocationProvider()
	dispatcher2 := &fakePushDispatcher{permission: true}
	svc2 := NewProximityService(cfg, provider2, dispatcher2, f.store, testPlaces, logger)

	require.NoError(t, svc2.StartTracking(ctx, f.userID))
	provider2.push(f.userID, delhiSample)
	assert.Empty(t, dispatcher2.ids())
}

func TestProximityService_ClearNotifiedPlacesReenablesDispatch(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	f.provider.push(f.userID, delhiSample)
	require.Len(t, f.dispatcher.ids(), 4)

	require.NoError(t, f.svc.ClearNotifiedPlaces(ctx, f.userID))

	f.provider.push(f.userID, delhiSample)
	assert.Len(t, f.dispatcher.ids(), 8)
}

func TestProximityService_FullReplaceOnMove(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	f.provider.push(f.userID, delhiSample)

	state, err := f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, state.NearbyPlaces, 4)

	// Move to Agra: the Delhi entries must vanish, not accumulate.
	f.provider.push(f.userID, entity.LocationSample{
		Coordinate: entity.Coordinate{Latitude: 27.1740, Longitude: 78.0420},
		CapturedAt: time.Now(),
	})

	state, err = f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, state.NearbyPlaces, 1)
	assert.Equal(t, "agra-taj-mahal", state.NearbyPlaces[0].ID)
}

func TestProximityService_UpdateSettingsClampsRadius(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		radius float64
		want   float64
	}{
		{name: "below minimum", radius: 0.2, want: 1},
		{name: "above maximum", radius: 500, want: 50},
		{name: "within range", radius: 25, want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := f.svc.UpdateSettings(ctx, f.userID, entity.NotificationSettingsPatch{RadiusKm: &tt.radius})
			require.NoError(t, err)
			assert.Equal(t, tt.want, settings.RadiusKm)
		})
	}
}

func TestProximityService_UpdateSettingsRecomputes(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	f.provider.push(f.userID, delhiSample)

	state, err := f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, state.NearbyPlaces, 4)

	// Shrinking the radius to 2 km keeps only the closest entries.
	radius := 2.0
	_, err = f.svc.UpdateSettings(ctx, f.userID, entity.NotificationSettingsPatch{RadiusKm: &radius})
	require.NoError(t, err)

	state, err = f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	for _, p := range state.NearbyPlaces {
		assert.LessOrEqual(t, p.DistanceKm, 2.0)
	}
	assert.Less(t, len(state.NearbyPlaces), 4)
}

func TestProximityService_StopTrackingCancelsWatchAndClearsState(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	f.provider.push(f.userID, delhiSample)
	require.NoError(t, f.svc.StopTracking(ctx, f.userID))

	assert.Equal(t, 1, f.provider.cancels)

	state, err := f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, state.NearbyPlaces)
	assert.Nil(t, state.Latitude)

	// Samples after cancel must not resurrect the list.
	before := len(f.dispatcher.ids())
	f.provider.push(f.userID, delhiSample)
	assert.Len(t, f.dispatcher.ids(), before)
}

func TestProximityService_StartTrackingIdempotent(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	require.NoError(t, f.svc.StartTracking(ctx, f.userID))

	f.provider.push(f.userID, delhiSample)
	assert.Len(t, f.dispatcher.ids(), 4)
}

func TestProximityService_NoPermissionDefersDispatchAndRecording(t *testing.T) {
	f := newProximityFixture(t)
	f.dispatcher.permission = false
	ctx := context.Background()

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	f.provider.push(f.userID, delhiSample)

	// The nearby view is still computed, but nothing is dispatched and
	// nothing enters the notified set.
	state, err := f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	assert.Len(t, state.NearbyPlaces, 4)
	assert.Empty(t, f.dispatcher.ids())

	_, found, err := f.store.Get(ctx, notifiedKeyPrefix+f.userID.String())
	require.NoError(t, err)
	assert.False(t, found)

	// Once a push-enabled device registers, the same position notifies.
	f.dispatcher.permission = true
	f.provider.push(f.userID, delhiSample)
	assert.Len(t, f.dispatcher.ids(), 4)
}

func TestProximityService_ConcurrentStartRegistersOneWatch(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	// Re-enter StartTracking while the first call is still registering
	// its watch: the second call must not register another one.
	f.provider.watchHook = func() {
		require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	}

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))
	assert.Equal(t, 1, f.provider.watchCalls)

	f.provider.push(f.userID, delhiSample)
	assert.Len(t, f.dispatcher.ids(), 4)
}

func TestProximityService_RefreshLocation(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	f.provider.sample = delhiSample
	require.NoError(t, f.svc.RefreshLocation(ctx, f.userID))

	state, err := f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, state.NearbyPlaces, 4)
	assert.False(t, state.LocationLoading)
}

func TestProximityService_LocationErrorSurfacedAsState(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	locErr := &service.LocationError{Code: service.LocationPermissionDenied, Message: "denied"}
	f.provider.requestErr = locErr
	f.provider.lastErr = locErr

	// Positioning failures do not bubble up as errors.
	require.NoError(t, f.svc.RefreshLocation(ctx, f.userID))

	state, err := f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	require.NotNil(t, state.LocationError)
	assert.Equal(t, service.LocationPermissionDenied, state.LocationError.Code)
	assert.False(t, state.LocationLoading)
	assert.Empty(t, state.NearbyPlaces)
}

func TestProximityService_NoDispatchWhenPersistFails(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	// Prime settings so the failing store is hit only by the notified set.
	_, err := f.svc.GetSettings(ctx, f.userID)
	require.NoError(t, err)

	require.NoError(t, f.svc.StartTracking(ctx, f.userID))

	f.store.putErr = errors.New("disk full")
	f.provider.push(f.userID, delhiSample)

	// Persisting the notified set failed, so nothing may be dispatched.
	assert.Empty(t, f.dispatcher.ids())
}

func TestProximityService_PermissionReflectedInState(t *testing.T) {
	f := newProximityFixture(t)
	ctx := context.Background()

	f.dispatcher.permission = false
	state, err := f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	assert.False(t, state.PermissionGranted)

	f.dispatcher.permission = true
	state, err = f.svc.GetState(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, state.PermissionGranted)
}
