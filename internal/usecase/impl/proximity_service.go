package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"yatra/config"
	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"
	"yatra/internal/errors"
	"yatra/internal/geo"
	"yatra/internal/usecase"

	"github.com/google/uuid"
)

const (
	settingsKeyPrefix = "notification_settings:"
	notifiedKeyPrefix = "notified_place_ids:"
)

// tracker is the per-user engine state. All fields are guarded by the
// service mutex.
type tracker struct {
	sub        service.Subscription
	starting   bool
	nearby     []entity.NearbyPlace
	lastSample *entity.LocationSample
	loading    bool
}

type proximityService struct {
	cfg        *config.ProximityConfig
	provider   service.LocationProvider
	dispatcher service.PushDispatcher
	store      service.KeyValueStore
	places     []entity.Place
	logger     *slog.Logger

	// mu serializes every state transition so concurrent location updates
	// and settings changes never interleave.
	mu       sync.Mutex
	trackers map[uuid.UUID]*tracker
}

// NewProximityService creates a new proximity engine over the given place
// catalog.
func NewProximityService(
	cfg *config.ProximityConfig,
	provider service.LocationProvider,
	dispatcher service.PushDispatcher,
	store service.KeyValueStore,
	places []entity.Place,
	logger *slog.Logger,
) usecase.ProximityUsecase {
	return &proximityService{
		cfg:        cfg,
		provider:   provider,
		dispatcher: dispatcher,
		store:      store,
		places:     places,
		logger:     logger,
		trackers:   make(map[uuid.UUID]*tracker),
	}
}

// StartTracking begins watching the user's location feed. Idempotent.
func (s *proximityService) StartTracking(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	if tr, ok := s.trackers[userID]; ok && (tr.sub != nil || tr.starting) {
		s.mu.Unlock()
		return nil
	}
	tr := s.ensureTrackerLocked(userID)
	// Claimed under the lock so a concurrent StartTracking cannot register
	// a second watch while this one is still being set up.
	tr.starting = true
	tr.loading = true
	s.mu.Unlock()

	sub, err := s.provider.Watch(userID, service.LocationOptions{HighAccuracy: true}, func(sample entity.LocationSample) {
		if err := s.onSample(context.Background(), userID, sample); err != nil {
			s.logger.Error("proximity transition failed",
				slog.String("user_id", userID.String()),
				slog.Any("error", err))
		}
	})
	if err != nil {
		s.mu.Lock()
		tr.starting = false
		tr.loading = false
		s.mu.Unlock()
		return errors.Wrap(err, "failed to start location watch")
	}

	s.mu.Lock()
	tr.sub = sub
	tr.starting = false
	s.mu.Unlock()

	return nil
}

// StopTracking cancels the watch and clears the nearby list.
func (s *proximityService) StopTracking(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	tr, ok := s.trackers[userID]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	sub := tr.sub
	tr.sub = nil
	tr.nearby = nil
	tr.lastSample = nil
	tr.loading = false
	s.mu.Unlock()

	// Cancel outside the mutex; the provider guarantees no callback fires
	// after Cancel returns, so no transition can race the cleared state.
	if sub != nil {
		sub.Cancel()
	}

	return nil
}

// RefreshLocation requests one fresh sample and recomputes from it.
func (s *proximityService) RefreshLocation(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	tr := s.ensureTrackerLocked(userID)
	tr.loading = true
	s.mu.Unlock()

	sample, err := s.provider.RequestOnce(ctx, userID, service.LocationOptions{HighAccuracy: true})
	if err != nil {
		s.mu.Lock()
		tr.loading = false
		s.mu.Unlock()

		// Positioning failures are surfaced through GetState, not raised.
		var locErr *service.LocationError
		if errors.As(err, &locErr) {
			return nil
		}
		return errors.Wrap(err, "failed to acquire location")
	}

	return s.onSample(ctx, userID, sample)
}

// GetState returns a snapshot of the user's proximity state.
func (s *proximityService) GetState(ctx context.Context, userID uuid.UUID) (*usecase.ProximityState, error) {
	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := &usecase.ProximityState{
		NearbyPlaces:      []entity.NearbyPlace{},
		Settings:          settings,
		PermissionGranted: s.dispatcher.RequestPermission(ctx, userID),
		LocationError:     s.provider.LastError(userID),
	}

	tr, ok := s.trackers[userID]
	if !ok {
		return state, nil
	}

	state.LocationLoading = tr.loading
	if len(tr.nearby) > 0 {
		state.NearbyPlaces = make([]entity.NearbyPlace, len(tr.nearby))
		copy(state.NearbyPlaces, tr.nearby)
	}
	if tr.lastSample != nil {
		lat := tr.lastSample.Coordinate.Latitude
		lon := tr.lastSample.Coordinate.Longitude
		state.Latitude = &lat
		state.Longitude = &lon
	}

	return state, nil
}

// GetSettings returns the user's settings, persisting defaults on first use.
func (s *proximityService) GetSettings(ctx context.Context, userID uuid.UUID) (entity.NotificationSettings, error) {
	return s.loadSettings(ctx, userID)
}

// UpdateSettings applies the patch, clamps the radius and recomputes the
// nearby list against the updated settings.
func (s *proximityService) UpdateSettings(
	ctx context.Context,
	userID uuid.UUID,
	patch entity.NotificationSettingsPatch,
) (entity.NotificationSettings, error) {
	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return entity.NotificationSettings{}, err
	}

	if patch.Enabled != nil {
		settings.Enabled = *patch.Enabled
	}
	if patch.RadiusKm != nil {
		settings.RadiusKm = s.clampRadius(*patch.RadiusKm)
	}
	if patch.NotifyAttractions != nil {
		settings.NotifyAttractions = *patch.NotifyAttractions
	}
	if patch.NotifyRestaurants != nil {
		settings.NotifyRestaurants = *patch.NotifyRestaurants
	}
	if patch.NotifyHotels != nil {
		settings.NotifyHotels = *patch.NotifyHotels
	}

	if err := s.saveSettings(ctx, userID, settings); err != nil {
		return entity.NotificationSettings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tr := s.ensureTrackerLocked(userID)
	if err := s.recomputeLocked(ctx, userID, tr, settings); err != nil {
		return entity.NotificationSettings{}, err
	}

	return settings, nil
}

// ClearNotifiedPlaces empties the notified-place set so every place becomes
// eligible for notification again.
func (s *proximityService) ClearNotifiedPlaces(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Delete(ctx, notifiedKeyPrefix+userID.String()); err != nil {
		return errors.Wrap(err, "failed to clear notified places")
	}

	return nil
}

// onSample records the sample and recomputes under the transition mutex.
func (s *proximityService) onSample(ctx context.Context, userID uuid.UUID, sample entity.LocationSample) error {
	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tr := s.ensureTrackerLocked(userID)
	tr.lastSample = &sample
	tr.loading = false

	return s.recomputeLocked(ctx, userID, tr, settings)
}

// recomputeLocked rebuilds the nearby list from the tracker's last sample and
// dispatches at most one notification per place. Caller must hold s.mu.
func (s *proximityService) recomputeLocked(
	ctx context.Context,
	userID uuid.UUID,
	tr *tracker,
	settings entity.NotificationSettings,
) error {
	if !settings.Enabled || tr.lastSample == nil {
		tr.nearby = nil
		return nil
	}

	center := tr.lastSample.Coordinate
	bound := geo.BoundAround(center, settings.RadiusKm)

	var nearby []entity.NearbyPlace
	for _, place := range s.places {
		if !settings.CategoryEnabled(place.Category) {
			continue
		}
		if !bound.Contains(place.Coordinate.Point()) {
			continue
		}
		distance := geo.DistanceKm(center, place.Coordinate)
		if distance > settings.RadiusKm {
			continue
		}
		nearby = append(nearby, entity.NearbyPlace{Place: place, DistanceKm: distance})
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	// Full replace: the previous list never leaks stale entries.
	tr.nearby = nearby

	return s.dispatchNewLocked(ctx, userID, nearby)
}

// dispatchNewLocked notifies places not yet in the user's notified set.
// The set is persisted before dispatching so a crash between the two steps
// loses the notification rather than duplicating it.
func (s *proximityService) dispatchNewLocked(ctx context.Context, userID uuid.UUID, nearby []entity.NearbyPlace) error {
	if len(nearby) == 0 {
		return nil
	}

	// Without permission nothing is recorded either, so the alerts still
	// fire once a push-enabled device registers.
	if !s.dispatcher.RequestPermission(ctx, userID) {
		return nil
	}

	notified, err := s.loadNotified(ctx, userID)
	if err != nil {
		return err
	}

	var pending []entity.NearbyPlace
	for _, place := range nearby {
		if _, seen := notified[place.ID]; seen {
			continue
		}
		notified[place.ID] = struct{}{}
		pending = append(pending, place)
	}

	if len(pending) == 0 {
		return nil
	}

	if err := s.saveNotified(ctx, userID, notified); err != nil {
		return err
	}

	for _, place := range pending {
		s.dispatcher.Dispatch(ctx, userID, place)
		s.logger.Info("nearby place notified",
			slog.String("user_id", userID.String()),
			slog.String("place_id", place.ID),
			slog.String("distance", fmt.Sprintf("%.2fkm", place.DistanceKm)))
	}

	return nil
}

func (s *proximityService) ensureTrackerLocked(userID uuid.UUID) *tracker {
	tr, ok := s.trackers[userID]
	if !ok {
		tr = &tracker{}
		s.trackers[userID] = tr
	}

	return tr
}

func (s *proximityService) clampRadius(radiusKm float64) float64 {
	if radiusKm < s.cfg.MinRadiusKm {
		return s.cfg.MinRadiusKm
	}
	if radiusKm > s.cfg.MaxRadiusKm {
		return s.cfg.MaxRadiusKm
	}

	return radiusKm
}

func (s *proximityService) loadSettings(ctx context.Context, userID uuid.UUID) (entity.NotificationSettings, error) {
	key := settingsKeyPrefix + userID.String()

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return entity.NotificationSettings{}, errors.Wrap(err, "failed to load notification settings")
	}
	if !ok {
		settings := entity.DefaultNotificationSettings(s.cfg.DefaultRadiusKm)
		if err := s.saveSettings(ctx, userID, settings); err != nil {
			return entity.NotificationSettings{}, err
		}
		return settings, nil
	}

	var settings entity.NotificationSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return entity.NotificationSettings{}, errors.Wrap(err, "failed to decode notification settings")
	}

	return settings, nil
}

func (s *proximityService) saveSettings(ctx context.Context, userID uuid.UUID, settings entity.NotificationSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "failed to encode notification settings")
	}
	if err := s.store.Put(ctx, settingsKeyPrefix+userID.String(), raw); err != nil {
		return errors.Wrap(err, "failed to save notification settings")
	}

	return nil
}

func (s *proximityService) loadNotified(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	raw, ok, err := s.store.Get(ctx, notifiedKeyPrefix+userID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load notified places")
	}

	notified := make(map[string]struct{})
	if !ok {
		return notified, nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, errors.Wrap(err, "failed to decode notified places")
	}
	for _, id := range ids {
		notified[id] = struct{}{}
	}

	return notified, nil
}

func (s *proximityService) saveNotified(ctx context.Context, userID uuid.UUID, notified map[string]struct{}) error {
	ids := make([]string, 0, len(notified))
	for id := range notified {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	raw, err := json.Marshal(ids)
	if err != nil {
		return errors.Wrap(err, "failed to encode notified places")
	}
	if err := s.store.Put(ctx, notifiedKeyPrefix+userID.String(), raw); err != nil {
		return errors.Wrap(err, "failed to save notified places")
	}

	return nil
}
