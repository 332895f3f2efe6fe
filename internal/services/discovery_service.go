package services

import (
	"context"
	"time"

	"github.com/gatherly/server/internal/apperr"
	"github.com/gatherly/server/internal/helpers"
	"github.com/gatherly/server/internal/models"
)

// DefaultNearRadiusMeters applies when a proximity search names no radius.
const DefaultNearRadiusMeters = 10000.0

// DiscoveryService answers browse and search queries. Zero-result queries
// succeed with empty slices.
type DiscoveryService struct {
	eventRepo models.EventRepo
	userRepo  models.UserRepo
}

func NewDiscoveryService(eventRepo models.EventRepo, userRepo models.UserRepo) *DiscoveryService {
	return &DiscoveryService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

func (ds *DiscoveryService) ByLabels(ctx context.Context, labels []string) ([]*models.Event, error) {
	labels = helpers.RemoveDuplicates(labels)
	if len(labels) == 0 {
		return nil, apperr.InvalidArgumentf("at least one label is required")
	}
	return ds.eventRepo.EventsByLabels(ctx, labels)
}

// ByOrganizer finds events organized by the user holding the given email.
func (ds *DiscoveryService) ByOrganizer(ctx context.Context, email string) ([]*models.Event, error) {
	user, err := ds.userRepo.GetUserByEmail(ctx, helpers.StringTrim(email))
	if err != nil {
		return nil, err
	}
	return ds.eventRepo.EventsByOrganizer(ctx, user.ID)
}

// Near returns events within radiusMeters of the origin, each annotated with
// its haversine distance in kilometers. The same distance function is used
// wherever a distance is surfaced, so filter and display cannot disagree.
func (ds *DiscoveryService) Near(ctx context.Context, longitude, latitude, radiusMeters float64) ([]*models.NearbyEvent, error) {
	if longitude < -180 || longitude > 180 {
		return nil, apperr.InvalidArgumentf("longitude %v is out of range", longitude)
	}
	if latitude < -90 || latitude > 90 {
		return nil, apperr.InvalidArgumentf("latitude %v is out of range", latitude)
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultNearRadiusMeters
	}

	events, err := ds.eventRepo.EventsNear(ctx, longitude, latitude, radiusMeters)
	if err != nil {
		return nil, err
	}

	nearby := make([]*models.NearbyEvent, 0, len(events))
	for _, event := range events {
		ne := &models.NearbyEvent{Event: event}
		if event.Location != nil {
			ne.DistanceKm = helpers.HaversineKm(longitude, latitude,
				event.Location.Longitude(), event.Location.Latitude())
		}
		nearby = append(nearby, ne)
	}

	return nearby, nil
}

// All lists events with optional city, label and upcoming filters, sorted by
// date then time ascending.
func (ds *DiscoveryService) All(ctx context.Context, city, label string, upcomingOnly bool) ([]*models.Event, error) {
	filter := models.EventFilter{
		City:  helpers.StringTrim(city),
		Label: helpers.StringTrim(label),
	}
	if upcomingOnly {
		filter.UpcomingFrom = time.Now().Format("2006-01-02")
	}
	return ds.eventRepo.QueryEvents(ctx, filter)
}
