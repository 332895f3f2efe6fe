package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gatherly/server/internal/apperr"
	"github.com/gatherly/server/internal/helpers"
	"github.com/gatherly/server/internal/models"
)

// fakeStore is an in-memory stand-in for the Mongo repositories. It mirrors
// their semantics, including the conditional add/remove membership writes
// and the error kinds they report.
type fakeStore struct {
	mu     sync.Mutex
	users  map[primitive.ObjectID]*models.User
	events map[primitive.ObjectID]*models.Event
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[primitive.ObjectID]*models.User),
		events: make(map[primitive.ObjectID]*models.Event),
	}
}

// UserRepo

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFoundf("user %s", id.Hex())
	}
	return user, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFoundf("user %s", email)
}

func (f *fakeStore) SetLoginAllowed(ctx context.Context, id primitive.ObjectID, allowed bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFoundf("user %s", id.Hex())
	}
	user.IsLoginAllowed = allowed
	return user, nil
}

// EventRepo

func (f *fakeStore) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Labels == nil {
		event.Labels = []string{}
	}
	if event.RSVP == nil {
		event.RSVP = []models.RSVPEntry{}
	}
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeStore) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getEventLocked(id)
}

func (f *fakeStore) getEventLocked(id primitive.ObjectID) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, apperr.NotFoundf("event %s", id.Hex())
	}
	return event, nil
}

func (f *fakeStore) GetEventByTitle(ctx context.Context, title string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, event := range f.events {
		if event.Title == title {
			return event, nil
		}
	}
	return nil, apperr.NotFoundf("event %q", title)
}

func (f *fakeStore) UpdateEventByTitle(ctx context.Context, title string, fields map[string]interface{}) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, event := range f.events {
		if event.Title != title {
			continue
		}
		if v, ok := fields["title"].(string); ok {
			event.Title = v
		}
		if v, ok := fields["description"].(string); ok {
			event.Description = v
		}
		if v, ok := fields["date"].(string); ok {
			event.Date = v
		}
		if v, ok := fields["time"].(string); ok {
			event.Time = v
		}
		if v, ok := fields["labels"].([]string); ok {
			event.Labels = v
		}
		return event, nil
	}
	return nil, apperr.NotFoundf("event %q", title)
}

func (f *fakeStore) DeleteEventByTitle(ctx context.Context, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, event := range f.events {
		if event.Title == title {
			delete(f.events, id)
			return nil
		}
	}
	return apperr.NotFoundf("event %q", title)
}

func (f *fakeStore) AddRSVP(ctx context.Context, eventID primitive.ObjectID, entry models.RSVPEntry) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, err := f.getEventLocked(eventID)
	if err != nil {
		return nil, err
	}
	if event.HasMember(entry.UserID) {
		return nil, apperr.Conflictf("user %s already has an rsvp on event %s", entry.UserID.Hex(), eventID.Hex())
	}
	event.RSVP = append(event.RSVP, entry)
	return event, nil
}

func (f *fakeStore) RemoveRSVP(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, err := f.getEventLocked(eventID)
	if err != nil {
		return nil, err
	}
	for i, entry := range event.RSVP {
		if entry.UserID == userID {
			event.RSVP = append(event.RSVP[:i], event.RSVP[i+1:]...)
			return event, nil
		}
	}
	return nil, apperr.NotFoundf("rsvp for user %s on event %s", userID.Hex(), eventID.Hex())
}

func (f *fakeStore) EventsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Event{}
	for _, event := range f.events {
		if event.HasMember(userID) {
			result = append(result, event)
		}
	}
	return result, nil
}

func (f *fakeStore) EventsByLabels(ctx context.Context, labels []string) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Event{}
	for _, event := range f.events {
		if intersects(event.Labels, labels) {
			result = append(result, event)
		}
	}
	return result, nil
}

func (f *fakeStore) EventsByOrganizer(ctx context.Context, organizerID primitive.ObjectID) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Event{}
	for _, event := range f.events {
		if role, ok := event.RoleOf(organizerID); ok && role == models.RoleOrganizer {
			result = append(result, event)
		}
	}
	return result, nil
}

func (f *fakeStore) QueryEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Event{}
	for _, event := range f.events {
		if filter.City != "" && !strings.Contains(strings.ToLower(event.City), strings.ToLower(filter.City)) {
			continue
		}
		if filter.Label != "" && !intersects(event.Labels, []string{filter.Label}) {
			continue
		}
		if filter.UpcomingFrom != "" && event.Date < filter.UpcomingFrom {
			continue
		}
		result = append(result, event)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Time < result[j].Time
	})
	return result, nil
}

func (f *fakeStore) EventsNear(ctx context.Context, longitude, latitude, radiusMeters float64) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Event{}
	for _, event := range f.events {
		if event.Location == nil {
			continue
		}
		distKm := helpers.HaversineKm(longitude, latitude,
			event.Location.Longitude(), event.Location.Latitude())
		if distKm*1000 <= radiusMeters {
			result = append(result, event)
		}
	}
	return result, nil
}

func (f *fakeStore) EnsureEventIndexes(ctx context.Context) error {
	return nil
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// Test fixtures

func addUser(t *testing.T, store *fakeStore, firstName, email string) *models.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), &models.User{
		FirstName:      firstName,
		LastName:       "Test",
		Email:          email,
		Password:       "hash",
		City:           "Springfield",
		ContactNumber:  "555-0100",
		Role:           "user",
		IsLoginAllowed: true,
	})
	if err != nil {
		t.Fatalf("failed to create test user %s: %v", email, err)
	}
	return user
}

func addEvent(t *testing.T, store *fakeStore, title string, rsvp ...models.RSVPEntry) *models.Event {
	t.Helper()
	event, err := store.CreateEvent(context.Background(), &models.Event{
		Title:       title,
		Description: "a test event",
		Date:        "2026-10-01",
		Time:        "18:00",
		Labels:      []string{},
		RSVP:        rsvp,
	})
	if err != nil {
		t.Fatalf("failed to create test event %s: %v", title, err)
	}
	return event
}
