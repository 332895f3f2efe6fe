package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleOrganizer = "organizer"
	RoleVolunteer = "volunteer"
	RoleAttendee  = "attendee"
)

// RSVPRoles that can be taken through the RSVP endpoint. Organizer is
// assigned only at event creation.
var RSVPRoles = []string{RoleVolunteer, RoleAttendee}

type RSVPEntry struct {
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	EventRole string             `bson:"eventRole" json:"eventRole"`
}

// GeoPoint is a GeoJSON point, coordinates ordered [longitude, latitude],
// matching what the 2dsphere index expects.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(longitude, latitude float64) *GeoPoint {
	return &GeoPoint{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

func (g *GeoPoint) Longitude() float64 { return g.Coordinates[0] }
func (g *GeoPoint) Latitude() float64  { return g.Coordinates[1] }

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        string             `bson:"date" json:"date"` // YYYY-MM-DD
	Time        string             `bson:"time" json:"time"` // HH:MM
	Labels      []string           `bson:"labels" json:"labels"`
	Location    *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	City        string             `bson:"city,omitempty" json:"city,omitempty"`
	State       string             `bson:"state,omitempty" json:"state,omitempty"`
	Country     string             `bson:"country,omitempty" json:"country,omitempty"`
	RSVP        []RSVPEntry        `bson:"rsvp" json:"rsvp"`
}

// RoleOf returns the event role the user holds, if any. Membership compares
// user ids by value.
func (e *Event) RoleOf(userID primitive.ObjectID) (string, bool) {
	for _, entry := range e.RSVP {
		if entry.UserID == userID {
			return entry.EventRole, true
		}
	}
	return "", false
}

func (e *Event) HasMember(userID primitive.ObjectID) bool {
	_, ok := e.RoleOf(userID)
	return ok
}

// NearbyEvent pairs an event with its great-circle distance from the search
// origin, in kilometers.
type NearbyEvent struct {
	*Event
	DistanceKm float64 `json:"distanceKm"`
}

type CreateEventInput struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Description string   `json:"description" validate:"required,min=1"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string   `json:"time" validate:"required"`
	Labels      []string `json:"labels"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Country     string   `json:"country"`
}

type UpdateEventInput struct {
	NewTitle    *string   `json:"newTitle" validate:"omitempty,min=1"`
	Description *string   `json:"description" validate:"omitempty,min=1"`
	Date        *string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        *string   `json:"time"`
	Labels      *[]string `json:"labels"`
}

// EventFilter narrows listing queries. Zero values mean "no constraint".
type EventFilter struct {
	City         string // substring, case-insensitive
	Label        string
	UpcomingFrom string // YYYY-MM-DD inclusive lower bound on date
}

type EventRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	GetEventByTitle(ctx context.Context, title string) (*Event, error)
	UpdateEventByTitle(ctx context.Context, title string, fields map[string]interface{}) (*Event, error)
	DeleteEventByTitle(ctx context.Context, title string) error

	// AddRSVP appends the entry if and only if no entry for the same user is
	// present, as a single conditional write.
	AddRSVP(ctx context.Context, eventID primitive.ObjectID, entry RSVPEntry) (*Event, error)
	// RemoveRSVP pulls the user's entry if present, as a single conditional
	// write. Remaining entries keep their order.
	RemoveRSVP(ctx context.Context, eventID, userID primitive.ObjectID) (*Event, error)

	EventsByUser(ctx context.Context, userID primitive.ObjectID) ([]*Event, error)
	EventsByLabels(ctx context.Context, labels []string) ([]*Event, error)
	EventsByOrganizer(ctx context.Context, organizerID primitive.ObjectID) ([]*Event, error)
	QueryEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	EventsNear(ctx context.Context, longitude, latitude, radiusMeters float64) ([]*Event, error)

	EnsureEventIndexes(ctx context.Context) error
}
