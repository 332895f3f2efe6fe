package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gatherly/server/internal/apperr"
	"github.com/gatherly/server/internal/config"
	"github.com/gatherly/server/internal/helpers"
	"github.com/gatherly/server/internal/models"
)

type EventService struct {
	eventRepo models.EventRepo
	cfg       *config.Config
}

func NewEventService(eventRepo models.EventRepo, cfg *config.Config) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		cfg:       cfg,
	}
}

// CreateEvent schedules a new event. The creator is enrolled as its
// organizer; that role cannot be taken later through the RSVP path.
func (es *EventService) CreateEvent(ctx context.Context, actor *models.User, input *models.CreateEventInput) (*models.Event, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, apperr.InvalidArgumentf("invalid event payload: %v", err)
	}

	event := &models.Event{
		Title:       helpers.StringTrim(input.Title),
		Description: helpers.StringTrim(input.Description),
		Date:        input.Date,
		Time:        input.Time,
		Labels:      helpers.RemoveDuplicates(input.Labels),
		Address:     helpers.StringTrim(input.Address),
		City:        helpers.StringTrim(input.City),
		State:       helpers.StringTrim(input.State),
		Country:     helpers.StringTrim(input.Country),
		RSVP: []models.RSVPEntry{
			{UserID: actor.ID, EventRole: models.RoleOrganizer},
		},
	}

	if input.Longitude != nil && input.Latitude != nil {
		event.Location = models.NewGeoPoint(*input.Longitude, *input.Latitude)
	}

	return es.eventRepo.CreateEvent(ctx, event)
}

// UpdateEventByTitle overwrites the provided fields. When organizer-only
// updates are configured, the actor must hold the organizer role on the
// event; otherwise any authenticated user may update, matching the original
// open behavior.
func (es *EventService) UpdateEventByTitle(ctx context.Context, actor *models.User, title string, input *models.UpdateEventInput) (*models.Event, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, apperr.InvalidArgumentf("invalid update payload: %v", err)
	}

	if es.cfg.OrganizerOnlyUpdates {
		event, err := es.eventRepo.GetEventByTitle(ctx, title)
		if err != nil {
			return nil, err
		}
		if role, ok := event.RoleOf(actor.ID); !ok || role != models.RoleOrganizer {
			return nil, apperr.PermissionDeniedf("only an organizer of %q may update it", title)
		}
	}

	fields := map[string]interface{}{}
	if input.NewTitle != nil {
		fields["title"] = helpers.StringTrim(*input.NewTitle)
	}
	if input.Description != nil {
		fields["description"] = helpers.StringTrim(*input.Description)
	}
	if input.Date != nil {
		fields["date"] = *input.Date
	}
	if input.Time != nil {
		fields["time"] = *input.Time
	}
	if input.Labels != nil {
		fields["labels"] = helpers.RemoveDuplicates(*input.Labels)
	}
	if len(fields) == 0 {
		return nil, apperr.InvalidArgumentf("no fields to update")
	}

	return es.eventRepo.UpdateEventByTitle(ctx, title, fields)
}

// DeleteEventByTitle is restricted to the configured operator allow-list,
// keyed by the actor's email rather than per-event role.
func (es *EventService) DeleteEventByTitle(ctx context.Context, actor *models.User, title string) error {
	if !es.cfg.IsOperator(actor.Email) {
		return apperr.PermissionDeniedf("%s is not an authorized operator", actor.Email)
	}

	return es.eventRepo.DeleteEventByTitle(ctx, title)
}

func (es *EventService) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return es.eventRepo.GetEventByID(ctx, id)
}

func (es *EventService) GetEventByTitle(ctx context.Context, title string) (*models.Event, error) {
	return es.eventRepo.GetEventByTitle(ctx, title)
}
