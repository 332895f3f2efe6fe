package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gatherly/server/internal/apperr"
	"github.com/gatherly/server/internal/helpers"
	"github.com/gatherly/server/internal/models"
)

// MembershipService owns the RSVP membership rules: one role per user per
// event, a closed role set for self-service RSVPs, and role-gated removal.
type MembershipService struct {
	eventRepo models.EventRepo
	userRepo  models.UserRepo
}

func NewMembershipService(eventRepo models.EventRepo, userRepo models.UserRepo) *MembershipService {
	return &MembershipService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

// AddRSVP enrolls the requester on the event. Only volunteer and attendee
// are assignable here; organizer exists solely from event creation. The
// duplicate check and the append are one store-level conditional write, so a
// user cannot end up with two entries even under concurrent requests.
func (ms *MembershipService) AddRSVP(ctx context.Context, eventID primitive.ObjectID, requester *models.User, role string) (*models.Event, error) {
	role = helpers.StringTrim(role)

	allowed := false
	for _, r := range models.RSVPRoles {
		if role == r {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperr.InvalidArgumentf("eventRole %q is not assignable via rsvp", role)
	}

	entry := models.RSVPEntry{UserID: requester.ID, EventRole: role}
	return ms.eventRepo.AddRSVP(ctx, eventID, entry)
}

// RemoveMember removes the target user's RSVP entry from the event. The
// target is resolved by email; authorization keys on user ids. The actor
// must hold requiredActorRole on this specific event. The target's own role
// is not inspected, so a volunteer may remove other volunteers.
func (ms *MembershipService) RemoveMember(ctx context.Context, eventID primitive.ObjectID, actor *models.User, targetEmail, requiredActorRole string) (*models.Event, error) {
	event, err := ms.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	target, err := ms.userRepo.GetUserByEmail(ctx, helpers.StringTrim(targetEmail))
	if err != nil {
		return nil, err
	}

	if role, ok := event.RoleOf(actor.ID); !ok || role != requiredActorRole {
		return nil, apperr.PermissionDeniedf("actor must hold the %s role on event %s", requiredActorRole, eventID.Hex())
	}

	if !event.HasMember(target.ID) {
		return nil, apperr.NotFoundf("rsvp for user %s on event %s", target.Email, eventID.Hex())
	}

	return ms.eventRepo.RemoveRSVP(ctx, eventID, target.ID)
}

// ListUserEvents returns every event where the user holds any role. Zero
// matches is an empty slice, not an error.
func (ms *MembershipService) ListUserEvents(ctx context.Context, userID primitive.ObjectID) ([]*models.Event, error) {
	return ms.eventRepo.EventsByUser(ctx, userID)
}
