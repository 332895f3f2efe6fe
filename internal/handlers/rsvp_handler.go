package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gatherly/server/internal/models"
	"github.com/gatherly/server/internal/services"
)

func eventIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("eventId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event id"))
		return primitive.NilObjectID, false
	}
	return id, true
}

func RSVPToEvent(m *services.MembershipService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		eventID, ok := eventIDParam(c)
		if !ok {
			return
		}

		var input struct {
			EventRole string `json:"eventRole" validate:"required"`
		}
		if !bindAndValidate(c, &input) {
			return
		}

		event, err := m.AddRSVP(c.Request.Context(), eventID, requester, input.EventRole)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, "RSVP successful"))
	}
}

// RemoveRSVP lets an organizer of the event remove any member, identified by
// email.
func RemoveRSVP(m *services.MembershipService) gin.HandlerFunc {
	return removeMember(m, models.RoleOrganizer, "Member removed from event")
}

// RemoveAttendee lets a volunteer of the event remove a member. The target's
// role is not checked, matching the organizer path.
func RemoveAttendee(m *services.MembershipService) gin.HandlerFunc {
	return removeMember(m, models.RoleVolunteer, "Attendee removed from event")
}

func removeMember(m *services.MembershipService, requiredActorRole, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		eventID, ok := eventIDParam(c)
		if !ok {
			return
		}

		targetEmail := c.Param("email")

		event, err := m.RemoveMember(c.Request.Context(), eventID, actor, targetEmail, requiredActorRole)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, message))
	}
}

// UserEvents lists every event the authenticated user has any role on.
func UserEvents(m *services.MembershipService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		events, err := m.ListUserEvents(c.Request.Context(), user.ID)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}
