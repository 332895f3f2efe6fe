package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/server/internal/helpers"
	"github.com/gatherly/server/internal/models"
	"github.com/gatherly/server/internal/services"
)

func CreateEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var input models.CreateEventInput
		if !bindAndValidate(c, &input) {
			return
		}

		event, err := e.CreateEvent(c.Request.Context(), actor, &input)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(event, "Event scheduled successfully"))
	}
}

func UpdateEventByTitle(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		title := helpers.StringTrim(c.Param("title"))

		var input models.UpdateEventInput
		if !bindAndValidate(c, &input) {
			return
		}

		event, err := e.UpdateEventByTitle(c.Request.Context(), actor, title, &input)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, "Event updated successfully"))
	}
}

func DeleteEventByTitle(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		title := helpers.StringTrim(c.Param("title"))

		if err := e.DeleteEventByTitle(c.Request.Context(), actor, title); err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted successfully"))
	}
}
