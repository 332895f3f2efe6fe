package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/server/internal/models"
	"github.com/gatherly/server/internal/services"
)

// ListEvents handles GET /event/all?city=&label=&upcoming=.
func ListEvents(d *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		upcoming, _ := strconv.ParseBool(c.DefaultQuery("upcoming", "false"))

		events, err := d.All(c.Request.Context(), c.Query("city"), c.Query("label"), upcoming)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

// SearchByLabels handles GET /event/search/labels?labels=a,b.
func SearchByLabels(d *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		labels := strings.Split(c.Query("labels"), ",")

		events, err := d.ByLabels(c.Request.Context(), labels)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

// SearchByOrganizer handles GET /event/search/organizer/:email.
func SearchByOrganizer(d *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := d.ByOrganizer(c.Request.Context(), c.Param("email"))
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

// NearbyEvents handles GET /event/nearby?longitude=&latitude=&radius=.
// radius is in meters and defaults to 10km.
func NearbyEvents(d *services.DiscoveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		longitude, err := strconv.ParseFloat(c.Query("longitude"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("longitude is required and must be a number"))
			return
		}
		latitude, err := strconv.ParseFloat(c.Query("latitude"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("latitude is required and must be a number"))
			return
		}

		radius := 0.0
		if raw := c.Query("radius"); raw != "" {
			radius, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("radius must be a number"))
				return
			}
		}

		events, err := d.Near(c.Request.Context(), longitude, latitude, radius)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}
