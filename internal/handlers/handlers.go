package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/gatherly/server/internal/apperr"
	"github.com/gatherly/server/internal/models"
)

// currentUser pulls the authenticated user attached by the auth middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func renderError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), models.ErrorResponse(err.Error()))
}

// bindAndValidate decodes the JSON body into v and applies the struct
// validation rules, rejecting the payload with field-level detail before it
// reaches any service.
func bindAndValidate(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body: "+err.Error()))
		return false
	}

	if err := models.Validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			c.JSON(http.StatusBadRequest, models.ValidationErrorResponse("you sent the wrong inputs", fields))
			return false
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
		return false
	}

	return true
}
