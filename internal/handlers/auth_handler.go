package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/server/internal/models"
	"github.com/gatherly/server/internal/services"
)

func Signup(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.SignupInput
		if !bindAndValidate(c, &input) {
			return
		}

		user, err := u.Signup(c.Request.Context(), &input)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(user, "User registered successfully"))
	}
}

func Login(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput
		if !bindAndValidate(c, &input) {
			return
		}

		token, user, err := u.Login(c.Request.Context(), &input)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"token": token,
			"user":  user,
		}, "Login successful"))
	}
}

func ToggleLoginAccess(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var input struct {
			Email string `json:"email" validate:"required,email"`
		}
		if !bindAndValidate(c, &input) {
			return
		}

		user, err := u.ToggleLoginAccess(c.Request.Context(), actor, input.Email)
		if err != nil {
			renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"email":          user.Email,
			"isLoginAllowed": user.IsLoginAllowed,
		}, "Login access updated"))
	}
}

func MyProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}
