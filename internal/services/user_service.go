package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/containerd/errdefs"
	"github.com/gatherly/server/internal/apperr"
	"github.com/gatherly/server/internal/config"
	"github.com/gatherly/server/internal/helpers"
	"github.com/gatherly/server/internal/models"
)

type UserService struct {
	userRepo models.UserRepo
	cfg      *config.Config
}

func NewUserService(userRepo models.UserRepo, cfg *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (us *UserService) Signup(ctx context.Context, input *models.SignupInput) (*models.User, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, apperr.InvalidArgumentf("invalid signup payload: %v", err)
	}
	if !helpers.IsPasswordStrong(input.Password) {
		return nil, apperr.InvalidArgumentf("password must be at least 8 characters with upper, lower, digit and special characters")
	}

	// Duplicate check happens here rather than at the store schema; emails
	// are not unique at the data layer.
	existing, err := us.userRepo.GetUserByEmail(ctx, input.Email)
	if err != nil && !errdefs.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflictf("user with email %s already exists", input.Email)
	}

	hash, err := helpers.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internalf("failed to hash password: %v", err)
	}

	user := &models.User{
		FirstName:      helpers.StringTrim(input.FirstName),
		LastName:       helpers.StringTrim(input.LastName),
		Email:          helpers.StringTrim(input.Email),
		Password:       hash,
		City:           helpers.StringTrim(input.City),
		ContactNumber:  helpers.StringTrim(input.ContactNumber),
		Role:           "user",
		IsLoginAllowed: true,
	}

	return us.userRepo.CreateUser(ctx, user)
}

// Login verifies credentials and issues a bearer token. Credential failures
// are reported uniformly so the response does not reveal which part was wrong.
func (us *UserService) Login(ctx context.Context, input *models.LoginInput) (string, *models.User, error) {
	if err := models.Validate.Struct(input); err != nil {
		return "", nil, apperr.InvalidArgumentf("invalid login payload: %v", err)
	}

	user, err := us.userRepo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return "", nil, apperr.Unauthenticatedf("invalid credentials")
		}
		return "", nil, err
	}

	if !helpers.ComparePassword(user.Password, input.Password) {
		return "", nil, apperr.Unauthenticatedf("invalid credentials")
	}

	if !user.IsLoginAllowed {
		return "", nil, apperr.PermissionDeniedf("login access is disabled for %s", user.Email)
	}

	token, err := helpers.IssueToken(us.cfg.JWTSecret, user.ID.Hex(), us.cfg.TokenTTL)
	if err != nil {
		return "", nil, apperr.Internalf("failed to issue token: %v", err)
	}

	return token, user, nil
}

// ToggleLoginAccess flips the target's login-allowed flag. Restricted to the
// configured operator allow-list.
func (us *UserService) ToggleLoginAccess(ctx context.Context, actor *models.User, targetEmail string) (*models.User, error) {
	if !us.cfg.IsOperator(actor.Email) {
		return nil, apperr.PermissionDeniedf("%s is not an authorized operator", actor.Email)
	}

	target, err := us.userRepo.GetUserByEmail(ctx, helpers.StringTrim(targetEmail))
	if err != nil {
		return nil, err
	}

	return us.userRepo.SetLoginAllowed(ctx, target.ID, !target.IsLoginAllowed)
}

func (us *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return us.userRepo.GetUserByID(ctx, id)
}
