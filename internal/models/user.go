package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"firstName" json:"firstName" validate:"required"`
	LastName       string             `bson:"lastName" json:"lastName" validate:"required"`
	Email          string             `bson:"email" json:"email" validate:"required,email"`
	Password       string             `bson:"password" json:"-"`
	City           string             `bson:"city" json:"city" validate:"required"`
	ContactNumber  string             `bson:"contactNumber" json:"contactNumber" validate:"required"`
	Role           string             `bson:"role" json:"role"`
	IsLoginAllowed bool               `bson:"isLoginAllowed" json:"isLoginAllowed"`
}

type SignupInput struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	City          string `json:"city" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	SetLoginAllowed(ctx context.Context, id primitive.ObjectID, allowed bool) (*User, error)
}
