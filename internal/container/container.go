package container

import (
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gatherly/server/internal/config"
	"github.com/gatherly/server/internal/models"
	"github.com/gatherly/server/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config

	MongoDBClient *mongo.Client
	MongoRepo     *models.MongodbRepo

	UserService       *services.UserService
	EventService      *services.EventService
	MembershipService *services.MembershipService
	DiscoveryService  *services.DiscoveryService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, cfg *config.Config, mongoDBClient *mongo.Client) *Container {
	repo := models.MongodbNewRepo(mongoDBClient)

	userService := services.NewUserService(repo, cfg)
	eventService := services.NewEventService(repo, cfg)
	membershipService := services.NewMembershipService(repo, repo)
	discoveryService := services.NewDiscoveryService(repo, repo)

	return &Container{
		Logger:            logger,
		Config:            cfg,
		MongoDBClient:     mongoDBClient,
		MongoRepo:         repo,
		UserService:       userService,
		EventService:      eventService,
		MembershipService: membershipService,
		DiscoveryService:  discoveryService,
	}
}
