package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/akshay-h-dev/milestack/internal/app"
	iauth "github.com/akshay-h-dev/milestack/internal/auth"
	"github.com/akshay-h-dev/milestack/internal/handlers"
	"github.com/akshay-h-dev/milestack/internal/middleware"
	"github.com/akshay-h-dev/milestack/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	members, err := services.NewMembershipService(db)
	if err != nil {
		return nil, err
	}
	acts, err := services.NewActivityService(db)
	if err != nil {
		return nil, err
	}
	invites, err := services.NewInviteService(db, members, acts)
	if err != nil {
		return nil, err
	}
	users, err := services.NewUserService(db, invites, members, acts)
	if err != nil {
		return nil, err
	}
	projects, err := services.NewProjectService(db, members, acts)
	if err != nil {
		return nil, err
	}
	tasks, err := services.NewTaskService(db, members, acts)
	if err != nil {
		return nil, err
	}
	milestones, err := services.NewMilestoneService(db, members, acts)
	if err != nil {
		return nil, err
	}
	chat, err := services.NewChatService(db, members, acts)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Server.CORS.Origin))

	// Public surface
	r.GET("/", handlers.Health())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(users, jwt)
	inviteHandler := handlers.NewInviteHandler(invites, acts)

	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
	}

	// The invite page loads before the visitor has an account.
	r.GET("/api/invites/:id", inviteHandler.Get)

	// Protected surface
	api := r.Group("/api")
	api.Use(middleware.Auth(jwt))

	projectHandler := handlers.NewProjectHandler(projects)
	api.GET("/projects", projectHandler.List)
	api.POST("/projects", projectHandler.Create)
	api.PUT("/projects/:id", projectHandler.Update)
	api.DELETE("/projects/:id", projectHandler.Delete)

	taskHandler := handlers.NewTaskHandler(tasks)
	api.GET("/tasks", taskHandler.List)
	api.POST("/tasks", taskHandler.Create)
	api.PUT("/tasks/:id", taskHandler.Update)
	api.DELETE("/tasks/:id", taskHandler.Delete)

	milestoneHandler := handlers.NewMilestoneHandler(milestones)
	api.GET("/milestones", milestoneHandler.List)
	api.POST("/milestones", milestoneHandler.Create)
	api.PUT("/milestones/:id", milestoneHandler.Update)
	api.DELETE("/milestones/:id", milestoneHandler.Delete)

	chatHandler := handlers.NewChatThreadHandler(chat)
	api.GET("/chatThreads", chatHandler.List)
	api.POST("/chatThreads", chatHandler.Create)
	api.PUT("/chatThreads/:id", chatHandler.Update)
	api.DELETE("/chatThreads/:id", chatHandler.Delete)

	teammateHandler := handlers.NewTeammateHandler(members, acts)
	api.GET("/teammates", teammateHandler.List)
	api.DELETE("/teammates/:id", teammateHandler.Remove)

	api.GET("/invites", inviteHandler.List)
	api.POST("/invites", inviteHandler.Create)

	activityHandler := handlers.NewActivityHandler(acts, members)
	api.GET("/activities", activityHandler.List)

	return r, nil
}
