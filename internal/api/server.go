package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hackathon-hub/api/docs"
	v1 "github.com/hackathon-hub/api/internal/api/handler/v1"
	"github.com/hackathon-hub/api/internal/api/middleware"
	"github.com/hackathon-hub/api/internal/config"
	"github.com/hackathon-hub/api/internal/pkg/github"
	"github.com/hackathon-hub/api/internal/repository"
	"github.com/hackathon-hub/api/internal/repository/dao"
	"github.com/hackathon-hub/api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	profileHandler := s.initProfileHandler(db)
	enrollmentHandler := s.initEnrollmentHandler(db)
	milestoneHandler := s.initMilestoneHandler(db)
	leaderboardHandler := s.initLeaderboardHandler(db)
	voteHandler := s.initVoteHandler(db)
	adminHandler := s.initAdminHandler(db)
	webhookHandler := s.initWebhookHandler(db)
	s.MountHandlers(db, authHandler, profileHandler, enrollmentHandler, milestoneHandler, leaderboardHandler, voteHandler, adminHandler, webhookHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initProfileHandler(db *gorm.DB) *v1.ProfileHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	enrollmentRepo := repository.NewEnrollmentRepository(dao.NewEnrollmentDAO(db))
	users := service.NewUserService(userRepo)
	enrollments := service.NewEnrollmentService(enrollmentRepo)
	handler := v1.NewProfileHandler(users, enrollments)

	return handler
}

func (s *Server) initEnrollmentHandler(db *gorm.DB) *v1.EnrollmentHandler {
	repo := repository.NewEnrollmentRepository(dao.NewEnrollmentDAO(db))
	svc := service.NewEnrollmentService(repo)
	handler := v1.NewEnrollmentHandler(svc)

	return handler
}

func (s *Server) initMilestoneHandler(db *gorm.DB) *v1.MilestoneHandler {
	repo := repository.NewMilestoneRepository(dao.NewMilestoneDAO(db))
	svc := service.NewMilestoneService(repo)
	handler := v1.NewMilestoneHandler(svc)

	return handler
}

func (s *Server) initLeaderboardHandler(db *gorm.DB) *v1.LeaderboardHandler {
	svc := s.newLeaderboardService(db)
	handler := v1.NewLeaderboardHandler(svc)

	return handler
}

func (s *Server) initVoteHandler(db *gorm.DB) *v1.VoteHandler {
	svc := s.newVoteService(db)
	handler := v1.NewVoteHandler(svc)

	return handler
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	leaderboard := s.newLeaderboardService(db)
	enrollments := service.NewEnrollmentService(repository.NewEnrollmentRepository(dao.NewEnrollmentDAO(db)))
	votes := s.newVoteService(db)
	settings := service.NewSettingsService(repository.NewSettingRepository(dao.NewSettingDAO(db)))
	poller := s.newPollerService(db)
	handler := v1.NewAdminHandler(s.Config, leaderboard, enrollments, votes, settings, poller)

	return handler
}

func (s *Server) initWebhookHandler(db *gorm.DB) *v1.WebhookHandler {
	enrollments := service.NewEnrollmentService(repository.NewEnrollmentRepository(dao.NewEnrollmentDAO(db)))
	tracker := s.newTrackerService(db)
	handler := v1.NewWebhookHandler(s.Config.GitHub.WebhookSecret, enrollments, tracker)

	return handler
}

func (s *Server) newTrackerService(db *gorm.DB) *service.TrackerService {
	enrollmentRepo := repository.NewEnrollmentRepository(dao.NewEnrollmentDAO(db))
	milestoneRepo := repository.NewMilestoneRepository(dao.NewMilestoneDAO(db))
	activityRepo := repository.NewActivityRepository(dao.NewActivityDAO(db))

	return service.NewTrackerService(enrollmentRepo, milestoneRepo, activityRepo)
}

func (s *Server) newLeaderboardService(db *gorm.DB) *service.LeaderboardService {
	enrollmentRepo := repository.NewEnrollmentRepository(dao.NewEnrollmentDAO(db))
	milestoneRepo := repository.NewMilestoneRepository(dao.NewMilestoneDAO(db))
	voteRepo := repository.NewVoteRepository(dao.NewVoteDAO(db))
	settings := service.NewSettingsService(repository.NewSettingRepository(dao.NewSettingDAO(db)))

	return service.NewLeaderboardService(enrollmentRepo, milestoneRepo, voteRepo, settings)
}

func (s *Server) newVoteService(db *gorm.DB) *service.VoteService {
	voteRepo := repository.NewVoteRepository(dao.NewVoteDAO(db))
	enrollmentRepo := repository.NewEnrollmentRepository(dao.NewEnrollmentDAO(db))
	settings := service.NewSettingsService(repository.NewSettingRepository(dao.NewSettingDAO(db)))

	return service.NewVoteService(voteRepo, enrollmentRepo, settings)
}

func (s *Server) newPollerService(db *gorm.DB) *service.PollerService {
	enrollmentRepo := repository.NewEnrollmentRepository(dao.NewEnrollmentDAO(db))
	gh := github.NewClient(s.Config.GitHub.APIBaseURL, time.Duration(s.Config.GitHub.RequestTimeoutSeconds)*time.Second)
	tracker := s.newTrackerService(db)

	return service.NewPollerService(enrollmentRepo, gh, tracker)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	db *gorm.DB,
	authHandler *v1.AuthHandler,
	profileHandler *v1.ProfileHandler,
	enrollmentHandler *v1.EnrollmentHandler,
	milestoneHandler *v1.MilestoneHandler,
	leaderboardHandler *v1.LeaderboardHandler,
	voteHandler *v1.VoteHandler,
	adminHandler *v1.AdminHandler,
	webhookHandler *v1.WebhookHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		public.GET("/milestones", milestoneHandler.HandleListMilestones)
		public.GET("/leaderboard", leaderboardHandler.HandleGetLeaderboard)
		public.POST("/webhooks/github", webhookHandler.HandleGitHubPush)
	}

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	authed := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		authed.GET("/profile", profileHandler.HandleGetProfile)
		authed.PATCH("/profile", profileHandler.HandleUpdateProfile)
		authed.POST("/enrollments", enrollmentHandler.HandleLinkRepo)
		authed.GET("/enrollments/me", enrollmentHandler.HandleGetMyEnrollment)
		authed.GET("/votes/status", voteHandler.HandleGetVotingStatus)
		authed.POST("/votes", voteHandler.HandleCastVote)
	}

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), middleware.RequireAdmin(service.NewUserService(userRepo)))
	{
		admin.GET("/enrollments", adminHandler.HandleListEnrollments)
		admin.DELETE("/enrollments/:enrollmentID", adminHandler.HandleDeleteEnrollment)
		admin.GET("/milestones", milestoneHandler.HandleListMilestones)
		admin.POST("/milestones", milestoneHandler.HandleCreateMilestone)
		admin.PUT("/milestones/:milestoneID", milestoneHandler.HandleUpdateMilestone)
		admin.PATCH("/milestones/:milestoneID", milestoneHandler.HandleUpdateMilestone)
		admin.DELETE("/milestones/:milestoneID", milestoneHandler.HandleDeleteMilestone)
		admin.GET("/vote-control", adminHandler.HandleGetVoteControl)
		admin.POST("/vote-control", adminHandler.HandleSetVoteControl)
		admin.POST("/vote-candidates", adminHandler.HandleSelectCandidates)
		admin.GET("/event-timer", adminHandler.HandleGetEventTimer)
		admin.POST("/event-timer", adminHandler.HandleSetEventTimer)
		admin.DELETE("/event-timer", adminHandler.HandleClearEventTimer)
		admin.POST("/poll", adminHandler.HandlePollRepos)
		admin.GET("/webhook-status", adminHandler.HandleWebhookStatus)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Hackathon Hub API"
	docs.SwaggerInfo.Description = "Tracks hackathon milestones from GitHub commits and runs the leaderboard."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
