package api

import (
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/cpreston123/core-swipe-service-Care2Share/docs"
	v1 "github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/middleware"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/config"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/metrics"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/notify"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/repository"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/repository/dao"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/service"
)

const basePath = "/api/v1"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	notifier service.Notifier
}

type handlers struct {
	auth        *v1.AuthHandler
	user        *v1.UserHandler
	admin       *v1.AdminHandler
	swipe       *v1.SwipeHandler
	points      *v1.PointsHandler
	transaction *v1.TransactionHandler
	stream      *v1.StreamHandler
	health      *v1.HealthHandler
	graphql     *v1.GraphQLHandler
}

// NewServer wires the Ledger API on db. notifier may be nil, in which case one is built from the mailgun config.
func NewServer(conf *config.AppConfig, db *gorm.DB, notifier service.Notifier) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	if notifier == nil {
		notifier = notify.New(conf.Mailgun)
	}

	s := &Server{
		Config:   conf,
		Router:   engine,
		notifier: notifier,
	}

	s.MountMiddlewares()

	userSvc := s.initUserService(db)
	swipeSvc := s.initSwipeService(db)
	h := handlers{
		auth:        v1.NewAuthHandler(conf.API, userSvc, service.NewAuthService(conf.Admin)),
		user:        v1.NewUserHandler(userSvc),
		admin:       v1.NewAdminHandler(userSvc),
		swipe:       v1.NewSwipeHandler(swipeSvc),
		points:      s.initPointsHandler(db),
		transaction: s.initTransactionHandler(db),
		stream:      v1.NewStreamHandler(userSvc, conf.Stream.Interval, conf.API.AllowedCORSDomains),
		health:      v1.NewHealthHandler(db),
		graphql:     v1.NewGraphQLHandler(userSvc, swipeSvc),
	}
	s.MountHandlers(h)

	return s
}

func (s *Server) initUserService(db *gorm.DB) *service.UserService {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	swipes := repository.NewSwipeRepository(dao.NewSwipeDAO(db))

	return service.NewUserService(dao.NewTransactor(db), repo, swipes, s.notifier)
}

func (s *Server) initSwipeService(db *gorm.DB) *service.SwipeService {
	users := repository.NewUserRepository(dao.NewUserDAO(db))
	swipes := repository.NewSwipeRepository(dao.NewSwipeDAO(db))
	transactions := repository.NewTransactionRepository(dao.NewTransactionDAO(db))

	return service.NewSwipeService(dao.NewTransactor(db), users, swipes, transactions, s.notifier)
}

func (s *Server) initPointsHandler(db *gorm.DB) *v1.PointsHandler {
	users := repository.NewUserRepository(dao.NewUserDAO(db))
	pool := repository.NewPointsPoolRepository(dao.NewPointsPoolDAO(db))
	transactions := repository.NewTransactionRepository(dao.NewTransactionDAO(db))
	svc := service.NewPointsService(dao.NewTransactor(db), users, pool, transactions, s.notifier)

	return v1.NewPointsHandler(svc)
}

func (s *Server) initTransactionHandler(db *gorm.DB) *v1.TransactionHandler {
	repo := repository.NewTransactionRepository(dao.NewTransactionDAO(db))
	users := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewTransactionService(repo, users)

	return v1.NewTransactionHandler(svc)
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(middleware.CorrelationID())
	s.Router.Use(middleware.Logger())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(metrics.Middleware())
}

func (s *Server) MountHandlers(h handlers) {
	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)
	limiter := middleware.NewRateLimiter(s.Config.RateLimit.RPS, s.Config.RateLimit.Burst)

	public := s.Router.Group(basePath, limiter.Handler())
	{
		public.POST("/admin/login", h.auth.HandleAdminLogin)
	}

	users := s.Router.Group(basePath, authenticator.VerifyJWT(), limiter.Handler())
	{
		users.POST("/login", h.auth.HandleLogin)
		users.GET("/users/:uni", h.user.HandleGetUser)
		users.GET("/ws/:uni", h.stream.HandleStream)

		users.POST("/swipes/donate", h.swipe.HandleDonate)
		users.POST("/swipes/claim", h.swipe.HandleClaim)
		users.GET("/swipes/donated", h.swipe.HandleListDonated)

		users.POST("/points/donate", h.points.HandleDonate)
		users.POST("/points/claim", h.points.HandleClaim)
		users.GET("/points/pool", h.points.HandleGetPool)

		users.GET("/transactions/history/:uni", h.transaction.HandleHistory)
		users.GET("/transactions/summary/:uni", h.transaction.HandleSummary)
	}

	admin := s.Router.Group(basePath, authenticator.VerifyJWT(), middleware.RequireAdmin(), limiter.Handler())
	{
		admin.POST("/users", h.user.HandleCreateUser)
		admin.PUT("/users/:uni", h.user.HandleUpdateBalance)
		admin.GET("/admin/users", h.admin.HandleListUsers)
		admin.PUT("/admin/update-user", h.admin.HandleUpdateUser)
		admin.GET("/transactions", h.transaction.HandleListAll)
		admin.POST("/graphql", h.graphql.HandleQuery)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/health", h.health.HandleReadiness)
	s.Router.GET("/metrics", gin.WrapH(metrics.Handler()))

	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Care2Share Ledger API"
	docs.SwaggerInfo.Description = "Meal swipe and dining points donations between students."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
