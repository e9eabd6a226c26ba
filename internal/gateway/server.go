package gateway

import (
	"github.com/gin-gonic/gin"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/handler/v1/request"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/api/middleware"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/config"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/metrics"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

// NewServer builds the gateway router. ledger is usually a *LedgerClient pointed at gateway.ledger_url.
func NewServer(conf *config.AppConfig, ledger Ledger) *Server {
	gin.SetMode(conf.Gin.Mode)

	s := &Server{
		Config: conf,
		Router: gin.New(),
	}

	s.Router.Use(gin.Recovery())
	s.Router.Use(middleware.CorrelationID())
	s.Router.Use(middleware.Logger())
	s.Router.Use(middleware.ConfigCORS(conf.API.AllowedCORSDomains))
	s.Router.Use(metrics.Middleware())

	h := NewHandler(ledger)
	s.Router.GET("/user/:uni/dashboard", h.HandleDashboard)
	s.Router.POST("/swipes/donate", Passthrough[request.DonateSwipesRequest](h, "/swipes/donate"))
	s.Router.POST("/swipes/claim", Passthrough[request.ClaimSwipesRequest](h, "/swipes/claim"))
	s.Router.POST("/points/donate", Passthrough[request.DonatePointsRequest](h, "/points/donate"))
	s.Router.POST("/points/claim", Passthrough[request.ClaimPointsRequest](h, "/points/claim"))
	s.Router.GET("/health", HandleHealth)

	return s
}
