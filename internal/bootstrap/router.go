package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/qatrack-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/api/http/routes"
	trackerhttp "github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Log         *zap.Logger
	Storage     httpapi.Pinger
	Tracker     *trackerhttp.Handler
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Storage)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterV1(r, routes.V1Deps{Tracker: dep.Tracker})

	return r
}
