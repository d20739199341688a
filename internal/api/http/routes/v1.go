package routes

import (
	"github.com/gin-gonic/gin"

	trackerhttp "github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/http"
)

type V1Deps struct {
	Tracker *trackerhttp.Handler
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	dep.Tracker.Register(api)
}
