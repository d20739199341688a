package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/auth"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/service"
)

// Handler bundles the dependencies for tracker HTTP endpoints.
type Handler struct {
	svc    *service.Service
	issuer *auth.TokenIssuer
	log    *zap.Logger
	// authLimit guards the credential endpoints; nil disables it.
	authLimit gin.HandlerFunc
}

func New(svc *service.Service, issuer *auth.TokenIssuer, log *zap.Logger, authLimit gin.HandlerFunc) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, issuer: issuer, log: log, authLimit: authLimit}
}
