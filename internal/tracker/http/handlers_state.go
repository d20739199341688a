package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/seed"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

// state returns the whole state tree with passwords removed.
func (h *Handler) state(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "state": publicState(h.svc.State())})
}

func (h *Handler) dispatch(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}

	var env state.Envelope
	if err := c.ShouldBindJSON(&env); err != nil || env.Type == "" {
		badBody(c)
		return
	}
	action, err := state.ParseAction(env)
	if err != nil {
		h.writeError(c, err)
		return
	}

	next, err := h.svc.Dispatch(c.Request.Context(), u, action)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "type": action.Type(), "state": publicState(next)})
}

func publicState(s state.State) state.State {
	if s.Auth.User != nil {
		u := redact(*s.Auth.User)
		s.Auth.User = &u
	}
	s.Users = redactAll(s.Users)
	return s
}

func (h *Handler) programTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "programTypes": seed.ProgramTypes})
}

// activityCatalog returns the built-in activity names for a type and association.
func (h *Handler) activityCatalog(c *gin.Context) {
	t := domain.ActivityType(c.Query("type"))
	a := domain.Association(c.Query("associatedWith"))
	if !t.Valid() || !a.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "type and associatedWith are required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "activities": seed.CatalogFor(t, a)})
}
