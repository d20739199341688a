package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/service"
)

func (h *Handler) listActivities(c *gin.Context) {
	items := h.svc.Activities(service.ActivityFilter{
		Type:           domain.ActivityType(c.Query("type")),
		AssociatedWith: domain.Association(c.Query("associatedWith")),
	})
	c.JSON(http.StatusOK, gin.H{"ok": true, "activities": items})
}

func (h *Handler) createActivity(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var req service.CreateActivityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	a, err := h.svc.CreateActivity(c.Request.Context(), u, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "activity": a})
}

type updateActivityReq struct {
	Name           string              `json:"name"`
	Type           domain.ActivityType `json:"type"`
	AssociatedWith domain.Association  `json:"associatedWith"`
}

func (h *Handler) updateActivity(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var req updateActivityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	a, err := h.svc.UpdateActivity(c.Request.Context(), u, domain.Activity{
		ID:             c.Param("id"),
		Name:           req.Name,
		Type:           req.Type,
		AssociatedWith: req.AssociatedWith,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "activity": a})
}

func (h *Handler) deleteActivity(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteActivity(c.Request.Context(), u, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listProgress(c *gin.Context) {
	items := h.svc.Progress(service.ProgressFilter{
		ProjectID:   c.Query("projectId"),
		SubsystemID: c.Query("subsystemId"),
		UserID:      c.Query("userId"),
	})
	c.JSON(http.StatusOK, gin.H{"ok": true, "progress": items})
}

func (h *Handler) setProgress(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var req service.SetProgressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	p, err := h.svc.SetProgress(c.Request.Context(), u, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "progress": p})
}
