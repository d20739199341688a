package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/service"
)

func (h *Handler) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": h.svc.Projects()})
}

func (h *Handler) myProjects(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": h.svc.ProjectsForUser(u)})
}

func (h *Handler) createProject(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var req service.CreateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	p, err := h.svc.CreateProject(c.Request.Context(), u, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

type updateProjectReq struct {
	Name        string `json:"name"`
	ProgramType string `json:"programType"`
}

func (h *Handler) updateProject(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var req updateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	p, err := h.svc.UpdateProject(c.Request.Context(), u, domain.Project{
		ID:          c.Param("id"),
		Name:        req.Name,
		ProgramType: req.ProgramType,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) deleteProject(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteProject(c.Request.Context(), u, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type assignReq struct {
	SubsystemID string `json:"subsystemId"`
}

func (h *Handler) assignSubsystem(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	m, err := h.svc.AssignSubsystem(c.Request.Context(), u, c.Param("id"), req.SubsystemID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "mapping": m})
}

func (h *Handler) listMappings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "mappings": h.svc.State().ProjectSubsystemMappings})
}

func (h *Handler) listSubsystems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "subsystems": h.svc.State().Subsystems})
}

func (h *Handler) createSubsystem(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var req service.CreateSubsystemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	sub, err := h.svc.CreateSubsystem(c.Request.Context(), u, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "subsystem": sub})
}

type renameReq struct {
	Name string `json:"name"`
}

func (h *Handler) updateSubsystem(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	sub, err := h.svc.UpdateSubsystem(c.Request.Context(), u, domain.Subsystem{ID: c.Param("id"), Name: req.Name})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "subsystem": sub})
}

func (h *Handler) deleteSubsystem(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteSubsystem(c.Request.Context(), u, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
