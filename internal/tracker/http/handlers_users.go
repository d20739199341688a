package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/service"
)

func (h *Handler) listUsers(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	users, err := h.svc.Users(u)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "users": redactAll(users)})
}

func (h *Handler) createUser(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var req service.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	created, err := h.svc.CreateUser(c.Request.Context(), u, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": redact(created)})
}

func (h *Handler) updateUser(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	var req service.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	req.ID = c.Param("id")

	updated, err := h.svc.UpdateUser(c.Request.Context(), u, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": redact(updated)})
}

func (h *Handler) deleteUser(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), u, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
