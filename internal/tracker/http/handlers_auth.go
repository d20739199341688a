package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/auth"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/service"
)

type loginReq struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	u, err := h.svc.Authenticate(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeSession(c, http.StatusOK, u)
}

func (h *Handler) register(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	u, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeSession(c, http.StatusCreated, u)
}

func (h *Handler) writeSession(c *gin.Context, status int, u domain.User) {
	token, exp, err := h.issuer.Issue(u)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(status, gin.H{
		"ok":          true,
		"token":       token,
		"expiresAt":   exp,
		"user":        redact(u),
		"permissions": domain.PermissionsFor(u.Role),
	})
}

func (h *Handler) logout(c *gin.Context) {
	h.svc.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) me(c *gin.Context) {
	u, ok := h.actor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"user":        redact(u),
		"roleName":    u.Role.DisplayName(),
		"permissions": domain.PermissionsFor(u.Role),
	})
}

// actor loads the current record of the token holder, so role changes and
// deletions take effect before the token expires.
func (h *Handler) actor(c *gin.Context) (domain.User, bool) {
	u, err := h.svc.Me(auth.UserID(c))
	if err != nil {
		h.writeError(c, err)
		return domain.User{}, false
	}
	return u, true
}

func (h *Handler) permissions(c *gin.Context) {
	if id := auth.UserID(c); id != "" {
		if u, err := h.svc.Me(id); err == nil {
			c.JSON(http.StatusOK, gin.H{"ok": true, "role": u.Role, "permissions": domain.PermissionsFor(u.Role)})
			return
		}
	}

	matrix := make(map[domain.Role][]domain.Permission, len(domain.Roles))
	for _, r := range domain.Roles {
		matrix[r] = domain.PermissionsFor(r)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "matrix": matrix})
}

func redact(u domain.User) domain.User {
	u.Password = ""
	return u
}

func redactAll(users []domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, redact(u))
	}
	return out
}
