package http

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/auth"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/auth/middleware"
)

// Register attaches tracker routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	creds := rg.Group("/auth")
	if h.authLimit != nil {
		creds.Use(h.authLimit)
	}
	creds.POST("/login", h.login)
	creds.POST("/register", h.register)

	rg.GET("/catalog/program-types", h.programTypes)
	rg.GET("/catalog/activities", h.activityCatalog)
	rg.GET("/permissions", auth.OptionalUser(h.issuer), h.permissions)

	priv := rg.Group("", middleware.RequireUser(h.issuer))
	priv.POST("/auth/logout", h.logout)
	priv.GET("/auth/me", h.me)

	priv.GET("/state", h.state)
	priv.POST("/dispatch", h.dispatch)

	priv.GET("/projects", h.listProjects)
	priv.GET("/projects/mine", h.myProjects)
	priv.POST("/projects", h.createProject)
	priv.PUT("/projects/:id", h.updateProject)
	priv.DELETE("/projects/:id", h.deleteProject)
	priv.PUT("/projects/:id/subsystem", h.assignSubsystem)

	priv.GET("/subsystems", h.listSubsystems)
	priv.POST("/subsystems", h.createSubsystem)
	priv.PUT("/subsystems/:id", h.updateSubsystem)
	priv.DELETE("/subsystems/:id", h.deleteSubsystem)

	priv.GET("/activities", h.listActivities)
	priv.POST("/activities", h.createActivity)
	priv.PUT("/activities/:id", h.updateActivity)
	priv.DELETE("/activities/:id", h.deleteActivity)

	priv.GET("/progress", h.listProgress)
	priv.PUT("/progress", h.setProgress)
	priv.GET("/mappings", h.listMappings)

	priv.GET("/users", h.listUsers)
	priv.POST("/users", h.createUser)
	priv.PUT("/users/:id", h.updateUser)
	priv.DELETE("/users/:id", h.deleteUser)

	priv.POST("/reports/project-activity", h.projectActivityReport)
	priv.POST("/reports/subsystem-activity", h.subsystemActivityReport)
	priv.POST("/reports/timeline", h.timelineReport)
	priv.GET("/reports/:file", h.reportCSV)
}
