package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hireboard/api/internal/api/handlers"
	"github.com/hireboard/api/internal/api/middleware"
)

type Deps struct {
	JWTSecret string

	Auth        *handlers.AuthHandler
	Job         *handlers.JobHandler
	Intake      *handlers.IntakeHandler
	Application *handlers.ApplicationHandler
	Tag         *handlers.TagHandler
	Board       *handlers.BoardHandler
	Alert       *handlers.AlertHandler
	WS          *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public surface: listings, intake, alerts
	r.GET("/jobs", d.Job.ListOpen)
	r.GET("/jobs/:id", d.Job.Get)
	r.POST("/applications", d.Intake.Submit)
	r.POST("/job-alerts", d.Alert.Subscribe)
	r.DELETE("/job-alerts/:id", d.Alert.Unsubscribe)

	r.POST("/auth/login", d.Auth.Login)

	// HR surface (JWT)
	admin := r.Group("/admin")
	admin.Use(middleware.JWTAuth(d.JWTSecret))
	admin.Use(middleware.RequireRole("admin", "recruiter"))

	admin.GET("/applications", d.Application.List)
	admin.GET("/applications/:id", d.Application.Get)
	admin.PUT("/applications/:id/status", d.Application.UpdateStatus)
	admin.GET("/applications/:id/history", d.Application.History)
	admin.GET("/applications/:id/similar", d.Application.Similar)
	admin.POST("/applications/:id/reanalyze", d.Application.Reanalyze)

	admin.GET("/applications/:id/tags", d.Tag.ListForApplication)
	admin.POST("/applications/:id/tags", d.Tag.Attach)
	admin.DELETE("/applications/:id/tags/:tag_id", d.Tag.Detach)

	admin.GET("/candidate-tags", d.Tag.List)
	admin.POST("/candidate-tags", d.Tag.Create)
	admin.PUT("/candidate-tags/:id", d.Tag.Update)
	admin.DELETE("/candidate-tags/:id", d.Tag.Delete)

	admin.GET("/board", d.Board.Snapshot)
	admin.GET("/ws/board", d.WS.BoardFeed)

	admin.GET("/jobs", d.Job.ListAll)
	admin.POST("/jobs", d.Job.Create)
	admin.PUT("/jobs/:id", d.Job.Update)
	admin.DELETE("/jobs/:id", d.Job.Delete)

	// Creating HR accounts is admin-only.
	adminOnly := r.Group("/auth")
	adminOnly.Use(middleware.JWTAuth(d.JWTSecret), middleware.RequireAdmin())
	adminOnly.POST("/register", d.Auth.Register)
}
