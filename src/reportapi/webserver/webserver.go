package webserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/redcell-sec/reportbot/src/reportapi/config"
	"github.com/redcell-sec/reportbot/src/shared/store"
)

func New(cfg config.Config, db *gorm.DB) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery(), cors.Default())
	attachRoutes(g, cfg, db)
	return g
}

func attachRoutes(g *gin.Engine, cfg config.Config, db *gorm.DB) {
	auth := NewAuth(cfg.JWTSecret, cfg.OperatorToken)
	reports := NewReports(store.New(db))

	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	v1 := g.Group("/v1")
	v1.POST("/auth/login", auth.Login)

	authed := v1.Group("", JWTMiddleware(cfg.JWTSecret))
	authed.GET("/categories", reports.Categories)
	authed.GET("/reports", reports.List)
	authed.GET("/reports/stats", reports.Stats)
	authed.GET("/reports/export", reports.ExportPDF)
}
