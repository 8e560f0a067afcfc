package api

import (
	"github.com/kuperiu/bimsyncManager/internal/api/handler"
	"github.com/kuperiu/bimsyncManager/pkg/router"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/kuperiu/bimsyncManager/docs"
)

func RegisterRoutes(r *router.Router, h *handler.TakeoffHandler) {
	r.GET("/health", handler.Health)
	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))

	// More specific routes first
	r.POST("/api/v1/takeoffs/columns", h.ListColumns)
	r.GET("/api/v1/takeoffs/*/rows", h.GetTakeoffRows)
	r.GET("/api/v1/takeoffs/*/errors", h.GetTakeoffErrors)
	r.POST("/api/v1/takeoffs", h.CreateTakeoff)
	r.GET("/api/v1/takeoffs", h.ListTakeoffs)
	r.GET("/api/v1/takeoffs/*", h.GetTakeoff)
	r.DELETE("/api/v1/takeoffs/*", h.DeleteTakeoff)
}
