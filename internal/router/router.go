package router

import (
	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	ListCities(c *ginext.Context)
	ListHotels(c *ginext.Context)
	GetHotel(c *ginext.Context)
	Quote(c *ginext.Context)
	Resolve(c *ginext.Context)
	Health(c *ginext.Context)
}

func InitRouter(mode string, h Handler, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Catalog
		api.GET("/cities", h.ListCities)
		api.GET("/cities/:id/hotels", h.ListHotels)
		api.GET("/hotels/:id", h.GetHotel)
		api.POST("/quote", h.Quote)

		// Intent debugging
		api.POST("/resolve", h.Resolve)
	}

	router.GET("/health", h.Health)

	return router
}
