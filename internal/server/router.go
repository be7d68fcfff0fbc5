package server

import (
	"net/http"

	"auction-rooms/internal/identity"
	"auction-rooms/services/auction/handler"
	"auction-rooms/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService handler.AuctionServiceInterface, verifier *identity.Verifier) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"status": "ok"}, "service is healthy")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auctionHandler := handler.NewAuctionHandler(auctionService)

	ads := router.Group("/ads", verifier.Middleware())
	{
		ads.POST("", auctionHandler.CreateAdHandler)
		ads.GET("", auctionHandler.ListAdsHandler)
		ads.GET("/:id", auctionHandler.GetAdHandler)
		ads.PATCH("/:id", auctionHandler.UpdateAdHandler)
		ads.PUT("/:id", auctionHandler.UpdateAdHandler)
		ads.POST("/:id/bids", auctionHandler.PlaceBidHandler)
		ads.GET("/:id/bids", auctionHandler.GetBidsHandler)
		ads.GET("/:id/room", auctionHandler.GetRoomHandler)
	}

	return router
}
