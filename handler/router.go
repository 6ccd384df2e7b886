package handler

import (
	"net/http"
	"time"

	"github.com/Josesitobb/adcu-client/config"
	"github.com/Josesitobb/adcu-client/middleware"
	"github.com/Josesitobb/adcu-client/model"
	"github.com/Josesitobb/adcu-client/service"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the stub server: the full REST contract the mobile and CLI
// clients consume, behind the standard middleware stack.
func NewRouter(cfg *config.StubConfig, store *service.Store, objects service.ObjectStore) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimit(cfg.RateLimit, time.Minute))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	authHandler := NewAuthHandler(cfg, store)
	usersHandler := NewUsersHandler(store)
	contractsHandler := NewContractsHandler(store)
	documentsHandler := NewDocumentsHandler(store, objects)
	dataHandler := NewDataHandler(store, service.NewAnalyzer(store, objects, cfg.AnalysisDelay))
	verificationHandler := NewVerificationHandler(store)

	api := router.Group("/api")
	api.POST("/auth/signin", authHandler.SignIn)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.POST("/auth/register", middleware.RequireRole(model.RoleAdmin), authHandler.Register)
		protected.POST("/auth/verify", authHandler.Verify)
		protected.POST("/auth/refresh", authHandler.Refresh)

		protected.GET("/Users", usersHandler.List)
		protected.GET("/Users/:id", usersHandler.Get)
		protected.POST("/Users", middleware.RequireRole(model.RoleAdmin), usersHandler.CreateContractor)
		protected.PUT("/Users/:id", middleware.RequireRole(model.RoleAdmin), usersHandler.UpdateContractor)

		protected.GET("/Contracts", contractsHandler.List)
		protected.GET("/Contracts/:id", contractsHandler.Get)
		protected.POST("/Contracts", middleware.RequireRole(model.RoleAdmin), contractsHandler.Create)
		protected.PUT("/Contracts/:id", middleware.RequireRole(model.RoleAdmin), contractsHandler.Update)

		protected.GET("/Documents", documentsHandler.List)
		protected.GET("/Documents/:contractorId", documentsHandler.Get)
		protected.POST("/Documents/:contractorId", documentsHandler.Upload)
		protected.PUT("/Documents/:contractorId", documentsHandler.Replace)

		protected.GET("/Data", dataHandler.List)
		protected.GET("/Data/:managementId", dataHandler.Get)
		protected.POST("/Data", dataHandler.Run)

		protected.GET("/Verification/", verificationHandler.List)
	}

	return router
}
