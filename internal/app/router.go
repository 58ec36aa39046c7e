package app

import (
	"eventhub_backend/docs"
	"eventhub_backend/internal/middleware"
	"eventhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	auth := middleware.AuthMiddleware(a.Config.JWT.Secret, a.services.auth)
	tryAuth := middleware.TryAuthMiddleware(a.Config.JWT.Secret, a.services.auth)

	// 1. accounts and profiles
	a.registerUserRoutes(router, c, auth, tryAuth)

	// 2. events
	a.registerEventRoutes(router, c, auth, tryAuth)

	// 3. tickets, social graph and user content
	a.registerSocialRoutes(router, c, auth)
}

func (a *App) registerUserRoutes(router *gin.Engine, c *controllers, auth, tryAuth gin.HandlerFunc) {
	router.POST("/register", c.auth.Register)
	router.PUT("/register", c.auth.IsUsernameOrEmailUnique)
	router.POST("/login", c.auth.Login)
	router.GET("/third-party-auth", c.auth.ThirdPartyAuth)
	router.POST("/validate/email", c.auth.EmailVerify)
	router.GET("/session", tryAuth, c.auth.Session)

	router.GET("/users", c.user.GetUsers)
	router.POST("/users", c.user.SearchUsers)

	// ?id= is public, the caller's own profile needs a token
	router.GET("/profile", tryAuth, c.user.GetProfile)

	authorized := router.Group("/")
	authorized.Use(auth)
	{
		authorized.PUT("/profile", c.user.EditProfile)
		authorized.PUT("/edit-password", c.auth.ChangePassword)
		authorized.POST("/logout", c.auth.Logout)
		authorized.POST("/host", middleware.HostOnly(), c.analytics.HostAnalytics)
	}
}

func (a *App) registerEventRoutes(router *gin.Engine, c *controllers, auth, tryAuth gin.HandlerFunc) {
	router.POST("/event", c.event.GetEvent)
	router.GET("/event", c.event.TrendingEvents)
	router.GET("/events", c.event.GetAllEvents)
	router.POST("/events", c.event.SearchEvent)
	router.POST("/search", c.event.SearchByTags)
	router.GET("/location", c.event.ClosestEvents)

	router.GET("/host/Event", c.event.GetEvent)
	router.POST("/host/events", tryAuth, c.event.GetHostEvents)

	host := router.Group("/host")
	host.Use(auth, middleware.HostOnly())
	{
		host.POST("/Event", c.event.CreateEvent)
		host.PUT("/Event", c.event.EditEvent)
	}
}

func (a *App) registerSocialRoutes(router *gin.Engine, c *controllers, auth gin.HandlerFunc) {
	authorized := router.Group("/")
	authorized.Use(auth)
	{
		authorized.POST("/purchase", c.purchase.Buy)
		authorized.GET("/purchases", c.purchase.MyPurchases)

		authorized.GET("/favourites", c.social.Favourites)
		authorized.POST("/favourites", c.social.AddFavourite)
		authorized.DELETE("/favourites", c.social.RemoveFavourite)
		authorized.POST("/follow", c.social.Follow)
		authorized.DELETE("/follow", c.social.Unfollow)
		authorized.GET("/friends", c.social.Friends)
		authorized.POST("/friends", c.social.RequestFriend)
		authorized.PUT("/friends", c.social.RespondFriend)

		authorized.GET("/posts", c.community.GetPosts)
		authorized.POST("/posts", c.community.CreatePost)
		authorized.GET("/posts/:id", c.community.GetPost)
		authorized.GET("/comments", c.community.GetComments)
		authorized.POST("/comments", c.community.CreateComment)
		authorized.POST("/reactions", c.community.React)

		authorized.GET("/reviews", c.content.GetReviews)
		authorized.POST("/reviews", c.content.CreateReview)
		authorized.GET("/stories", c.content.GetStories)
		authorized.POST("/stories", c.content.CreateStory)
	}
}
