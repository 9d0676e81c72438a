package server

import (
	"github.com/labstack/echo/v4"

	"example.com/cozyshare/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	householdHandler *handlers.HouseholdHandler,
	choreHandler *handlers.ChoreHandler,
	groceryHandler *handlers.GroceryHandler,
	noticeHandler *handlers.NoticeHandler,
	expenseHandler *handlers.ExpenseHandler,
	settlementHandler *handlers.SettlementHandler,
	eventHandler *handlers.EventHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	households := api.Group("/households", authMiddleware)
	households.GET("/:code/members", householdHandler.Members)

	chores := api.Group("/chores", authMiddleware)
	chores.GET("", choreHandler.List)
	chores.POST("", choreHandler.Create)
	chores.PATCH("/:id/toggle", choreHandler.Toggle)
	chores.DELETE("/:id", choreHandler.Delete)

	groceries := api.Group("/groceries", authMiddleware)
	groceries.GET("", groceryHandler.List)
	groceries.POST("", groceryHandler.Create)
	groceries.GET("/history", groceryHandler.History)
	groceries.PATCH("/:id/toggle", groceryHandler.Toggle)
	groceries.DELETE("/:id", groceryHandler.Delete)

	notices := api.Group("/notices", authMiddleware)
	notices.GET("", noticeHandler.List)
	notices.POST("", noticeHandler.Create)
	notices.PUT("/:id", noticeHandler.Update)
	notices.PATCH("/:id/like", noticeHandler.Like)
	notices.POST("/:id/comments", noticeHandler.Comment)
	notices.DELETE("/:id", noticeHandler.Delete)

	expenses := api.Group("/expenses", authMiddleware)
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.GET("/export/json", expenseHandler.ExportJSON)
	expenses.GET("/export/csv", expenseHandler.ExportCSV)
	expenses.DELETE("/:id", expenseHandler.Delete)

	settlements := api.Group("/settlements", authMiddleware)
	settlements.GET("", settlementHandler.List)
	settlements.POST("", settlementHandler.Create)
	settlements.DELETE("/:id", settlementHandler.Delete)

	events := api.Group("/events", authMiddleware)
	events.GET("/stream", eventHandler.Stream)
}
