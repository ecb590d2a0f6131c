package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App is the application context: one instance built at startup carries the
// database handle, config and caches into every handler. No package-level
// mutable state.
type App struct {
	db    *gorm.DB
	cfg   Config
	users *userCache
}

func NewApp(db *gorm.DB, cfg Config) (*App, error) {
	users, err := newUserCache()
	if err != nil {
		return nil, err
	}
	return &App{db: db, cfg: cfg, users: users}, nil
}

func (a *App) setupRoutes(r *gin.Engine) {
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", a.registerHandler)
	auth.POST("/login", a.loginHandler)
	auth.POST("/refresh", a.refreshHandler)
	auth.POST("/logout", a.logoutHandler)

	protected := api.Group("")
	protected.Use(a.authMiddleware())
	protected.GET("/auth/me", a.meHandler)
	protected.PUT("/auth/password", a.changePasswordHandler)
	protected.DELETE("/auth/me", a.deleteAccountHandler)

	protected.GET("/expenses", a.listExpensesHandler)
	protected.POST("/expenses", a.createExpenseHandler)
	protected.GET("/expenses/categories", a.categoriesHandler)
	protected.GET("/expenses/:id", a.getExpenseHandler)
	protected.PUT("/expenses/:id", a.updateExpenseHandler)
	protected.DELETE("/expenses/:id", a.deleteExpenseHandler)

	protected.GET("/analytics/summary", a.summaryHandler)
	protected.GET("/analytics/by-category", a.byCategoryHandler)
	protected.GET("/analytics/by-month", a.byMonthHandler)
	protected.GET("/analytics/trends", a.trendsHandler)
	protected.GET("/analytics/top-expenses", a.topExpensesHandler)
}
