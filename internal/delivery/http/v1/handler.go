package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleGetMe(c *gin.Context)
	HandleUpdateProfile(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)
	RequireRole(roles ...models.Role) gin.HandlerFunc

	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleGetTaskStats(c *gin.Context)

	HandleGetUsers(c *gin.Context)
	HandleGetUser(c *gin.Context)
	HandleUpdateUser(c *gin.Context)
	HandleDeleteUser(c *gin.Context)
	HandleGetUserStats(c *gin.Context)

	HandleHealth(c *gin.Context)
	HandleDetailedHealth(c *gin.Context)
	HandlePing(c *gin.Context)
}

type handlerImpl struct {
	logger    zerolog.Logger
	auth      services.AuthService
	tasks     services.TaskService
	users     services.UserService
	checks    []HealthCheck
	validate  *validator.Validate
	startedAt time.Time
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	taskService services.TaskService,
	userService services.UserService,
	checks ...HealthCheck,
) Handler {
	return &handlerImpl{
		logger:    logger,
		auth:      authService,
		tasks:     taskService,
		users:     userService,
		checks:    checks,
		validate:  newValidator(),
		startedAt: time.Now(),
	}
}

// RegisterRoutes mounts the API under /api. authLimits run before the
// public register and login handlers.
func RegisterRoutes(router gin.IRouter, h Handler, authLimits ...gin.HandlerFunc) {
	api := router.Group("/api")

	health := api.Group("/health")
	health.GET("", h.HandleHealth)
	health.GET("/detailed", h.HandleDetailedHealth)
	health.GET("/ping", h.HandlePing)

	auth := api.Group("/auth")
	auth.POST("/register", withPrefix(authLimits, h.HandleRegister)...)
	auth.POST("/login", withPrefix(authLimits, h.HandleLogin)...)
	auth.GET("/me", h.HandleAuthMiddleware, h.HandleGetMe)
	auth.PUT("/profile", h.HandleAuthMiddleware, h.HandleUpdateProfile)

	tasks := api.Group("/tasks", h.HandleAuthMiddleware)
	tasks.GET("", h.HandleGetTasks)
	tasks.POST("", h.HandleCreateTask)
	tasks.GET("/user/stats", h.HandleGetTaskStats)
	tasks.GET("/:id", h.HandleGetTask)
	tasks.PUT("/:id", h.HandleUpdateTask)
	tasks.DELETE("/:id", h.HandleDeleteTask)

	users := api.Group("/users", h.HandleAuthMiddleware, h.RequireRole(models.RoleAdmin))
	users.GET("", h.HandleGetUsers)
	users.GET("/admin/stats", h.HandleGetUserStats)
	users.GET("/:id", h.HandleGetUser)
	users.PUT("/:id", h.HandleUpdateUser)
	users.DELETE("/:id", h.HandleDeleteUser)
}

func withPrefix(prefix []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(prefix)+1)
	chain = append(chain, prefix...)
	return append(chain, handler)
}
