package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"focusdo/internal/auth"
	"focusdo/internal/cache"
	"focusdo/internal/config"
	apperrors "focusdo/internal/errors"
	"focusdo/internal/handler"
	"focusdo/internal/repository"
)

// Register wires routes and middleware. The paths are part of the published
// API and must stay stable.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users repository.UserRepository,
	cacheClient *cache.Client,
	authHandler *handler.AuthHandler,
	todoHandler *handler.TodoHandler,
	pomodoroHandler *handler.PomodoroHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "API is running (with auth)",
			"routes":  []string{"/auth/*", "/todos/*", "/pomodoro/*", "/swagger/index.html"},
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/seed_demo", authHandler.SeedDemo)

	// Secured routes: the JWT middleware checks signature and expiry, then
	// CurrentUser resolves the subject to a stored user. Any failure in
	// either stage collapses to the same opaque 401.
	secured := []echo.MiddlewareFunc{
		echojwt.WithConfig(echojwt.Config{
			SigningKey:    []byte(cfg.SecretKey),
			SigningMethod: cfg.Algorithm,
			ErrorHandler: func(c echo.Context, err error) error {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrInvalidToken)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			},
		}),
		auth.CurrentUser(users, cacheClient),
	}

	e.GET("/auth/me", authHandler.Me, secured...)

	todos := e.Group("/todos", secured...)
	todos.GET("/", todoHandler.List)
	todos.POST("/", todoHandler.Create)
	todos.GET("/calendar.ics", todoHandler.ExportICS)
	todos.GET("/export.csv", todoHandler.ExportCSV)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)
	todos.POST("/:id/steps", todoHandler.AddStep)
	todos.PUT("/steps/:step_id", todoHandler.UpdateStep)
	todos.DELETE("/steps/:step_id", todoHandler.DeleteStep)

	pomodoro := e.Group("/pomodoro", secured...)
	pomodoro.POST("/start", pomodoroHandler.Start)
	pomodoro.POST("/stop", pomodoroHandler.Stop)
	pomodoro.GET("/summary", pomodoroHandler.Summary)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
