package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/painelfacil/painel-api/docs"
	"github.com/painelfacil/painel-api/internal/api/handler"
	"github.com/painelfacil/painel-api/internal/api/middleware"
	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/service"
	"github.com/painelfacil/painel-api/internal/infrastructure/db/mongo"
	"github.com/painelfacil/painel-api/internal/menu"
	"github.com/painelfacil/painel-api/internal/realtime"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The hub and resolver are owned by main; everything request-scoped is wired
// here.
func NewRouter(db *mongodriver.Database, rdb *redis.Client, hub *realtime.Hub, resolver *menu.Resolver, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("painel"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Repositories ---
	orderRepo := mongo.NewOrderRepository(db)
	productRepo := mongo.NewProductRepository(db)
	categoryRepo := mongo.NewCategoryRepository(db)
	userRepo := mongo.NewUserRepository(db)
	roleRepo := mongo.NewRoleRepository(db)
	menuRepo := mongo.NewMenuRepository(db)
	appointmentRepo := mongo.NewAppointmentRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, hub, jwtSecret, time.Hour)
	orderService := service.NewOrderService(orderRepo, hub, log)
	productService := service.NewProductService(productRepo, categoryRepo, log)
	userService := service.NewUserService(userRepo, roleRepo, hub, log)
	menuService := service.NewMenuService(menuRepo, hub, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo, hub, log)
	reportService := service.NewReportService(orderRepo, productRepo, userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService)
	menuHandler := handler.NewMenuHandler(menuService, resolver)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	reportHandler := handler.NewReportHandler(reportService)
	streamHandler := handler.NewStreamHandler(hub, log)
	pageHandler := handler.NewPageHandler()

	// --- Operational routes ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Push channel ---
	e.GET("/ws", streamHandler.Serve)

	// --- API routes ---
	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	authMiddleware := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	protected := api.Group("", authMiddleware)
	protected.GET("/orders", orderHandler.List)
	protected.POST("/orders", orderHandler.Create)
	protected.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	protected.DELETE("/orders/:id", orderHandler.Delete)

	protected.GET("/products", productHandler.List)
	protected.POST("/products", productHandler.Create)
	protected.PUT("/products/:id", productHandler.Update)
	protected.DELETE("/products/:id", productHandler.Delete)
	protected.GET("/categories", productHandler.Categories)
	protected.GET("/subcategories", productHandler.Subcategories)

	protected.GET("/menus/role/:id", menuHandler.VisibleByRole)
	protected.GET("/roles", userHandler.Roles)

	protected.GET("/appointments", appointmentHandler.List)
	protected.POST("/appointments", appointmentHandler.Create)
	protected.PUT("/appointments/:id", appointmentHandler.Update)
	protected.PUT("/appointments/:id/reschedule", appointmentHandler.Reschedule)
	protected.DELETE("/appointments/:id", appointmentHandler.Delete)

	protected.GET("/reports", reportHandler.Build)
	protected.GET("/reports/export", reportHandler.Export)

	// User and menu management is restricted to the privileged role.
	admin := protected.Group("", adminOnly)
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)

	admin.GET("/menus", menuHandler.List)
	admin.POST("/menus", menuHandler.Create)
	admin.PUT("/menus/:id", menuHandler.Update)
	admin.DELETE("/menus/:id", menuHandler.Delete)
	admin.POST("/menus/:id/submenus", menuHandler.AddSubmenu)
	admin.PUT("/submenus/:id", menuHandler.UpdateSubmenu)
	admin.DELETE("/submenus/:id", menuHandler.DeleteSubmenu)

	// --- Page routes ---
	// Every other GET is a page navigation: the guard decides, the shell
	// renders. Explicit routes above win over the catch-all.
	e.GET("/*", pageHandler.Shell, middleware.Guard(resolver))
	e.GET("/", pageHandler.Shell, middleware.Guard(resolver))

	return e
}
