package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/config"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/handler"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/middleware"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/repository"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/service"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	cajaRepo := repository.NewCajaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	devolucionRepo := repository.NewDevolucionRepository(db)
	impuestoRepo := repository.NewImpuestoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)
	arqueoSvc := service.NewArqueoService(pagoRepo, movimientoRepo, devolucionRepo)
	cajaSvc := service.NewCajaService(cajaRepo, movimientoRepo, devolucionRepo, arqueoSvc, dispatcher, cfg.EmailSupervisor)
	impuestoSvc := service.NewImpuestoService(impuestoRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	cajaH := handler.NewCajaHandler(cajaSvc)
	impuestosH := handler.NewImpuestosHandler(impuestoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.Abrir)
			caja.GET("/activa", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.Activa)
			caja.GET("/arqueo", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.Arqueo)
			caja.POST("/cierre", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.Cerrar)
			caja.POST("/movimiento", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.RegistrarMovimiento)
			caja.POST("/devolucion", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.RegistrarDevolucion)
			caja.GET("/:id/reporte", middleware.RequireRole("supervisor", "administrador"), cajaH.Reporte)
			caja.GET("/historial", middleware.RequireRole("supervisor", "administrador"), cajaH.Historial)
		}

		impuestos := v1.Group("/impuestos")
		{
			impuestos.POST("/calcular", middleware.RequireRole("cajero", "supervisor", "administrador"), impuestosH.Calcular)
			impuestos.GET("/tasas", middleware.RequireRole("cajero", "supervisor", "administrador"), impuestosH.Tasas)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
