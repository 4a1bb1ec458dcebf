package router

import (
	"time"

	"arkos/internal/config"
	"arkos/internal/handler"
	"arkos/internal/infra"
	"arkos/internal/middleware"
	"arkos/internal/repository"
	"arkos/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB, storage *infra.Storage) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.UploadMaxBytes

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitRequests, time.Duration(cfg.RateLimitWindowS)*time.Second))

	// ── Repositories ─────────────────────────────────────────────────────────
	colorRepo := repository.NewColorRepository(db)
	telaRepo := repository.NewTelaRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	estampadoRepo := repository.NewEstampadoRepository(db)
	combinacionRepo := repository.NewCombinacionRepository(db)
	precioRepo := repository.NewPrecioRepository(db)
	ventaRepo := repository.NewVentaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	colorSvc := service.NewColorService(colorRepo)
	telaSvc := service.NewTelaService(telaRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	estampadoSvc := service.NewEstampadoService(estampadoRepo)
	combinacionSvc := service.NewCombinacionService(combinacionRepo)
	precioSvc := service.NewPrecioService(precioRepo, ventaRepo)
	ventaSvc := service.NewVentaService(ventaRepo, precioRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	coloresH := handler.NewColoresHandler(colorSvc)
	telasH := handler.NewTelasHandler(telaSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	estampadosH := handler.NewEstampadosHandler(estampadoSvc, storage)
	combinacionesH := handler.NewCombinacionesHandler(combinacionSvc, storage)
	preciosH := handler.NewPreciosHandler(precioSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db))

	// Stored images are served straight from disk.
	r.Static("/uploads", storage.BaseDir())

	api := r.Group("/api")
	{
		colores := api.Group("/colores")
		{
			colores.POST("", coloresH.Crear)
			colores.GET("", coloresH.Listar)
			colores.GET("/:id", coloresH.Obtener)
			colores.PUT("/:id", coloresH.Actualizar)
			colores.DELETE("/:id", coloresH.Desactivar)
		}

		telas := api.Group("/telas")
		{
			telas.POST("", telasH.Crear)
			telas.GET("", telasH.Listar)
			telas.GET("/:id", telasH.Obtener)
			telas.PUT("/:id", telasH.Actualizar)
			telas.DELETE("/:id", telasH.Desactivar)
		}

		proveedores := api.Group("/proveedores")
		{
			proveedores.POST("", proveedoresH.Crear)
			proveedores.GET("", proveedoresH.Listar)
			proveedores.GET("/:id", proveedoresH.Obtener)
			proveedores.PUT("/:id", proveedoresH.Actualizar)
			proveedores.DELETE("/:id", proveedoresH.Desactivar)
		}

		estampados := api.Group("/estampados")
		{
			estampados.POST("", estampadosH.Crear)
			estampados.GET("", estampadosH.Listar)
			estampados.GET("/:id", estampadosH.Obtener)
			estampados.PUT("/:id", estampadosH.Actualizar)
			estampados.DELETE("/:id", estampadosH.Desactivar)
		}

		combinaciones := api.Group("/combinaciones")
		{
			combinaciones.POST("", combinacionesH.Crear)
			combinaciones.GET("", combinacionesH.Listar)
			combinaciones.GET("/:id", combinacionesH.Obtener)
			combinaciones.PUT("/:id", combinacionesH.Actualizar)
			combinaciones.DELETE("/:id", combinacionesH.Desactivar)
		}

		precios := api.Group("/precios-combinaciones")
		{
			precios.POST("", preciosH.Crear)
			precios.GET("", preciosH.Listar)
			// Fixed paths are registered before /:id so Gin never shadows them.
			precios.GET("/dashboard", preciosH.Dashboard)
			precios.GET("/combinacion/:combinacionId", preciosH.ObtenerPorCombinacion)
			precios.GET("/:id", preciosH.Obtener)
			precios.PUT("/:id", preciosH.Actualizar)
			precios.DELETE("/:id", preciosH.Desactivar)
		}

		ventas := api.Group("/ventas")
		{
			ventas.POST("", ventasH.Crear)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/:id", ventasH.Obtener)
			ventas.GET("/:id/recibo", ventasH.Recibo)
			ventas.PUT("/:id", ventasH.Actualizar)
			ventas.DELETE("/:id", ventasH.Eliminar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
