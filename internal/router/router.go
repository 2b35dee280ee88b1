package router

import (
	"time"

	"github.com/luisjoselares/Pegasus-v1/internal/config"
	"github.com/luisjoselares/Pegasus-v1/internal/handler"
	"github.com/luisjoselares/Pegasus-v1/internal/middleware"
	"github.com/luisjoselares/Pegasus-v1/internal/repository"
	"github.com/luisjoselares/Pegasus-v1/internal/service"
	"github.com/luisjoselares/Pegasus-v1/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	configRepo := repository.NewConfiguracionRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	docRepo := repository.NewDocumentoRepository(db)
	kardexRepo := repository.NewKardexRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)

	// Worker dispatcher, injected into services that emit domain events
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	configSvc := service.NewConfiguracionService(configRepo, dispatcher)
	inventarioSvc := service.NewInventarioService(productoRepo, kardexRepo, dispatcher)
	cajaSvc := service.NewCajaService(cajaRepo)
	ventaSvc := service.NewVentaService(docRepo, configRepo, clienteRepo, productoRepo, inventarioSvc, cajaSvc, dispatcher)
	devolucionSvc := service.NewDevolucionService(docRepo, configRepo, clienteRepo, inventarioSvc, cajaSvc, dispatcher)
	compraSvc := service.NewCompraService(compraRepo, proveedorRepo, inventarioSvc, dispatcher)
	reporteSvc := service.NewReporteService(docRepo, cajaRepo, configRepo)
	productoSvc := service.NewProductoService(productoRepo, configRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	ventasH := handler.NewVentasHandler(ventaSvc)
	devolucionesH := handler.NewDevolucionesHandler(devolucionSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	configH := handler.NewConfiguracionHandler(configSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Every /v1 request resolves the acting operator from X-Usuario-ID
	v1 := r.Group("/v1", middleware.UsuarioActuante())
	{
		// Documents: sales, delivery notes and credit notes share the lifecycle
		v1.POST("/ventas", middleware.RequireUsuario(), ventasH.RegistrarVenta)
		v1.GET("/documentos", ventasH.ListarDocumentos)
		v1.GET("/documentos/:numero", ventasH.ObtenerDocumento)

		v1.GET("/devoluciones/factura/:numero", devolucionesH.BuscarFactura)
		v1.POST("/devoluciones", middleware.RequireUsuario(), devolucionesH.ProcesarDevolucion)

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", middleware.RequireUsuario(), cajaH.Abrir)
			caja.POST("/cerrar", middleware.RequireUsuario(), cajaH.Cerrar)
			caja.POST("/movimiento", middleware.RequireUsuario(), cajaH.RegistrarMovimiento)
			caja.GET("/activa", cajaH.Activa)
			caja.GET("/historial", cajaH.Historial)
			caja.GET("/:id/saldos", cajaH.Saldos)
			caja.GET("/:id/resumen", cajaH.Resumen)
			caja.GET("/:id/kardex", cajaH.Kardex)
		}

		inv := v1.Group("/inventario")
		{
			inv.POST("/ajuste", middleware.RequireUsuario(), inventarioH.AjustarStock)
			inv.GET("/:producto_id/kardex", inventarioH.Kardex)
			inv.GET("/:producto_id/verificar", inventarioH.VerificarStock)
		}

		v1.POST("/compras", middleware.RequireUsuario(), comprasH.Registrar)
		v1.GET("/compras", comprasH.Listar)

		reportes := v1.Group("/reportes")
		{
			reportes.GET("/x/:sesion_id", reportesH.ReporteX)
			reportes.POST("/z/:sesion_id", middleware.RequireUsuario(), reportesH.EmitirZ)
		}

		prods := v1.Group("/productos")
		{
			prods.POST("", middleware.RequireUsuario(), productosH.Crear)
			prods.GET("", productosH.Listar)
			prods.GET("/codigo/:codigo", productosH.BuscarPorCodigo)
			prods.GET("/:id", productosH.Obtener)
			prods.PUT("/:id", middleware.RequireUsuario(), productosH.Actualizar)
			prods.DELETE("/:id", middleware.RequireUsuario(), productosH.Desactivar)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.POST("", middleware.RequireUsuario(), clientesH.Guardar)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/cedula/:cedula", clientesH.BuscarPorCedula)
			clientes.GET("/:id", clientesH.Obtener)
		}

		v1.POST("/proveedores", middleware.RequireUsuario(), proveedoresH.Guardar)
		v1.GET("/proveedores", proveedoresH.Listar)

		v1.POST("/categorias", middleware.RequireUsuario(), categoriasH.Crear)
		v1.GET("/categorias", categoriasH.Listar)
		v1.DELETE("/categorias/:id", middleware.RequireUsuario(), categoriasH.Eliminar)

		cfgGrp := v1.Group("/configuracion")
		{
			cfgGrp.GET("/tasas", configH.ObtenerTasas)
			cfgGrp.PUT("/tasas", middleware.RequireUsuario(), configH.ActualizarTasas)
			cfgGrp.GET("/tasas/historial", configH.HistorialTasas)
			cfgGrp.GET("/empresa", configH.ObtenerEmpresa)
			cfgGrp.PUT("/empresa", middleware.RequireUsuario(), configH.GuardarEmpresa)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
