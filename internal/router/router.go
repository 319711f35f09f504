package router

import (
	"time"

	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/audit"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/config"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/handler"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/middleware"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/repository"
	"github.com/jaramilloedison985-tech/trabajo-final-backend-fumc/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires repositories, services, and handlers onto a Gin engine.
// rdb may be nil when Redis is not configured.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
		middleware.RateLimiter(cfg.RateLimitPerMin, time.Minute),
		middleware.Grupo(cfg.GrupoEstudiante),
	)

	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	auditoriaRepo := repository.NewAuditoriaRepository(db)
	auditor := audit.NewRecorder()

	productoSvc := service.NewProductoService(productoRepo, auditor, rdb, cfg.CacheTTL)
	clienteSvc := service.NewClienteService(clienteRepo, auditor)
	auditoriaSvc := service.NewAuditoriaService(auditoriaRepo)

	productos := handler.NewProductosHandler(productoSvc)
	clientes := handler.NewClientesHandler(clienteSvc)
	auditoria := handler.NewAuditoriaHandler(auditoriaSvc)

	r.GET("/health", handler.Health(db, rdb))

	p := r.Group("/productos")
	{
		p.POST("", productos.Crear)
		p.GET("", productos.Listar)
		p.GET("/buscar/nombre", productos.BuscarPorNombre)
		p.GET("/:id", productos.ObtenerPorID)
		p.PUT("/:id", productos.Actualizar)
		p.DELETE("/:id", productos.Eliminar)
	}

	c := r.Group("/clientes")
	{
		c.POST("", clientes.Crear)
		c.GET("", clientes.Listar)
		c.GET("/buscar/nombre", clientes.BuscarPorNombre)
		c.GET("/buscar/email/:email", clientes.BuscarPorEmail)
		c.GET("/:id", clientes.ObtenerPorID)
		c.PUT("/:id", clientes.Actualizar)
		c.DELETE("/:id", clientes.Eliminar)
	}

	a := r.Group("/auditoria")
	{
		a.GET("", auditoria.Listar)
		a.GET("/grupo/:grupo", auditoria.PorGrupo)
		a.GET("/tabla/:tabla", auditoria.PorTabla)
		a.GET("/operacion/:operacion", auditoria.PorOperacion)
		a.GET("/registro/:tabla/:id", auditoria.PorRegistro)
	}

	return r
}
