// Package web assembles the gin engine: middleware, templates, and the
// customer and admin route tables.
package web

import (
	"log"
	stdhttp "net/http"
	"time"

	"boletera/internal/config"
	h "boletera/internal/http/handlers"
	"boletera/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env config.Env, hs *h.Handlers, templatesGlob string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	// Everything here is same-origin; CORS only matters when an operator
	// fronts the pages from another host.
	if len(env.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     env.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
			AllowCredentials: true,
			MaxAge:           24 * time.Hour,
		}))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	if templatesGlob != "" {
		r.LoadHTMLGlob(templatesGlob)
	}
	r.Static("/static", "./web/static")

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "página no encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	// Customer booking wizard
	r.GET("/", hs.Home)
	r.POST("/ruta", hs.SelectRuta)
	r.POST("/fecha", hs.SetFecha)
	r.POST("/corrida", hs.SelectCorrida)
	r.POST("/asiento", hs.ToggleAsiento)
	r.POST("/confirmar-asientos", hs.ConfirmarAsientos)
	r.POST("/reservar", hs.Reservar)
	r.POST("/volver", hs.Volver)
	r.POST("/reiniciar", hs.Reiniciar)

	// Payment return pages
	r.GET("/pago-exitoso", hs.PagoExitoso)
	r.GET("/pago-cancelado", hs.PagoCancelado)

	// Admin console
	login := r.Group("/admin/login", middleware.LoginRedirect())
	{
		login.GET("", hs.LoginPage)
		login.POST("", hs.Login)
	}

	admin := r.Group("/admin", middleware.AdminGuard())
	{
		admin.POST("/logout", hs.Logout)

		admin.GET("/rutas", hs.AdminRutas)
		admin.POST("/rutas", hs.CrearRuta)

		admin.GET("/corridas", hs.AdminCorridas)
		admin.POST("/corridas", hs.CrearCorrida)
		admin.POST("/corridas/:id", hs.ActualizarCorrida)
		admin.POST("/corridas/:id/eliminar", hs.EliminarCorrida)

		admin.GET("/manifiesto", hs.AdminManifiesto)

		admin.GET("/validar", hs.ValidarPage)
		admin.POST("/validar", hs.Validar)
	}

	return r
}
