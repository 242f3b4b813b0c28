package router

import (
	"taller_manager/constants"
	"taller_manager/handler"
	"taller_manager/middleware"
	"taller_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	usuario := v1.Group("/usuarios", logger.New())
	usuario.Post("/", middleware.Protected(), middleware.RequireRole(constants.ROLE_ADMIN), validate.CreateUsuario(), handler.CreateUsuario)

	cliente := v1.Group("/clientes", logger.New())
	cliente.Get("/", middleware.Protected(), handler.GetClientes)
	cliente.Get("/:clienteId", middleware.Protected(), validate.GetById("clienteId"), handler.GetClienteById)
	cliente.Post("/", middleware.Protected(), validate.CreateCliente(), handler.CreateCliente)
	cliente.Put("/:clienteId", middleware.Protected(), validate.EditCliente("clienteId"), handler.EditCliente)
	cliente.Delete("/:clienteId", middleware.Protected(), middleware.RequireRole(constants.ROLE_ADMIN), validate.GetById("clienteId"), handler.BorrarCliente)

	reparacion := v1.Group("/reparaciones", logger.New())
	reparacion.Get("/", middleware.Protected(), handler.GetReparaciones)
	reparacion.Get("/:reparacionId", middleware.Protected(), validate.GetById("reparacionId"), handler.GetReparacionById)
	reparacion.Post("/", middleware.Protected(), validate.CreateReparacion(), handler.CreateReparacion)
	reparacion.Put("/:reparacionId", middleware.Protected(), validate.EditReparacion("reparacionId"), handler.EditReparacion)
	reparacion.Get("/:reparacionId/pdf", middleware.Protected(), validate.GetById("reparacionId"), handler.GetDocumentoPDF)
	reparacion.Post("/:reparacionId/fotos", middleware.Protected(), validate.GetById("reparacionId"), handler.SubirFotoReparacion)
	reparacion.Delete("/fotos/:fotoId", middleware.Protected(), validate.GetById("fotoId"), handler.BorrarFotoReparacion)

	dashboard := v1.Group("/dashboard", logger.New())
	dashboard.Get("/", middleware.Protected(), handler.GetDashboard)
	dashboard.Get("/ingresos", middleware.Protected(), handler.GetIngresosPorMes)
	dashboard.Get("/ws", websocket.New(handler.DashboardWebsocket))

	// Rutas de compatibilidad con los clientes existentes: rutas planas sin
	// el prefijo /api/v1, son las que usan los formularios y el procesador.
	app.Post("/reparaciones/:reparacionId/marcar-pagado", middleware.Protected(), validate.MarcarPagado("reparacionId"), handler.MarcarPagado)
	app.Get("/reparaciones/borrar/:reparacionId", middleware.Protected(), middleware.RequireRole(constants.ROLE_ADMIN), validate.GetById("reparacionId"), handler.BorrarReparacion)

	publico := app.Group("/publico", logger.New())
	publico.Get("/consulta", handler.ConsultaPublica)
	publico.Get("/reparacion/:codigo", handler.SeguimientoReparacion)
	publico.Get("/reparacion/:codigo/qr", handler.SeguimientoQR)
	publico.Post("/pagar/:id", handler.PagarReparacionPublico)
	publico.Get("/pago-ok", handler.PagoOk)

	app.Post("/webhook", handler.StripeWebhook)
}
