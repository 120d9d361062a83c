package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/boutique-api/internal/application/analytics"
	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/application/notifications"
	"github.com/jhoicas/boutique-api/internal/application/orders"
	"github.com/jhoicas/boutique-api/internal/application/payments"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	Access          *usecase.AccessService
	UserUC          *usecase.UserUseCase
	RoleUC          *usecase.RoleUseCase
	CustomerUC      *usecase.CustomerUseCase
	OrderUC         *orders.UseCase
	PaymentUC       *payments.UseCase
	ReceiptUC       *payments.ReceiptUseCase
	StockUC         *inventory.StockUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	ReportsUC       *appanalytics.ReportsUseCase
	NotificationUC  *notifications.UseCase
	JWTSecret       string
}

// Router registra las rutas de la API. Cada ruta de negocio pasa por RequireAccess con
// su módulo y verbo; el control de acceso corre antes que cualquier validación del body.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	can := func(m entity.Module, v entity.Verb) fiber.Handler {
		return RequireAccess(m, v, deps.Access)
	}
	read, create, update, del := entity.VerbRead, entity.VerbCreate, entity.VerbUpdate, entity.VerbDelete

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Access)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y cuenta activa)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Access))

	me := protected.Group("/auth")
	me.Post("/logout", authHandler.Logout)
	me.Get("/me", authHandler.Me)
	me.Put("/me", authHandler.UpdateProfile)
	me.Get("/me/access", authHandler.Access)
	me.Post("/change-password", authHandler.ChangePassword)

	// Users (solo owner: el módulo no se puede otorgar a roles propios)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Post("/", can(entity.ModuleUsers, create), userHandler.Create)
	users.Get("/", can(entity.ModuleUsers, read), userHandler.List)
	users.Get("/:id", can(entity.ModuleUsers, read), userHandler.GetByID)
	users.Put("/:id", can(entity.ModuleUsers, update), userHandler.Update)
	users.Patch("/:id/toggle-status", can(entity.ModuleUsers, update), userHandler.ToggleStatus)
	users.Delete("/:id", can(entity.ModuleUsers, del), userHandler.Delete)

	// Roles (solo owner)
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles := protected.Group("/roles")
	roles.Post("/", can(entity.ModuleRoles, create), roleHandler.Create)
	roles.Get("/", can(entity.ModuleRoles, read), roleHandler.List)
	roles.Get("/:id", can(entity.ModuleRoles, read), roleHandler.GetByID)
	roles.Put("/:id", can(entity.ModuleRoles, update), roleHandler.Update)
	roles.Delete("/:id", can(entity.ModuleRoles, del), roleHandler.Delete)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers")
	customers.Post("/", can(entity.ModuleCustomers, create), customerHandler.Create)
	customers.Get("/", can(entity.ModuleCustomers, read), customerHandler.List)
	customers.Get("/:id", can(entity.ModuleCustomers, read), customerHandler.GetByID)
	customers.Put("/:id", can(entity.ModuleCustomers, update), customerHandler.Update)
	customers.Delete("/:id", can(entity.ModuleCustomers, del), customerHandler.Delete)
	customers.Post("/:id/measurements", can(entity.ModuleCustomers, update), customerHandler.AddMeasurement)
	customers.Get("/:id/orders", can(entity.ModuleOrders, read), customerHandler.ListOrders)

	// Orders
	orderHandler := NewOrderHandler(deps.OrderUC)
	paymentHandler := NewPaymentHandler(deps.PaymentUC, deps.ReceiptUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/", can(entity.ModuleOrders, create), orderHandler.Create)
	ordersGroup.Get("/", can(entity.ModuleOrders, read), orderHandler.List)
	ordersGroup.Get("/:id", can(entity.ModuleOrders, read), orderHandler.GetByID)
	ordersGroup.Put("/:id", can(entity.ModuleOrders, update), orderHandler.Update)
	ordersGroup.Patch("/:id/status", can(entity.ModuleOrders, update), orderHandler.ChangeStatus)
	ordersGroup.Patch("/:id/assign", can(entity.ModuleOrders, update), orderHandler.Assign)
	ordersGroup.Delete("/:id", can(entity.ModuleOrders, del), orderHandler.Delete)
	ordersGroup.Get("/:id/balance", can(entity.ModulePayments, read), paymentHandler.OrderBalance)

	// Payments
	paymentsGroup := protected.Group("/payments")
	paymentsGroup.Post("/", can(entity.ModulePayments, create), paymentHandler.Record)
	paymentsGroup.Get("/", can(entity.ModulePayments, read), paymentHandler.List)
	paymentsGroup.Get("/:id", can(entity.ModulePayments, read), paymentHandler.GetByID)
	paymentsGroup.Get("/:id/receipt", can(entity.ModulePayments, read), paymentHandler.Receipt)
	paymentsGroup.Put("/:id", can(entity.ModulePayments, update), paymentHandler.Update)
	paymentsGroup.Delete("/:id", can(entity.ModulePayments, del), paymentHandler.Delete)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.ReplenishmentUC)
	inv := protected.Group("/inventory")
	inv.Post("/", can(entity.ModuleInventory, create), inventoryHandler.Create)
	inv.Get("/", can(entity.ModuleInventory, read), inventoryHandler.List)
	inv.Get("/low-stock", can(entity.ModuleInventory, read), inventoryHandler.ListLowStock)
	inv.Get("/replenishment-list", can(entity.ModuleInventory, read), inventoryHandler.GetReplenishmentList)
	inv.Get("/:id", can(entity.ModuleInventory, read), inventoryHandler.GetByID)
	inv.Put("/:id", can(entity.ModuleInventory, update), inventoryHandler.Update)
	inv.Put("/:id/quantity", can(entity.ModuleInventory, update), inventoryHandler.SetQuantity)
	inv.Post("/:id/adjust", can(entity.ModuleInventory, update), inventoryHandler.Adjust)
	inv.Delete("/:id", can(entity.ModuleInventory, del), inventoryHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", can(entity.ModuleDashboard, read), dashboardHandler.GetSummary)

	// Reports
	reportsHandler := NewReportsHandler(deps.ReportsUC)
	reports := protected.Group("/reports", can(entity.ModuleReports, read))
	reports.Get("/revenue", reportsHandler.Revenue)
	reports.Get("/pending-payments", reportsHandler.PendingPayments)
	reports.Get("/delivery", reportsHandler.Delivery)
	reports.Get("/staff-workload", reportsHandler.StaffWorkload)

	// Notifications (cada usuario ve solo las suyas)
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	protected.Get("/notifications", notificationHandler.List)
	protected.Patch("/notifications/:id/read", notificationHandler.MarkRead)
}
