// Package app arma los casos de uso a partir de un juego de repositorios, sea PostgreSQL o
// el almacén en memoria.
package app

import (
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/boutique-api/internal/application/analytics"
	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/application/notifications"
	"github.com/jhoicas/boutique-api/internal/application/orders"
	"github.com/jhoicas/boutique-api/internal/application/payments"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/boutique-api/internal/infrastructure/pdf"
	"github.com/jhoicas/boutique-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/boutique-api/internal/interfaces/http"
)

// Repositories puertos de persistencia de la aplicación.
type Repositories struct {
	Users         repository.UserRepository
	Roles         repository.RoleRepository
	Customers     repository.CustomerRepository
	Orders        repository.OrderRepository
	Payments      repository.PaymentRepository
	Items         repository.InventoryItemRepository
	Notifications repository.NotificationRepository
	Sequences     repository.SequenceRepository
	Analytics     repository.AnalyticsRepository
	Tx            ports.TxRunner
}

// MemoryRepositories repositorios sobre un almacén en memoria.
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Users:         store.Users(),
		Roles:         store.Roles(),
		Customers:     store.Customers(),
		Orders:        store.Orders(),
		Payments:      store.Payments(),
		Items:         store.Items(),
		Notifications: store.Notifications(),
		Sequences:     store.Sequences(),
		Analytics:     store.Analytics(),
		Tx:            store,
	}
}

// PostgresRepositories repositorios sobre el pool; las operaciones transaccionales usan TxRunner.
func PostgresRepositories(q postgres.Querier, tx ports.TxRunner) Repositories {
	return Repositories{
		Users:         postgres.NewUserRepository(q),
		Roles:         postgres.NewRoleRepository(q),
		Customers:     postgres.NewCustomerRepository(q),
		Orders:        postgres.NewOrderRepository(q),
		Payments:      postgres.NewPaymentRepository(q),
		Items:         postgres.NewInventoryItemRepository(q),
		Notifications: postgres.NewNotificationRepository(q),
		Sequences:     postgres.NewSequenceRepository(q),
		Analytics:     postgres.NewAnalyticsRepository(q),
		Tx:            tx,
	}
}

// Options parámetros de armado. Cache y Metrics pueden ser nil.
type Options struct {
	JWT          auth.JWTConfig
	Registration auth.RegistrationConfig
	BusinessName string
	Cache        ports.RoleCache
	Metrics      ports.Metrics
	Log          zerolog.Logger
}

// Container casos de uso listos para el router, el scheduler y los comandos de CLI.
type Container struct {
	Auth          *auth.AuthUseCase
	Access        *usecase.AccessService
	Users         *usecase.UserUseCase
	Roles         *usecase.RoleUseCase
	Customers     *usecase.CustomerUseCase
	Orders        *orders.UseCase
	Payments      *payments.UseCase
	Receipts      *payments.ReceiptUseCase
	Stock         *inventory.StockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Dashboard     *appanalytics.DashboardUseCase
	Reports       *appanalytics.ReportsUseCase
	Notifications *notifications.UseCase
}

// Build arma todos los casos de uso.
func Build(r Repositories, opts Options) *Container {
	authUC := auth.NewAuthUseCase(r.Users, r.Roles, opts.JWT, opts.Registration)
	return &Container{
		Auth:          authUC,
		Access:        usecase.NewAccessService(r.Users, r.Roles, opts.Cache, opts.Metrics),
		Users:         usecase.NewUserUseCase(r.Users, r.Roles, r.Orders, authUC),
		Roles:         usecase.NewRoleUseCase(r.Roles, r.Users, opts.Cache),
		Customers:     usecase.NewCustomerUseCase(r.Customers, r.Orders, r.Sequences),
		Orders:        orders.NewUseCase(r.Tx, r.Orders, r.Customers),
		Payments:      payments.NewUseCase(r.Tx, r.Payments, r.Orders, opts.Metrics),
		Receipts:      payments.NewReceiptUseCase(r.Payments, r.Orders, infrapdf.NewMarotoPDFGenerator(), opts.BusinessName),
		Stock:         inventory.NewStockUseCase(r.Tx, r.Items),
		Replenishment: inventory.NewReplenishmentUseCase(r.Items),
		Dashboard:     appanalytics.NewDashboardUseCase(r.Analytics, r.Orders),
		Reports:       appanalytics.NewReportsUseCase(r.Analytics, r.Orders),
		Notifications: notifications.NewUseCase(notifications.Repos{
			Users:         r.Users,
			Orders:        r.Orders,
			Items:         r.Items,
			Analytics:     r.Analytics,
			Notifications: r.Notifications,
			Sequences:     r.Sequences,
		}, opts.Metrics, opts.Log),
	}
}

// RouterDeps dependencias del router HTTP.
func (c *Container) RouterDeps(jwtSecret string) httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		AuthUC:          c.Auth,
		Access:          c.Access,
		UserUC:          c.Users,
		RoleUC:          c.Roles,
		CustomerUC:      c.Customers,
		OrderUC:         c.Orders,
		PaymentUC:       c.Payments,
		ReceiptUC:       c.Receipts,
		StockUC:         c.Stock,
		ReplenishmentUC: c.Replenishment,
		DashboardUC:     c.Dashboard,
		ReportsUC:       c.Reports,
		NotificationUC:  c.Notifications,
		JWTSecret:       jwtSecret,
	}
}
