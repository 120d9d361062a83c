// Package memory implementa todos los puertos de persistencia en memoria.
//
// Se usa con STORE_DRIVER=memory (demos, desarrollo sin PostgreSQL) y como fake en los tests
// de casos de uso y de HTTP. Las transacciones se serializan y hacen rollback restaurando una
// copia del estado tomada al iniciar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

// Store contenedor del estado compartido por los repositorios en memoria.
//
// txMu serializa las transacciones entre sí y con las escrituras hechas fuera de ellas, así el
// rollback de una transacción nunca pisa una escritura ya confirmada por otra petición.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state
}

type state struct {
	users         map[string]*entity.User
	userOrder     []string
	roles         map[string]*entity.Role
	roleOrder     []string
	customers     map[string]*entity.Customer
	customerOrder []string
	orders        map[string]*entity.Order
	orderOrder    []string
	payments      map[string]*entity.Payment
	paymentOrder  []string
	items         map[string]*entity.InventoryItem
	itemOrder     []string
	notifications []*entity.Notification
	counters      map[string]int64
}

func newState() *state {
	return &state{
		users:     make(map[string]*entity.User),
		roles:     make(map[string]*entity.Role),
		customers: make(map[string]*entity.Customer),
		orders:    make(map[string]*entity.Order),
		payments:  make(map[string]*entity.Payment),
		items:     make(map[string]*entity.InventoryItem),
		counters:  make(map[string]int64),
	}
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Roles devuelve el repositorio de roles.
func (s *Store) Roles() *RoleRepo { return &RoleRepo{s: s} }

// Customers devuelve el repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// Orders devuelve el repositorio de órdenes.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// Payments devuelve el repositorio de pagos.
func (s *Store) Payments() *PaymentRepo { return &PaymentRepo{s: s} }

// Items devuelve el repositorio de inventario.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Notifications devuelve el repositorio de avisos.
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }

// Sequences devuelve el generador de contadores.
func (s *Store) Sequences() *SequenceRepo { return &SequenceRepo{s: s} }

// Analytics devuelve las consultas de dashboards.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

// Run ejecuta fn de forma exclusiva respecto de otras transacciones. Si fn falla se restaura
// el estado previo.
func (s *Store) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	err := fn(ports.TxRepos{
		Orders:    &OrderRepo{s: s, tx: true},
		Payments:  &PaymentRepo{s: s, tx: true},
		Items:     &ItemRepo{s: s, tx: true},
		Sequences: &SequenceRepo{s: s, tx: true},
	})
	if err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// lockWrite toma los locks de una escritura. Fuera de una transacción espera a que termine la
// que esté en curso; dentro de ella txMu ya está tomado por Run.
func (s *Store) lockWrite(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.users {
		c.users[k] = cloneUser(v)
	}
	for k, v := range st.roles {
		c.roles[k] = cloneRole(v)
	}
	for k, v := range st.customers {
		c.customers[k] = cloneCustomer(v)
	}
	for k, v := range st.orders {
		c.orders[k] = cloneOrder(v)
	}
	for k, v := range st.payments {
		c.payments[k] = clonePayment(v)
	}
	for k, v := range st.items {
		c.items[k] = cloneItem(v)
	}
	for _, n := range st.notifications {
		c.notifications = append(c.notifications, cloneNotification(n))
	}
	for k, v := range st.counters {
		c.counters[k] = v
	}
	c.userOrder = append([]string(nil), st.userOrder...)
	c.roleOrder = append([]string(nil), st.roleOrder...)
	c.customerOrder = append([]string(nil), st.customerOrder...)
	c.orderOrder = append([]string(nil), st.orderOrder...)
	c.paymentOrder = append([]string(nil), st.paymentOrder...)
	c.itemOrder = append([]string(nil), st.itemOrder...)
	return c
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
