package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL. El timeline vive en
// order_timeline y solo crece con INSERT.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_code, customer_id, customer_name, dress_type, fabric_type, order_date,
	trial_date, delivery_date, status, assigned_to, amount, notes, created_by, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o      entity.Order
		status string
	)
	err := row.Scan(
		&o.ID, &o.OrderCode, &o.CustomerID, &o.CustomerName, &o.DressType, &o.FabricType, &o.OrderDate,
		&o.TrialDate, &o.DeliveryDate, &status, &o.AssignedTo, &o.Amount, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

// Create inserta la orden y su timeline inicial.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_code, customer_id, customer_name, dress_type, fabric_type, order_date,
			trial_date, delivery_date, status, assigned_to, amount, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderCode, o.CustomerID, o.CustomerName, o.DressType, o.FabricType, o.OrderDate,
		o.TrialDate, o.DeliveryDate, string(o.Status), o.AssignedTo, o.Amount, o.Notes, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("orden %s: %w", o.OrderCode, domain.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cliente %s: %w", o.CustomerID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, e := range o.Timeline {
		if err := r.AppendTimeline(ctx, o.ID, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	timelines, err := r.timelines(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Timeline = timelines[o.ID]
	return o, nil
}

// List más recientes primero. Los rangos de fecha son [desde, hasta).
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var w whereBuilder
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	if f.ExcludeStatus != "" {
		w.add("status <> ?", string(f.ExcludeStatus))
	}
	if f.CustomerID != "" {
		if !isUUID(f.CustomerID) {
			return nil, nil
		}
		w.add("customer_id = ?", f.CustomerID)
	}
	if f.AssignedTo != "" {
		w.add("assigned_to = ?", f.AssignedTo)
	}
	if f.DeliveryFrom != nil {
		w.add("delivery_date >= ?", *f.DeliveryFrom)
	}
	if f.DeliveryTo != nil {
		w.add("delivery_date < ?", *f.DeliveryTo)
	}
	if f.TrialFrom != nil {
		w.add("trial_date >= ?", *f.TrialFrom)
	}
	if f.TrialTo != nil {
		w.add("trial_date < ?", *f.TrialTo)
	}
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders`+w.sql()+` ORDER BY seq DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var (
		out []*entity.Order
		ids []string
	)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}
	timelines, err := r.timelines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range out {
		o.Timeline = timelines[o.ID]
	}
	return out, nil
}

func (r *OrderRepo) timelines(ctx context.Context, orderIDs []string) (map[string][]entity.TimelineEntry, error) {
	query := `
		SELECT order_id, status, changed_at, notes, changed_by
		FROM order_timeline WHERE order_id = ANY($1) ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.TimelineEntry, len(orderIDs))
	for rows.Next() {
		var (
			orderID, status string
			e               entity.TimelineEntry
		)
		if err := rows.Scan(&orderID, &status, &e.Date, &e.Notes, &e.ChangedBy); err != nil {
			return nil, fmt.Errorf("scan timeline: %w", err)
		}
		e.Status = entity.OrderStatus(status)
		out[orderID] = append(out[orderID], e)
	}
	return out, rows.Err()
}

// Update persiste los campos escalares; order_code, customer y created_by no cambian.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET dress_type = $2, fabric_type = $3, trial_date = $4, delivery_date = $5,
			status = $6, assigned_to = $7, amount = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.DressType, o.FabricType, o.TrialDate, o.DeliveryDate,
		string(o.Status), o.AssignedTo, o.Amount, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) AppendTimeline(ctx context.Context, orderID string, e entity.TimelineEntry) error {
	query := `
		INSERT INTO order_timeline (order_id, status, changed_at, notes, changed_by)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, orderID, string(e.Status), e.Date, e.Notes, e.ChangedBy)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("append timeline: %w", err)
	}
	return nil
}

// Delete borra la orden y su timeline. Los pagos lo impiden por FK.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrOrderHasPayments
		}
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM orders WHERE customer_id = $1`, customerID)
}

func (r *OrderRepo) CountReferencingUser(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM orders WHERE created_by = $1 OR assigned_to = $1`, userID)
}

func (r *OrderRepo) count(ctx context.Context, query string, arg string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, arg).Scan(&n); err != nil {
		if isInvalidTextRepresentation(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}
