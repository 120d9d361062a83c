package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL. Las medidas viven en
// customer_measurements (append-only).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, customer_code, name, phone, email, address, created_at, updated_at`

// Create inserta el cliente y su medida inicial, si la trae.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, customer_code, name, phone, email, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, c.ID, c.CustomerCode, c.Name, c.Phone, c.Email, c.Address, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cliente %s: %w", c.CustomerCode, domain.ErrConflict)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	for _, m := range c.Measurements {
		if err := r.AddMeasurement(ctx, c.ID, m); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene el cliente con todo su historial de medidas.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id).Scan(
		&c.ID, &c.CustomerCode, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	byCustomer, err := r.measurements(ctx, []string{c.ID})
	if err != nil {
		return nil, err
	}
	c.Measurements = byCustomer[c.ID]
	return &c, nil
}

// List más recientes primero; Search filtra por nombre (sin mayúsculas) o teléfono.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	var w whereBuilder
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		w.add("(lower(name) LIKE ? OR phone LIKE ?)", like, like)
	}
	query := `SELECT ` + customerColumns + ` FROM customers` + w.sql() + ` ORDER BY seq DESC`
	args := w.args
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var (
		out []*entity.Customer
		ids []string
	)
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.CustomerCode, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, &c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}
	byCustomer, err := r.measurements(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range out {
		c.Measurements = byCustomer[c.ID]
	}
	return out, nil
}

func (r *CustomerRepo) measurements(ctx context.Context, customerIDs []string) (map[string][]entity.Measurement, error) {
	query := `
		SELECT customer_id, shoulder, bust, waist, hip, sleeve_length, dress_length, notes, recorded_at
		FROM customer_measurements WHERE customer_id = ANY($1) ORDER BY id`
	rows, err := r.q.Query(ctx, query, customerIDs)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.Measurement, len(customerIDs))
	for rows.Next() {
		var (
			customerID string
			m          entity.Measurement
		)
		if err := rows.Scan(&customerID, &m.Shoulder, &m.Bust, &m.Waist, &m.Hip, &m.SleeveLength, &m.DressLength, &m.Notes, &m.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		out[customerID] = append(out[customerID], m)
	}
	return out, rows.Err()
}

// Update datos de contacto; las medidas no se modifican.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, phone = $3, email = $4, address = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Phone, c.Email, c.Address, c.UpdatedAt)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el cliente y sus medidas. Las órdenes lo impiden por FK.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCustomerHasOrders
		}
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddMeasurement agrega un snapshot al historial.
func (r *CustomerRepo) AddMeasurement(ctx context.Context, customerID string, m entity.Measurement) error {
	query := `
		INSERT INTO customer_measurements
			(customer_id, shoulder, bust, waist, hip, sleeve_length, dress_length, notes, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, customerID, m.Shoulder, m.Bust, m.Waist, m.Hip, m.SleeveLength, m.DressLength, m.Notes, m.RecordedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert measurement: %w", err)
	}
	return nil
}
