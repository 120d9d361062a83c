package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentSelect = `
	SELECT p.id, p.payment_code, p.order_id, o.order_code, p.customer_id, p.customer_name,
		p.total_order_amount, p.advance_paid, p.balance_amount, p.payment_mode, p.payment_date,
		p.notes, p.recorded_by, p.created_at, p.updated_at
	FROM payments p
	JOIN orders o ON o.id = p.order_id`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var (
		p    entity.Payment
		mode string
	)
	err := row.Scan(
		&p.ID, &p.PaymentCode, &p.OrderID, &p.OrderCode, &p.CustomerID, &p.CustomerName,
		&p.TotalOrderAmount, &p.AdvancePaid, &p.BalanceAmount, &mode, &p.PaymentDate,
		&p.Notes, &p.RecordedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PaymentMode = entity.PaymentMode(mode)
	return &p, nil
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, payment_code, order_id, customer_id, customer_name, total_order_amount,
			advance_paid, balance_amount, payment_mode, payment_date, notes, recorded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.PaymentCode, p.OrderID, p.CustomerID, p.CustomerName, p.TotalOrderAmount,
		p.AdvancePaid, p.BalanceAmount, string(p.PaymentMode), p.PaymentDate, p.Notes, p.RecordedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("pago %s: %w", p.PaymentCode, domain.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("orden %s: %w", p.OrderID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, paymentSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Payment, error) {
	if !isUUID(orderID) {
		return nil, nil
	}
	return r.list(ctx, paymentSelect+` WHERE p.order_id = $1 ORDER BY p.seq`, orderID)
}

// List más recientes primero.
func (r *PaymentRepo) List(ctx context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	if (f.OrderID != "" && !isUUID(f.OrderID)) || (f.CustomerID != "" && !isUUID(f.CustomerID)) {
		return nil, nil
	}
	var w whereBuilder
	if f.OrderID != "" {
		w.add("p.order_id = ?", f.OrderID)
	}
	if f.CustomerID != "" {
		w.add("p.customer_id = ?", f.CustomerID)
	}
	return r.list(ctx, paymentSelect+w.sql()+` ORDER BY p.seq DESC`, w.args...)
}

func (r *PaymentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var out []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update persiste el abono completo; order_id y customer no cambian.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	query := `
		UPDATE payments SET advance_paid = $2, payment_mode = $3, payment_date = $4, notes = $5,
			total_order_amount = $6, balance_amount = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.AdvancePaid, string(p.PaymentMode), p.PaymentDate, p.Notes,
		p.TotalOrderAmount, p.BalanceAmount, p.UpdatedAt,
	)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepo) CountByOrder(ctx context.Context, orderID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE order_id = $1`, orderID).Scan(&n); err != nil {
		if isInvalidTextRepresentation(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

func (r *PaymentRepo) SetBalances(ctx context.Context, orderID string, total, balance decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE payments SET total_order_amount = $2, balance_amount = $3 WHERE order_id = $1`,
		orderID, total, balance,
	)
	if err != nil {
		return fmt.Errorf("set balances: %w", err)
	}
	return nil
}
