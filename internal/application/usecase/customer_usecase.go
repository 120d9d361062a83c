package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/orders"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/internal/domain/sequence"
)

// CustomerUseCase casos de uso para clientes y su historial de medidas.
type CustomerUseCase struct {
	repo      repository.CustomerRepository
	orderRepo repository.OrderRepository
	seq       repository.SequenceRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, orderRepo repository.OrderRepository, seq repository.SequenceRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, orderRepo: orderRepo, seq: seq}
}

// Create crea un nuevo cliente, opcionalmente con una primera medida.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := domain.Required("name", in.Name); err != nil {
		return nil, err
	}
	phone, err := domain.NormalizePhone("phone", in.Phone)
	if err != nil {
		return nil, err
	}
	email, err := optionalEmail(in.Email)
	if err != nil {
		return nil, err
	}
	n, err := uc.seq.Next(ctx, sequence.PrefixCustomer)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		CustomerCode: sequence.Format(sequence.PrefixCustomer, n),
		Name:         strings.TrimSpace(in.Name),
		Phone:        phone,
		Email:        email,
		Address:      strings.TrimSpace(in.Address),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Measurement != nil {
		m, err := toMeasurement(*in.Measurement, now)
		if err != nil {
			return nil, err
		}
		customer.Measurements = []entity.Measurement{m}
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente con todas sus medidas.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) get(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List lista clientes, buscando por nombre o teléfono.
func (uc *CustomerUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.CustomerFilter{Search: search, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range list {
		out.Items = append(out.Items, *toCustomerResponse(c))
	}
	return out, nil
}

// Update modifica datos de contacto. Las órdenes existentes conservan el nombre anterior.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if err := domain.Required("name", *in.Name); err != nil {
			return nil, err
		}
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		if c.Phone, err = domain.NormalizePhone("phone", *in.Phone); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		if c.Email, err = optionalEmail(*in.Email); err != nil {
			return nil, err
		}
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete borra un cliente sin órdenes. No hay borrado en cascada.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	n, err := uc.orderRepo.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCustomerHasOrders
	}
	return uc.repo.Delete(ctx, id)
}

// AddMeasurement agrega un snapshot al historial; los anteriores no se modifican.
func (uc *CustomerUseCase) AddMeasurement(ctx context.Context, id string, in dto.MeasurementRequest) (*dto.CustomerResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	m, err := toMeasurement(in, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.AddMeasurement(ctx, id, m); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// ListOrders órdenes de un cliente.
func (uc *CustomerUseCase) ListOrders(ctx context.Context, id string) ([]dto.OrderResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.orderRepo.List(ctx, repository.OrderFilter{CustomerID: id})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *orders.ToOrderResponse(o))
	}
	return out, nil
}

func optionalEmail(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return domain.NormalizeEmail("email", s)
}

func toMeasurement(in dto.MeasurementRequest, at time.Time) (entity.Measurement, error) {
	fields := map[string]decimal.Decimal{
		"measurement.shoulder":      in.Shoulder,
		"measurement.bust":          in.Bust,
		"measurement.waist":         in.Waist,
		"measurement.hip":           in.Hip,
		"measurement.sleeve_length": in.SleeveLength,
		"measurement.dress_length":  in.DressLength,
	}
	for field, v := range fields {
		if v.IsNegative() {
			return entity.Measurement{}, domain.NewValidationError(field, "no puede ser negativo")
		}
		if err := domain.CheckScale(field, v); err != nil {
			return entity.Measurement{}, err
		}
	}
	return entity.Measurement{
		Shoulder:     in.Shoulder,
		Bust:         in.Bust,
		Waist:        in.Waist,
		Hip:          in.Hip,
		SleeveLength: in.SleeveLength,
		DressLength:  in.DressLength,
		Notes:        strings.TrimSpace(in.Notes),
		RecordedAt:   at,
	}, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	out := &dto.CustomerResponse{
		ID:           c.ID,
		CustomerCode: c.CustomerCode,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		Measurements: make([]dto.MeasurementResponse, 0, len(c.Measurements)),
		DateAdded:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for _, m := range c.Measurements {
		out.Measurements = append(out.Measurements, dto.MeasurementResponse{
			MeasurementRequest: dto.MeasurementRequest{
				Shoulder:     m.Shoulder,
				Bust:         m.Bust,
				Waist:        m.Waist,
				Hip:          m.Hip,
				SleeveLength: m.SleeveLength,
				DressLength:  m.DressLength,
				Notes:        m.Notes,
			},
			RecordedAt: m.RecordedAt,
		})
	}
	return out
}
