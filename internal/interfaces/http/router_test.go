package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/app"
	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	apphttp "github.com/jhoicas/boutique-api/internal/interfaces/http"
	"github.com/jhoicas/boutique-api/internal/testutil"
)

// newServer arma la API completa sobre el almacén en memoria del fixture.
func newServer(t *testing.T) (*fiber.App, *testutil.Fixture) {
	t.Helper()
	f := testutil.New(t)
	c := app.Build(app.MemoryRepositories(f.Store), app.Options{
		JWT:          auth.JWTConfig{Secret: testutil.JWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		Registration: auth.RegistrationConfig{DefaultRole: entity.RoleStaff},
		BusinessName: "Boutique Test",
		Log:          zerolog.Nop(),
	})
	srv := apphttp.NewApp(apphttp.AppConfig{Name: "boutique-test", Log: zerolog.Nop()})
	apphttp.Router(srv, c.RouterDeps(testutil.JWTSecret))
	return srv, f
}

func call(t *testing.T, srv *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createOrder(t *testing.T, srv *fiber.App, token string, amount int64) dto.OrderResponse {
	t.Helper()
	resp := call(t, srv, http.MethodPost, "/api/customers", token, dto.CreateCustomerRequest{
		Name: "Lucía Gómez", Phone: "3001234567",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var customer dto.CustomerResponse
	decode(t, resp, &customer)

	resp = call(t, srv, http.MethodPost, "/api/orders", token, dto.CreateOrderRequest{
		CustomerID:   customer.ID,
		DressType:    "Lehenga",
		DeliveryDate: time.Now().AddDate(0, 0, 10),
		Amount:       decimal.NewFromInt(amount),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order dto.OrderResponse
	decode(t, resp, &order)
	return order
}

func pay(t *testing.T, srv *fiber.App, token, orderID string, amount int64) *http.Response {
	t.Helper()
	return call(t, srv, http.MethodPost, "/api/payments", token, dto.RecordPaymentRequest{
		OrderID: orderID, Amount: decimal.NewFromInt(amount), PaymentMode: string(entity.PaymentModeCash),
	})
}

func TestRouter_LoginYNavegacion(t *testing.T) {
	srv, f := newServer(t)

	resp := call(t, srv, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: f.Staff.Email, Password: testutil.Password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)

	resp = call(t, srv, http.MethodGet, "/api/auth/me/access", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var access dto.AccessResponse
	decode(t, resp, &access)
	assert.False(t, access.IsOwner)
	assert.Contains(t, access.Modules, string(entity.ModuleOrders))
	assert.NotContains(t, access.Modules, string(entity.ModuleUsers))
}

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	srv, f := newServer(t)
	resp := call(t, srv, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: f.Owner.Email, Password: "Incorrecta1"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_CREDENTIALS")
}

func TestRouter_StaffNoGestionaUsuarios(t *testing.T) {
	srv, f := newServer(t)
	token := tokenFor(t, f.Staff.ID, entity.RoleStaff)

	resp := call(t, srv, http.MethodGet, "/api/users", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// El control de acceso corre antes que la validación del cuerpo.
	resp = call(t, srv, http.MethodPost, "/api/roles", token, map[string]string{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_AbonosHastaSaldarLaOrden(t *testing.T) {
	srv, f := newServer(t)
	token := tokenFor(t, f.Owner.ID, entity.RoleOwner)
	order := createOrder(t, srv, token, 1000)

	resp := pay(t, srv, token, order.ID, 600)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var first dto.PaymentResponse
	decode(t, resp, &first)
	assert.True(t, first.BalanceAmount.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, string(entity.PaymentStatusPartial), first.Status)

	resp = pay(t, srv, token, order.ID, 400)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var second dto.PaymentResponse
	decode(t, resp, &second)
	assert.True(t, second.BalanceAmount.IsZero())
	assert.Equal(t, string(entity.PaymentStatusCompleted), second.Status)

	resp = pay(t, srv, token, order.ID, 1)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "AMOUNT_EXCEEDS_BALANCE")

	resp = call(t, srv, http.MethodGet, "/api/orders/"+order.ID+"/balance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var balance dto.OrderBalanceResponse
	decode(t, resp, &balance)
	assert.True(t, balance.TotalPaid.Equal(decimal.NewFromInt(1000)))
	assert.True(t, balance.Balance.IsZero())
	assert.Len(t, balance.Payments, 2)
}

func TestRouter_OrdenConPagosNoSeBorra(t *testing.T) {
	srv, f := newServer(t)
	token := tokenFor(t, f.Owner.ID, entity.RoleOwner)
	order := createOrder(t, srv, token, 500)

	resp := pay(t, srv, token, order.ID, 100)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, srv, http.MethodDelete, "/api/orders/"+order.ID, token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "ORDER_HAS_PAYMENTS")
}

func TestRouter_StaffNoBorraOrdenes(t *testing.T) {
	srv, f := newServer(t)
	order := createOrder(t, srv, tokenFor(t, f.Owner.ID, entity.RoleOwner), 500)

	resp := call(t, srv, http.MethodDelete, "/api/orders/"+order.ID, tokenFor(t, f.Staff.ID, entity.RoleStaff), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_ValidacionConCampo(t *testing.T) {
	srv, f := newServer(t)
	resp := call(t, srv, http.MethodPost, "/api/customers", tokenFor(t, f.Owner.ID, entity.RoleOwner),
		dto.CreateCustomerRequest{Name: "Ana", Phone: "123"})

	var body dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "phone", body.Field)
}

func TestRouter_OrdenInexistente404(t *testing.T) {
	srv, f := newServer(t)
	resp := call(t, srv, http.MethodGet, "/api/orders/00000000-0000-0000-0000-000000000042",
		tokenFor(t, f.Owner.ID, entity.RoleOwner), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_IDMalFormado404(t *testing.T) {
	srv, f := newServer(t)
	token := tokenFor(t, f.Owner.ID, entity.RoleOwner)
	for _, path := range []string{"/api/orders/no-es-uuid", "/api/payments/x", "/api/customers/x", "/api/inventory/x"} {
		resp := call(t, srv, http.MethodGet, path, token, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	resp := call(t, srv, http.MethodPost, "/api/orders", token, dto.CreateOrderRequest{
		CustomerID: "x", DressType: "Blusa", DeliveryDate: testutil.Day(2030, 1, 10), Amount: testutil.D(100),
	})
	var body dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &body)
	assert.Equal(t, "customer_id", body.Field)
}

func TestRouter_ReporteMesInvalido(t *testing.T) {
	srv, f := newServer(t)
	resp := call(t, srv, http.MethodGet, "/api/reports/revenue?month=2026-13", tokenFor(t, f.Owner.ID, entity.RoleOwner), nil)

	var body dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &body)
	assert.Equal(t, "month", body.Field)
}

func TestRouter_ReportesSoloConPermiso(t *testing.T) {
	srv, f := newServer(t)
	resp := call(t, srv, http.MethodGet, "/api/reports/pending-payments", tokenFor(t, f.Staff.ID, entity.RoleStaff), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
