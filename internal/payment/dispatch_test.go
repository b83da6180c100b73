package payment

import (
	"context"
	"testing"

	"glowmart_back_end/internal/models"
	"glowmart_back_end/internal/orders"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingInitiator records calls so tests can assert the COD path never
// touches a gateway.
type countingInitiator struct {
	calls       int
	redirectURL string
	err         error
}

func (f *countingInitiator) CreateSession(ctx context.Context, req InitRequest) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.redirectURL, nil
}

var testCustomer = CustomerInfo{
	Name: "Asha Rahman", Email: "asha@example.com", Phone: "01700000000",
	Address: "12 Lake Road", City: "Dhaka", PostalCode: "1207", Country: "Bangladesh",
}

func setupOrder(t *testing.T) (*orders.Service, *models.Order) {
	t.Helper()
	p := models.Product{ID: gocql.UUID(uuid.New()), Name: "Night Cream", Price: 20, Discount: 25, Stock: 10}
	p.Recalculate()
	svc := orders.NewService(orders.NewMemoryStore(), orders.NewMemoryCatalog(p))
	order, err := svc.Create(context.Background(), "u1",
		[]models.CartItem{{ProductID: p.ID.String(), Quantity: 2}},
		models.ShippingAddress{
			Name: "Asha Rahman", Email: "asha@example.com", Phone: "01700000000",
			Address: "12 Lake Road", City: "Dhaka", PostalCode: "1207", Country: "Bangladesh",
		})
	require.NoError(t, err)
	require.Equal(t, 30.00, order.TotalPrice)
	return svc, order
}

func TestCODShortCircuitNeverCallsGateway(t *testing.T) {
	svc, order := setupOrder(t)
	gateway := &countingInitiator{redirectURL: "https://gateway.test/pay"}
	coord := NewCoordinator(svc, gateway, gateway, gateway, gateway)

	res, err := coord.Initiate(context.Background(), order, models.MethodCOD, 30.00, testCustomer)
	require.NoError(t, err)

	assert.Equal(t, 0, gateway.calls)
	assert.Equal(t, models.OrderCODConfirmed, res.Status)
	assert.Equal(t, models.OrderCODConfirmed, order.Status)
	assert.Empty(t, res.RedirectURL)
	assert.Contains(t, res.ConfirmationRoute, order.LegacyRef)
}

func TestAmountMismatchRejectsBeforeGatewayCall(t *testing.T) {
	svc, order := setupOrder(t)
	gateway := &countingInitiator{redirectURL: "https://gateway.test/pay"}
	coord := NewCoordinator(svc, gateway, gateway, gateway, gateway)

	_, err := coord.Initiate(context.Background(), order, models.MethodSSLCommerz, 25.00, testCustomer)
	require.ErrorIs(t, err, ErrAmountMismatch)
	assert.Equal(t, 0, gateway.calls)
	assert.Equal(t, models.OrderCreated, order.Status)
}

func TestRedirectFlowMarksPending(t *testing.T) {
	svc, order := setupOrder(t)
	gateway := &countingInitiator{redirectURL: "https://gateway.test/pay"}
	coord := NewCoordinator(svc, gateway, gateway, gateway, gateway)

	res, err := coord.Initiate(context.Background(), order, models.MethodSSLCommerz, 30.00, testCustomer)
	require.NoError(t, err)

	assert.Equal(t, 1, gateway.calls)
	assert.Equal(t, "https://gateway.test/pay", res.RedirectURL)
	assert.Equal(t, models.OrderPendingPayment, order.Status)
	assert.Equal(t, res.TransactionID, order.PaymentInfo.TransactionID)
}

func TestMobileMoneyMethodsDispatchToTheirGateway(t *testing.T) {
	for _, method := range []models.PaymentMethod{models.MethodBkash, models.MethodRocket, models.MethodNagad} {
		svc, order := setupOrder(t)
		target := &countingInitiator{redirectURL: "https://wallet.test/pay"}
		other := &countingInitiator{redirectURL: "https://wrong.test"}

		var coord *Coordinator
		switch method {
		case models.MethodBkash:
			coord = NewCoordinator(svc, other, target, other, other)
		case models.MethodRocket:
			coord = NewCoordinator(svc, other, other, target, other)
		case models.MethodNagad:
			coord = NewCoordinator(svc, other, other, other, target)
		}

		res, err := coord.Initiate(context.Background(), order, method, 30.00, testCustomer)
		require.NoError(t, err, method.String())
		assert.Equal(t, 1, target.calls, method.String())
		assert.Equal(t, 0, other.calls, method.String())
		assert.Equal(t, "https://wallet.test/pay", res.RedirectURL)
	}
}

func TestInitFailureLeavesOrderUntouched(t *testing.T) {
	svc, order := setupOrder(t)
	gateway := &countingInitiator{err: &GatewayInitError{Gateway: "sslcommerz", Reason: "Connection refused"}}
	coord := NewCoordinator(svc, gateway, gateway, gateway, gateway)

	_, err := coord.Initiate(context.Background(), order, models.MethodSSLCommerz, 30.00, testCustomer)
	require.Error(t, err)
	assert.Equal(t, models.OrderCreated, order.Status)
}
