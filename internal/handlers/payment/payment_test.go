package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"glowmart_back_end/internal/models"
	"glowmart_back_end/internal/orders"
	"glowmart_back_end/internal/payment"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	calls  int
	status string
	err    error
}

func (f *fakeValidator) Validate(ctx context.Context, valID string) (payment.ValidationResult, error) {
	f.calls++
	if f.err != nil {
		return payment.ValidationResult{}, f.err
	}
	return payment.ValidationResult{
		Status:        f.status,
		TransactionID: valID,
		Raw:           `{"status":"` + f.status + `"}`,
	}, nil
}

const frontendURL = "http://storefront.test"

func setup(t *testing.T, validator payment.Validator) (*Handler, *orders.Service, *models.Order) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	require.NoError(t, svc.MarkPendingPayment(context.Background(), order, "sslcommerz", "TXN1"))

	h := &Handler{
		Orders:      svc,
		Validator:   validator,
		Guard:       NewMemoryTranGuard(),
		FrontendURL: frontendURL,
	}
	return h, svc, order
}

func postCallback(t *testing.T, handlerFunc gin.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.POST("/callback", handlerFunc)

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSuccessCallbackMarksPaidAndRedirects(t *testing.T) {
	validator := &fakeValidator{status: "VALID"}
	h, svc, order := setup(t, validator)

	rec := postCallback(t, h.Success, url.Values{
		"tran_id": {"TXN1"},
		"val_id":  {"VAL1"},
		"value_a": {order.ID.String()},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), frontendURL+"/payment/success")
	assert.Contains(t, rec.Header().Get("Location"), order.LegacyRef)

	reloaded, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, reloaded.Status)
	assert.Equal(t, "VALID", reloaded.PaymentInfo.GatewayStatus)
	assert.NotNil(t, reloaded.PaymentInfo.PaidAt)
	assert.NotEmpty(t, reloaded.PaymentInfo.ValidationPayload)
}

func TestRejectedValidationRedirectsWithoutMutating(t *testing.T) {
	validator := &fakeValidator{status: "FAILED"}
	h, svc, order := setup(t, validator)

	rec := postCallback(t, h.Success, url.Values{
		"tran_id": {"TXN1"},
		"val_id":  {"VAL1"},
		"value_a": {order.ID.String()},
	})

	// Always a redirect, never an error to the gateway; the order is
	// left exactly as it was.
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, frontendURL+"/payment/failed", rec.Header().Get("Location"))

	reloaded, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPendingPayment, reloaded.Status)
}

func TestValidatorErrorStillRedirects(t *testing.T) {
	validator := &fakeValidator{err: assert.AnError}
	h, _, order := setup(t, validator)

	rec := postCallback(t, h.Success, url.Values{
		"tran_id": {"TXN1"},
		"val_id":  {"VAL1"},
		"value_a": {order.ID.String()},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, frontendURL+"/payment/failed", rec.Header().Get("Location"))
}

func TestUnknownOrderReferenceRedirectsToFailure(t *testing.T) {
	validator := &fakeValidator{status: "VALID"}
	h, _, _ := setup(t, validator)

	rec := postCallback(t, h.Success, url.Values{
		"tran_id": {"TXN1"},
		"val_id":  {"VAL1"},
		"value_a": {"GM-DOESNOTEXIST"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, frontendURL+"/payment/failed", rec.Header().Get("Location"))
}

func TestDuplicateCallbackSkipsRevalidation(t *testing.T) {
	validator := &fakeValidator{status: "VALID"}
	h, svc, order := setup(t, validator)

	form := url.Values{
		"tran_id": {"TXN1"},
		"val_id":  {"VAL1"},
		"value_a": {order.ID.String()},
	}

	rec := postCallback(t, h.Success, form)
	assert.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, 1, validator.calls)

	// Gateway retry: still a success redirect, but no second validation
	// call and no state change.
	rec = postCallback(t, h.Success, form)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/payment/success")
	assert.Equal(t, 1, validator.calls)

	reloaded, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, reloaded.Status)
}

func TestFailCallbackMarksFailed(t *testing.T) {
	validator := &fakeValidator{status: "VALID"}
	h, svc, order := setup(t, validator)

	rec := postCallback(t, h.Fail, url.Values{
		"tran_id": {"TXN1"},
		"status":  {"FAILED"},
		"value_a": {order.ID.String()},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, frontendURL+"/payment/failed", rec.Header().Get("Location"))

	reloaded, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaymentFailed, reloaded.Status)
}

func TestCancelCallbackLeavesOrderPending(t *testing.T) {
	validator := &fakeValidator{status: "VALID"}
	h, svc, order := setup(t, validator)

	rec := postCallback(t, h.Cancel, url.Values{"value_a": {order.ID.String()}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, frontendURL+"/payment/cancelled", rec.Header().Get("Location"))

	reloaded, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPendingPayment, reloaded.Status)
}
