package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"glowmart_back_end/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *SSLCommerzClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewSSLCommerzClient(config.SSLCommerzConfig{
		StoreID:       "teststore",
		StorePassword: "testpass",
		Sandbox:       true,
		BaseURL:       "http://localhost:8080",
	})
	client.initURL = server.URL
	client.validationURL = server.URL
	return client
}

func TestCreateSessionSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "teststore", r.PostFormValue("store_id"))
		assert.Equal(t, "30.00", r.PostFormValue("total_amount"))
		assert.Equal(t, "order-ref-1", r.PostFormValue("value_a"))
		fmt.Fprint(w, `{"status":"SUCCESS","GatewayPageURL":"https://sandbox.sslcommerz.com/pay/session123"}`)
	})

	url, err := client.CreateSession(context.Background(), InitRequest{
		TransactionID: "TXN1", Amount: 30.00, Currency: "BDT", OrderRef: "order-ref-1",
		Customer: testCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.sslcommerz.com/pay/session123", url)
}

func TestCreateSessionCredentialErrorIsTranslated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"FAILED","failedreason":"Store Credential Error Or Store is De-active"}`)
	})

	_, err := client.CreateSession(context.Background(), InitRequest{Amount: 30, Currency: "BDT"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreCredentials)
}

func TestCreateSessionOtherFailuresPassThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"FAILED","failedreason":"Invalid currency"}`)
	})

	_, err := client.CreateSession(context.Background(), InitRequest{Amount: 30, Currency: "XYZ"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStoreCredentials)

	var initErr *GatewayInitError
	require.True(t, errors.As(err, &initErr))
	assert.Contains(t, initErr.Reason, "Invalid currency")
}

func TestValidateTrustsOnlyValidStatuses(t *testing.T) {
	tests := []struct {
		status  string
		trusted bool
	}{
		{"VALID", true},
		{"VALIDATED", true},
		{"FAILED", false},
		{"CANCELLED", false},
		{"valid", false}, // exact match only
		{"", false},
	}
	for _, tt := range tests {
		t.Run("status "+tt.status, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "VAL123", r.PostFormValue("val_id"))
				fmt.Fprintf(w, `{"status":%q,"tran_id":"TXN1","amount":"30.00"}`, tt.status)
			})

			res, err := client.Validate(context.Background(), "VAL123")
			require.NoError(t, err)
			assert.Equal(t, tt.trusted, res.Trusted())
			assert.NotEmpty(t, res.Raw)
		})
	}
}

func TestValidateNonOKResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	_, err := client.Validate(context.Background(), "VAL123")
	assert.Error(t, err)
}

func TestTranslateInitError(t *testing.T) {
	assert.Nil(t, translateInitError(nil))
	assert.ErrorIs(t, translateInitError(errors.New("Store is De-active")), ErrStoreCredentials)
	plain := errors.New("timeout")
	assert.Equal(t, plain, translateInitError(plain))
}
