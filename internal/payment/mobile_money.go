package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// MobileMoneyClient covers the bKash/Rocket/Nagad init endpoints. All
// three share the same thin contract: POST the session request, get back
// {success, paymentUrl}. No further protocol detail is published, so the
// client stays a stub behind the common Initiator interface.
type MobileMoneyClient struct {
	provider string
	endpoint string
	http     *http.Client
}

func NewMobileMoneyClient(provider string) *MobileMoneyClient {
	// e.g. BKASH_INIT_URL, ROCKET_INIT_URL, NAGAD_INIT_URL
	endpoint := os.Getenv(strings.ToUpper(provider) + "_INIT_URL")
	return &MobileMoneyClient{
		provider: provider,
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type mobileMoneyResponse struct {
	Success    bool   `json:"success"`
	PaymentURL string `json:"paymentUrl"`
	Message    string `json:"message"`
}

func (c *MobileMoneyClient) CreateSession(ctx context.Context, req InitRequest) (string, error) {
	if c.endpoint == "" {
		return "", &GatewayInitError{Gateway: c.provider, Reason: "gateway not configured"}
	}

	payload, err := json.Marshal(map[string]any{
		"tran_id":  req.TransactionID,
		"amount":   fmt.Sprintf("%.2f", req.Amount),
		"currency": req.Currency,
		"order":    req.OrderRef,
		"customer": map[string]string{
			"name":  req.Customer.Name,
			"email": req.Customer.Email,
			"phone": req.Customer.Phone,
		},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &GatewayInitError{Gateway: c.provider, Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &GatewayInitError{Gateway: c.provider, Reason: err.Error()}
	}

	var parsed mobileMoneyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &GatewayInitError{Gateway: c.provider, Reason: "invalid init response"}
	}
	if !parsed.Success || parsed.PaymentURL == "" {
		reason := parsed.Message
		if reason == "" {
			reason = "gateway refused the session"
		}
		return "", translateInitError(&GatewayInitError{Gateway: c.provider, Reason: reason})
	}
	return parsed.PaymentURL, nil
}
