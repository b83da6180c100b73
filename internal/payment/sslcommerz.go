package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"glowmart_back_end/internal/config"
)

// SSLCommerzClient speaks the gateway's form-encoded v4 API: one endpoint
// to open a hosted-checkout session, one to validate a callback
// server-to-server. The gateway has no SDK; both calls are plain HTTP.
type SSLCommerzClient struct {
	cfg  config.SSLCommerzConfig
	http *http.Client

	// endpoint overrides for tests
	initURL       string
	validationURL string
}

func NewSSLCommerzClient(cfg config.SSLCommerzConfig) *SSLCommerzClient {
	return &SSLCommerzClient{
		cfg:           cfg,
		http:          &http.Client{Timeout: 30 * time.Second},
		initURL:       cfg.InitURL(),
		validationURL: cfg.ValidationURL(),
	}
}

type sslczInitResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// CreateSession opens a hosted-checkout session and returns the gateway
// page URL the browser must be sent to.
func (c *SSLCommerzClient) CreateSession(ctx context.Context, req InitRequest) (string, error) {
	form := url.Values{}
	form.Set("store_id", c.cfg.StoreID)
	form.Set("store_passwd", c.cfg.StorePassword)
	form.Set("total_amount", fmt.Sprintf("%.2f", req.Amount))
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.TransactionID)
	form.Set("success_url", c.cfg.BaseURL+"/api/payment/callback/success")
	form.Set("fail_url", c.cfg.BaseURL+"/api/payment/callback/fail")
	form.Set("cancel_url", c.cfg.BaseURL+"/api/payment/callback/cancel")
	form.Set("ipn_url", c.cfg.BaseURL+"/api/payment/callback/success")
	form.Set("shipping_method", "Courier")
	form.Set("product_name", "GlowMart order "+req.OrderRef)
	form.Set("product_category", "general")
	form.Set("product_profile", "physical-goods")
	form.Set("cus_name", req.Customer.Name)
	form.Set("cus_email", req.Customer.Email)
	form.Set("cus_phone", req.Customer.Phone)
	form.Set("cus_add1", req.Customer.Address)
	form.Set("cus_city", req.Customer.City)
	form.Set("cus_postcode", req.Customer.PostalCode)
	form.Set("cus_country", req.Customer.Country)
	form.Set("ship_name", req.Customer.Name)
	form.Set("ship_add1", req.Customer.Address)
	form.Set("ship_city", req.Customer.City)
	form.Set("ship_postcode", req.Customer.PostalCode)
	form.Set("ship_country", req.Customer.Country)
	// The gateway echoes value_a untouched; it is how the callback finds
	// the order again.
	form.Set("value_a", req.OrderRef)

	body, err := c.postForm(ctx, c.initURL, form)
	if err != nil {
		return "", &GatewayInitError{Gateway: "sslcommerz", Reason: err.Error()}
	}

	var resp sslczInitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &GatewayInitError{Gateway: "sslcommerz", Reason: "invalid init response: " + err.Error()}
	}
	if !strings.EqualFold(resp.Status, "SUCCESS") || resp.GatewayPageURL == "" {
		reason := resp.FailedReason
		if reason == "" {
			reason = "gateway returned status " + resp.Status
		}
		return "", translateInitError(&GatewayInitError{Gateway: "sslcommerz", Reason: reason})
	}
	return resp.GatewayPageURL, nil
}

type sslczValidationResponse struct {
	Status string `json:"status"`
	TranID string `json:"tran_id"`
	Amount string `json:"amount"`
}

// Validate performs the server-to-server check of a callback's val_id.
// Only the response statuses VALID and VALIDATED may be trusted; the
// caller decides via ValidationResult.Trusted.
func (c *SSLCommerzClient) Validate(ctx context.Context, valID string) (ValidationResult, error) {
	form := url.Values{}
	form.Set("val_id", valID)
	form.Set("store_id", c.cfg.StoreID)
	form.Set("store_passwd", c.cfg.StorePassword)
	form.Set("format", "json")

	body, err := c.postForm(ctx, c.validationURL, form)
	if err != nil {
		return ValidationResult{}, err
	}

	var resp sslczValidationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ValidationResult{}, fmt.Errorf("invalid validation response: %w", err)
	}
	return ValidationResult{
		Status:        resp.Status,
		TransactionID: resp.TranID,
		Amount:        resp.Amount,
		Raw:           string(body),
	}, nil
}

func (c *SSLCommerzClient) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
