package payment

import "context"

// CustomerInfo is what redirect gateways require to open a session.
type CustomerInfo struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Country    string
}

// InitRequest is the gateway-agnostic session request. OrderRef is the
// opaque value the gateway round-trips back to the callback (value_a).
type InitRequest struct {
	TransactionID string
	Amount        float64
	Currency      string
	OrderRef      string
	Customer      CustomerInfo
}

// Initiator opens a payment session and returns the URL the browser must
// be redirected to. Full-page redirect, not a fetch-and-parse flow.
type Initiator interface {
	CreateSession(ctx context.Context, req InitRequest) (redirectURL string, err error)
}

// ValidationResult is the gateway's answer to the server-to-server
// validation call. Raw is kept whole for the order's audit payload.
type ValidationResult struct {
	Status        string
	TransactionID string
	Amount        string
	Raw           string
}

// Trusted reports whether the gateway vouched for the payment. Only the
// exact statuses VALID and VALIDATED count.
func (r ValidationResult) Trusted() bool {
	return r.Status == "VALID" || r.Status == "VALIDATED"
}

// Validator performs the server-to-server validation of a callback.
type Validator interface {
	Validate(ctx context.Context, valID string) (ValidationResult, error)
}
