package payment

import (
	"errors"
	"strings"
)

var (
	// ErrAmountMismatch rejects an initiate-payment call whose amount does
	// not equal the order's stored total. Never silently corrected.
	ErrAmountMismatch = errors.New("payment amount does not match order total")

	// ErrStoreCredentials is the reclassified gateway misconfiguration.
	// Users can act on it (fall back to cash on delivery); a raw gateway
	// string they cannot.
	ErrStoreCredentials = errors.New("payment gateway is temporarily unavailable, please choose cash on delivery or contact support")
)

// GatewayInitError wraps a failed gateway-init call; the message passes
// through to the user verbatim unless reclassified below.
type GatewayInitError struct {
	Gateway string
	Reason  string
}

func (e *GatewayInitError) Error() string {
	return e.Gateway + " init failed: " + e.Reason
}

// Known substrings the gateway emits when the store credentials are wrong
// or the store is disabled. Matching stays inside this adapter.
var credentialErrorMarkers = []string{
	"Store Credential Error",
	"Store is De-active",
}

// translateInitError reclassifies credential misconfiguration into
// ErrStoreCredentials and passes everything else through untouched.
func translateInitError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, marker := range credentialErrorMarkers {
		if strings.Contains(msg, marker) {
			return ErrStoreCredentials
		}
	}
	return err
}
