package config

import "os"

const (
	sslcommerzSandboxBase = "https://sandbox.sslcommerz.com"
	sslcommerzLiveBase    = "https://securepay.sslcommerz.com"
)

// SSLCommerzConfig holds the store credentials and endpoint selection for
// the payment gateway. Credentials are a deployment concern; everything
// comes from the environment.
type SSLCommerzConfig struct {
	StoreID       string
	StorePassword string
	Sandbox       bool
	BaseURL       string // backend base, callbacks are registered under it
	FrontendURL   string // storefront base, success/failure pages live there
}

func LoadSSLCommerz() SSLCommerzConfig {
	cfg := SSLCommerzConfig{
		StoreID:       os.Getenv("SSLCZ_STORE_ID"),
		StorePassword: os.Getenv("SSLCZ_STORE_PASSWORD"),
		Sandbox:       os.Getenv("SSLCZ_SANDBOX") != "false",
		BaseURL:       os.Getenv("BASE_URL"),
		FrontendURL:   os.Getenv("FRONTEND_URL"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:3000"
	}
	return cfg
}

// InitURL is the session-creation endpoint.
func (c SSLCommerzConfig) InitURL() string {
	return c.gatewayBase() + "/gwprocess/v4/api.php"
}

// ValidationURL is the server-to-server validation endpoint.
func (c SSLCommerzConfig) ValidationURL() string {
	return c.gatewayBase() + "/validator/api/validationserverAPI.php"
}

func (c SSLCommerzConfig) gatewayBase() string {
	if c.Sandbox {
		return sslcommerzSandboxBase
	}
	return sslcommerzLiveBase
}
