package models

import (
	"fmt"
	"strings"
)

// PaymentMethod is the closed set of checkout options. Dispatch over it is
// an exhaustive switch so adding a method is a compile-time-visible change,
// not a new string key.
type PaymentMethod int

const (
	MethodCOD PaymentMethod = iota
	MethodSSLCommerz
	MethodBkash
	MethodRocket
	MethodNagad
)

var methodNames = map[PaymentMethod]string{
	MethodCOD:        "cod",
	MethodSSLCommerz: "sslcommerz",
	MethodBkash:      "bkash",
	MethodRocket:     "rocket",
	MethodNagad:      "nagad",
}

func (m PaymentMethod) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("payment_method(%d)", int(m))
}

// ParsePaymentMethod maps the wire string to the typed method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cod":
		return MethodCOD, nil
	case "sslcommerz":
		return MethodSSLCommerz, nil
	case "bkash":
		return MethodBkash, nil
	case "rocket":
		return MethodRocket, nil
	case "nagad":
		return MethodNagad, nil
	default:
		return 0, fmt.Errorf("unknown payment method %q", s)
	}
}
