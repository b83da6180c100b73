package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateOrderQR encodes the order reference as a base64 PNG ready for an
// <img src="..."> tag on the invoice page.
func GenerateOrderQR(orderRef string) (string, error) {
	png, err := qrcode.Encode(orderRef, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderInvoicePDF loads the frontend invoice page headless and prints it
// to PDF. frontendURL looks like http://localhost:3000/invoice.
func RenderInvoicePDF(frontendURL, orderRef, qrBase64 string) ([]byte, error) {
	q := url.Values{}
	q.Set("ref", orderRef)
	q.Set("qr", qrBase64)

	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// FrontendInvoiceBaseURL reads the invoice page URL from the env, with a
// local-dev fallback.
func FrontendInvoiceBaseURL() string {
	u := os.Getenv("FRONTEND_INVOICE_URL")
	if u == "" {
		return "http://localhost:3000/invoice"
	}
	return u
}
