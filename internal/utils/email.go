package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"glowmart_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendConfirmationEmail delivers the order confirmation, optionally with
// the rendered invoice attached. Failures are the caller's to log; the
// checkout flow never blocks on mail.
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@glowmart.example"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("glowmart_invoice.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending confirmation email to", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML builds the confirmation body from the
// order snapshot.
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>৳%.2f</td>
				<td>৳%.2f</td>
			</tr>`, item.Name, item.Quantity, item.Price, models.LineTotal(item.Price, item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Thank you for your order!</h2>
	<p>Your order <strong>%s</strong> has been confirmed.</p>
	<table border="1" cellpadding="8" cellspacing="0" style="border-collapse: collapse;">
		<tr><th>Product</th><th>Qty</th><th>Unit price</th><th>Total</th></tr>
		%s
	</table>
	<p><strong>Order total: ৳%.2f</strong></p>
	<p>Shipping to: %s, %s, %s %s, %s</p>
	<p>— The GlowMart team</p>
</body>
</html>`,
		order.LegacyRef, itemsHTML, order.TotalPrice,
		order.ShippingAddress.Name, order.ShippingAddress.Address,
		order.ShippingAddress.City, order.ShippingAddress.PostalCode,
		order.ShippingAddress.Country)
}
