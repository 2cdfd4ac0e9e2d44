package cli

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"domainmgr/internal/domain"
	"domainmgr/internal/registrar"
)

// renderClientError prints a recoverable registrar failure. Upstream
// rejections show the verbatim code/message/field detail; transport failures
// show the wrapped cause.
func (f *Flow) renderClientError(err error) {
	var apiErr *registrar.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(f.out, "The registrar rejected the request (http %d)\n", apiErr.Status)
		if apiErr.Code != "" {
			fmt.Fprintf(f.out, "  code:    %s\n", apiErr.Code)
		}
		if apiErr.Message != "" {
			fmt.Fprintf(f.out, "  message: %s\n", apiErr.Message)
		}
		for _, field := range apiErr.Fields {
			detail := field.Message
			if detail == "" {
				detail = field.Code
			}
			fmt.Fprintf(f.out, "  - %s: %s\n", field.Path, detail)
		}
		return
	}

	var netErr *registrar.NetworkError
	if errors.As(err, &netErr) {
		fmt.Fprintf(f.out, "Network error: %v\n", netErr.Err)
		fmt.Fprintln(f.out, "Check your connection and try again.")
		return
	}

	fmt.Fprintf(f.out, "Error: %v\n", err)
}

func (f *Flow) renderSuggestions(suggestions []registrar.Suggestion) {
	tw := domain.NewTabWriter(f.out)
	for i, s := range suggestions {
		price := "-"
		if s.Price > 0 {
			price = money(s.Price, "") + " per year"
		}
		fmt.Fprintf(tw, "  %d.\t%s\t%s\n", i+1, s.Domain, price)
	}
	_ = tw.Flush()
}

// renderPendingPayment shows the out-of-band payment instructions: the URL
// itself plus a terminal QR code scannable with a UPI app.
func (f *Flow) renderPendingPayment(conf registrar.PurchaseConfirmation) {
	fmt.Fprintln(f.out, "Payment required to finalize the registration.")
	if conf.OrderID != "" {
		fmt.Fprintf(f.out, "Order ID: %s\n", conf.OrderID)
	}
	fmt.Fprintf(f.out, "Complete the payment at: %s\n", conf.PaymentURL)

	if qr, err := qrcode.New(conf.PaymentURL, qrcode.Low); err == nil {
		fmt.Fprintln(f.out, "Or scan this QR code with your UPI app:")
		fmt.Fprintln(f.out, qr.ToSmallString(false))
	}

	fmt.Fprintln(f.out, "The domain is registered once the payment clears; use")
	fmt.Fprintln(f.out, "the order status menu to follow up.")
}

func money(amount float64, currency string) string {
	if currency == "" || currency == "USD" {
		return fmt.Sprintf("$%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func enabled(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}
