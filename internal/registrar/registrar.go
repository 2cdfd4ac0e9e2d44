package registrar

import "context"

// Client is the registrar-side surface the interactive flow drives. Every
// operation is a single blocking HTTP call: no retries, no backoff, no local
// double-submission protection. The registrar is the sole source of truth
// for what committed.
type Client interface {
	Name() string

	// CheckAvailability reports whether a domain can be registered and at
	// what price.
	CheckAvailability(ctx context.Context, domain string) (AvailabilityResult, error)

	// Suggest returns up to limit alternative names for a (possibly taken)
	// domain or keyword. No suggestions is an empty slice, not an error.
	Suggest(ctx context.Context, keyword string, limit int) ([]Suggestion, error)

	// Search finds candidate domains for a keyword, restricted to the given
	// TLDs when the list is non-empty.
	Search(ctx context.Context, keyword string, tlds []string) ([]Suggestion, error)

	// Purchase submits a registration order. A returned *APIError carries
	// the upstream rejection verbatim so the user can correct and resubmit.
	Purchase(ctx context.Context, order PurchaseOrder) (PurchaseConfirmation, error)

	// OrderStatus looks up a previously submitted order.
	OrderStatus(ctx context.Context, orderID string) (OrderStatus, error)
}

type AvailabilityResult struct {
	Domain     string  `json:"domain"`
	Available  bool    `json:"available"`
	Definitive bool    `json:"definitive,omitempty"`
	Price      float64 `json:"price,omitempty"` // per year, in Currency units
	Currency   string  `json:"currency,omitempty"`
	Period     int     `json:"period,omitempty"` // years the price covers
}

type Suggestion struct {
	Domain string  `json:"domain"`
	Price  float64 `json:"price,omitempty"`
}

// ContactInfo is the registrant contact collected by the purchase flow.
// AddressLine2 is the only optional field.
type ContactInfo struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string // ISO 3166-1 alpha-2
}

// PurchaseOrder is assembled immediately before the purchase call and used
// exactly once. Years must be in [1,10].
type PurchaseOrder struct {
	Domain    string
	Years     int
	Privacy   bool
	AutoRenew bool
	Contact   ContactInfo
}

type PurchaseConfirmation struct {
	OrderID   string  `json:"orderId"`
	Total     float64 `json:"total,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	ItemCount int     `json:"itemCount,omitempty"`

	// PaymentURL is set when the registrar wants an out-of-band payment
	// (e.g. UPI) before it finalizes the registration.
	PaymentURL string `json:"paymentUrl,omitempty"`
}

type OrderStatus struct {
	OrderID   string  `json:"orderId"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt,omitempty"`
	Total     float64 `json:"total,omitempty"`
	Currency  string  `json:"currency,omitempty"`
}
