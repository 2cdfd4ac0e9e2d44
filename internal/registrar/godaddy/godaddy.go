// Package godaddy implements registrar.Client against the GoDaddy v1 REST
// API (https://developer.godaddy.com/doc/endpoint/domains).
package godaddy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"domainmgr/internal/registrar"
)

const (
	// DefaultBaseURL is the production endpoint; OTEBaseURL is GoDaddy's
	// sandbox (operational test environment).
	DefaultBaseURL = "https://api.godaddy.com"
	OTEBaseURL     = "https://api.ote-godaddy.com"

	apiVersion = "v1"
)

type Options struct {
	APIKey    string
	APISecret string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	opts Options
	http *http.Client
}

func NewClient(opts Options) (*Client, error) {
	opts.APIKey = strings.TrimSpace(opts.APIKey)
	opts.APISecret = strings.TrimSpace(opts.APISecret)
	if opts.APIKey == "" || opts.APISecret == "" {
		return nil, fmt.Errorf("godaddy: missing api credentials (set GODADDY_API_KEY and GODADDY_API_SECRET)")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if !strings.Contains(opts.BaseURL, "://") {
		opts.BaseURL = "https://" + opts.BaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "domainmgr/registrar-godaddy"
	}

	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}, nil
}

func (c *Client) Name() string { return "godaddy" }

func (c *Client) CheckAvailability(ctx context.Context, domain string) (registrar.AvailabilityResult, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return registrar.AvailabilityResult{}, fmt.Errorf("godaddy: empty domain")
	}

	q := url.Values{}
	q.Set("domain", domain)

	var decoded availableResponse
	if err := c.do(ctx, http.MethodGet, "domains/available", q, nil, &decoded); err != nil {
		return registrar.AvailabilityResult{}, err
	}

	return registrar.AvailabilityResult{
		Domain:     decoded.Domain,
		Available:  decoded.Available,
		Definitive: decoded.Definitive,
		Price:      fromMicros(decoded.Price),
		Currency:   decoded.Currency,
		Period:     decoded.Period,
	}, nil
}

func (c *Client) Suggest(ctx context.Context, keyword string, limit int) ([]registrar.Suggestion, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("godaddy: empty keyword")
	}
	if limit <= 0 {
		limit = 5
	}

	q := url.Values{}
	q.Set("query", keyword)
	q.Set("limit", strconv.Itoa(limit))

	return c.suggestions(ctx, q, nil)
}

func (c *Client) Search(ctx context.Context, keyword string, tlds []string) ([]registrar.Suggestion, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("godaddy: empty keyword")
	}

	q := url.Values{}
	q.Set("query", keyword)
	q.Set("limit", "20")
	q.Set("waitMs", "1000")
	if len(tlds) > 0 {
		q.Set("tlds", strings.Join(tlds, ","))
	}

	// The suggest endpoint treats tlds as a hint, not a contract; filter
	// locally so the caller only sees the TLDs it asked for.
	return c.suggestions(ctx, q, tldFilter(tlds))
}

func (c *Client) suggestions(ctx context.Context, q url.Values, keep func(string) bool) ([]registrar.Suggestion, error) {
	var decoded []suggestionEntry
	if err := c.do(ctx, http.MethodGet, "domains/suggest", q, nil, &decoded); err != nil {
		return nil, err
	}

	out := make([]registrar.Suggestion, 0, len(decoded))
	for _, e := range decoded {
		d := strings.ToLower(strings.TrimSpace(e.Domain))
		if d == "" {
			continue
		}
		if keep != nil && !keep(d) {
			continue
		}
		out = append(out, registrar.Suggestion{
			Domain: d,
			Price:  fromMicros(e.Price),
		})
	}
	return out, nil
}

func (c *Client) Purchase(ctx context.Context, order registrar.PurchaseOrder) (registrar.PurchaseConfirmation, error) {
	if strings.TrimSpace(order.Domain) == "" {
		return registrar.PurchaseConfirmation{}, fmt.Errorf("godaddy: empty domain")
	}

	body := purchaseRequest(order, time.Now())

	var decoded purchaseResponse
	if err := c.do(ctx, http.MethodPost, "domains/purchase", nil, body, &decoded); err != nil {
		return registrar.PurchaseConfirmation{}, err
	}

	return registrar.PurchaseConfirmation{
		OrderID:    decoded.OrderID.String(),
		Total:      fromMicros(decoded.Total),
		Currency:   decoded.Currency,
		ItemCount:  decoded.ItemCount,
		PaymentURL: decoded.PaymentURL,
	}, nil
}

func (c *Client) OrderStatus(ctx context.Context, orderID string) (registrar.OrderStatus, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return registrar.OrderStatus{}, fmt.Errorf("godaddy: empty order id")
	}

	var decoded orderResponse
	if err := c.do(ctx, http.MethodGet, "orders/"+url.PathEscape(orderID), nil, nil, &decoded); err != nil {
		return registrar.OrderStatus{}, err
	}

	id := decoded.OrderID.String()
	if id == "" {
		id = orderID
	}
	return registrar.OrderStatus{
		OrderID:   id,
		Status:    decoded.Status,
		CreatedAt: decoded.CreatedAt,
		Total:     fromMicros(decoded.Total),
		Currency:  decoded.Currency,
	}, nil
}

// do issues one authenticated request and decodes the JSON answer into out.
// Non-2xx answers become *registrar.APIError with the upstream body carried
// through; transport failures become *registrar.NetworkError.
func (c *Client) do(ctx context.Context, method, endpoint string, q url.Values, body, out any) error {
	u := c.opts.BaseURL + "/" + apiVersion + "/" + endpoint
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("authorization", "sso-key "+c.opts.APIKey+":"+c.opts.APISecret)
	req.Header.Set("accept", "application/json")
	req.Header.Set("user-agent", c.opts.UserAgent)
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &registrar.NetworkError{Op: method + " " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &registrar.NetworkError{Op: method + " " + endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, b)
	}

	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("godaddy: decode %s response: %w", endpoint, err)
	}
	return nil
}

func apiError(status int, body []byte) *registrar.APIError {
	apiErr := &registrar.APIError{Status: status}

	var decoded struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Fields  []registrar.FieldError `json:"fields"`
	}
	if err := json.Unmarshal(body, &decoded); err == nil && (decoded.Code != "" || decoded.Message != "") {
		apiErr.Code = decoded.Code
		apiErr.Message = decoded.Message
		apiErr.Fields = decoded.Fields
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}

// purchaseRequest builds the v1 purchase body. The registrant contact fills
// all four contact blocks, matching how single-registrant orders are placed.
func purchaseRequest(order registrar.PurchaseOrder, now time.Time) map[string]any {
	contact := contactBlock(order.Contact)
	return map[string]any{
		"domain": order.Domain,
		"consent": map[string]any{
			"agreementKeys": []string{"DNRA"},
			"agreedBy":      "127.0.0.1",
			"agreedAt":      now.UnixMilli(),
		},
		"period":            order.Years,
		"renewAuto":         order.AutoRenew,
		"privacy":           order.Privacy,
		"contactAdmin":      contact,
		"contactBilling":    contact,
		"contactRegistrant": contact,
		"contactTech":       contact,
	}
}

func contactBlock(c registrar.ContactInfo) map[string]any {
	return map[string]any{
		"nameFirst": c.FirstName,
		"nameLast":  c.LastName,
		"email":     c.Email,
		"phone":     c.Phone,
		"addressMailing": map[string]any{
			"address1":   c.AddressLine1,
			"address2":   c.AddressLine2,
			"city":       c.City,
			"state":      c.State,
			"postalCode": c.PostalCode,
			"country":    strings.ToUpper(c.Country),
		},
	}
}

func tldFilter(tlds []string) func(string) bool {
	if len(tlds) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(tlds))
	for _, t := range tlds {
		t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "."))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return func(domain string) bool {
		i := strings.LastIndexByte(domain, '.')
		if i < 0 {
			return false
		}
		_, ok := set[domain[i+1:]]
		return ok
	}
}

// GoDaddy quotes money in micro-units of the currency.
func fromMicros(v int64) float64 {
	if v == 0 {
		return 0
	}
	return float64(v) / 1e6
}

type availableResponse struct {
	Domain     string `json:"domain"`
	Available  bool   `json:"available"`
	Definitive bool   `json:"definitive"`
	Price      int64  `json:"price"`
	Currency   string `json:"currency"`
	Period     int    `json:"period"`
}

type suggestionEntry struct {
	Domain string `json:"domain"`
	Price  int64  `json:"price,omitempty"`
}

type purchaseResponse struct {
	OrderID    jsonString `json:"orderId"`
	ItemCount  int        `json:"itemCount"`
	Total      int64      `json:"total"`
	Currency   string     `json:"currency"`
	PaymentURL string     `json:"paymentUrl"`
}

type orderResponse struct {
	OrderID   jsonString `json:"orderId"`
	Status    string     `json:"status"`
	CreatedAt string     `json:"createdAt"`
	Total     int64      `json:"total"`
	Currency  string     `json:"currency"`
}

// jsonString tolerates order ids arriving as either a JSON number or string.
type jsonString string

func (s *jsonString) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = jsonString(n.String())
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	*s = jsonString(str)
	return nil
}

func (s jsonString) String() string { return string(s) }
