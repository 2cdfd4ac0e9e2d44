// Package cli drives the interactive domain-management session: a numbered
// main menu in front of the registrar client, with every input validated
// locally before a network call is made.
//
// The flow reads from an injected reader and writes to an injected writer so
// that every path is exercisable without a terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"domainmgr/internal/contact"
	"domainmgr/internal/domain"
	"domainmgr/internal/registrar"
)

const suggestLimit = 5

// Registration period presets offered by the purchase flow.
var periodChoices = []int{1, 2, 3, 5, 10}

// TLD presets offered by the search flow; an empty list means "all".
var tldPresets = []struct {
	name string
	tlds []string
}{
	{"All popular TLDs", nil},
	{".com, .net, .org", []string{"com", "net", "org"}},
	{".io, .dev, .tech", []string{"io", "dev", "tech"}},
	{".ai, .app, .co", []string{"ai", "app", "co"}},
	{"Custom selection", nil},
}

type Flow struct {
	in     *bufio.Reader
	out    io.Writer
	client registrar.Client
	log    *slog.Logger
}

func New(client registrar.Client, in io.Reader, out io.Writer, log *slog.Logger) *Flow {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Flow{
		in:     bufio.NewReader(in),
		out:    out,
		client: client,
		log:    log,
	}
}

// Run loops over the main menu until the user exits or input ends. API and
// validation failures never terminate the loop; they are rendered and the
// menu comes back.
func (f *Flow) Run(ctx context.Context) error {
	fmt.Fprintf(f.out, "Domain Manager (%s)\n", f.client.Name())
	fmt.Fprintln(f.out, "Check availability, search by keyword, and register domains.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(f.out)
		fmt.Fprintln(f.out, "MAIN MENU")
		fmt.Fprintln(f.out, "  1. Check domain availability")
		fmt.Fprintln(f.out, "  2. Search for domains")
		fmt.Fprintln(f.out, "  3. Purchase a domain")
		fmt.Fprintln(f.out, "  4. Check order status")
		fmt.Fprintln(f.out, "  5. Exit")

		choice, err := f.promptInt("Enter your choice (1-5): ", 1, 5)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case 1:
			err = f.checkFlow(ctx)
		case 2:
			err = f.searchFlow(ctx)
		case 3:
			err = f.purchaseFlow(ctx, "")
		case 4:
			err = f.orderStatusFlow(ctx)
		case 5:
			fmt.Fprintln(f.out, "Bye.")
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// checkFlow prompts for a domain, checks it, and routes the answer: offer a
// purchase when available, fetch suggestions when taken.
func (f *Flow) checkFlow(ctx context.Context) error {
	for {
		name, err := f.promptDomain("Domain to check (or 'back'): ")
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}

		f.log.Debug("checking availability", "domain", name)
		res, err := f.client.CheckAvailability(ctx, name)
		if err != nil {
			f.renderClientError(err)
			return nil
		}

		if res.Available {
			fmt.Fprintf(f.out, "%s is available!\n", name)
			if res.Price > 0 {
				fmt.Fprintf(f.out, "Price: %s per year\n", money(res.Price, res.Currency))
			}
			buy, err := f.promptYesNo("Purchase this domain? (y/n): ", false)
			if err != nil {
				return err
			}
			if buy {
				return f.purchaseFlow(ctx, name)
			}
		} else {
			fmt.Fprintf(f.out, "%s is not available.\n", name)
			if err := f.suggestAlternatives(ctx, name); err != nil {
				return err
			}
		}

		again, err := f.promptYesNo("Check another domain? (y/n): ", false)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// suggestAlternatives asks the registrar once for similar names and offers
// to purchase one of them.
func (f *Flow) suggestAlternatives(ctx context.Context, name string) error {
	keyword, _ := domain.SplitTLD(name)

	f.log.Debug("fetching suggestions", "keyword", keyword)
	suggestions, err := f.client.Suggest(ctx, keyword, suggestLimit)
	if err != nil {
		f.renderClientError(err)
		return nil
	}
	if len(suggestions) == 0 {
		fmt.Fprintln(f.out, "No alternative names found.")
		return nil
	}

	fmt.Fprintln(f.out, "Available alternatives:")
	f.renderSuggestions(suggestions)

	pick, err := f.promptPick("Number to purchase (or 'back'): ", len(suggestions))
	if err != nil {
		return err
	}
	if pick < 0 {
		return nil
	}
	return f.purchaseFlow(ctx, suggestions[pick].Domain)
}

// searchFlow prompts for a keyword and TLD preset, then renders the matches.
func (f *Flow) searchFlow(ctx context.Context) error {
	keyword, err := f.readLine("Keyword to search for (or 'back'): ")
	if err != nil {
		return err
	}
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || strings.EqualFold(keyword, "back") {
		return nil
	}

	fmt.Fprintln(f.out, "TLD options:")
	for i, p := range tldPresets {
		fmt.Fprintf(f.out, "  %d. %s\n", i+1, p.name)
	}
	choice, err := f.promptInt(fmt.Sprintf("Enter your choice (1-%d): ", len(tldPresets)), 1, len(tldPresets))
	if err != nil {
		return err
	}

	tlds := tldPresets[choice-1].tlds
	if choice == len(tldPresets) {
		line, err := f.readLine("TLDs, comma separated (e.g. com,net,org): ")
		if err != nil {
			return err
		}
		tlds = splitCommaList(line)
	}

	f.log.Debug("searching domains", "keyword", keyword, "tlds", tlds)
	results, err := f.client.Search(ctx, keyword, tlds)
	if err != nil {
		f.renderClientError(err)
		return nil
	}
	if len(results) == 0 {
		fmt.Fprintf(f.out, "No domains found for %q.\n", keyword)
		return nil
	}

	fmt.Fprintf(f.out, "Found %d domains for %q:\n", len(results), keyword)
	f.renderSuggestions(results)

	pick, err := f.promptPick("Number to purchase (or 'back'): ", len(results))
	if err != nil {
		return err
	}
	if pick < 0 {
		return nil
	}
	return f.purchaseFlow(ctx, results[pick].Domain)
}

// purchaseFlow collects the order parameters and registrant contact in fixed
// order, validating each answer before moving on, then submits exactly one
// purchase call. Upstream rejection is rendered and control returns to the
// menu; the user corrects and resubmits by hand.
func (f *Flow) purchaseFlow(ctx context.Context, name string) error {
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, "Domain Purchase")

	if name == "" {
		var err error
		name, err = f.promptDomain("Domain to purchase (or 'back'): ")
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}

		res, err := f.client.CheckAvailability(ctx, name)
		if err != nil {
			f.renderClientError(err)
			return nil
		}
		if !res.Available {
			fmt.Fprintf(f.out, "%s is not available for purchase.\n", name)
			return nil
		}
		if res.Price > 0 {
			fmt.Fprintf(f.out, "%s is available for %s per year.\n", name, money(res.Price, res.Currency))
		}
	}

	fmt.Fprintln(f.out, "Registration period:")
	for i, years := range periodChoices {
		fmt.Fprintf(f.out, "  %d. %d year(s)\n", i+1, years)
	}
	periodIdx, err := f.promptInt(fmt.Sprintf("Enter your choice (1-%d): ", len(periodChoices)), 1, len(periodChoices))
	if err != nil {
		return err
	}
	years := periodChoices[periodIdx-1]

	privacy, err := f.promptYesNo("Enable privacy protection? (Y/n): ", true)
	if err != nil {
		return err
	}
	autoRenew, err := f.promptYesNo("Enable auto-renewal? (Y/n): ", true)
	if err != nil {
		return err
	}

	info, err := f.collectContact()
	if err != nil {
		return err
	}

	order := registrar.PurchaseOrder{
		Domain:    name,
		Years:     years,
		Privacy:   privacy,
		AutoRenew: autoRenew,
		Contact:   info,
	}
	if err := contact.ValidateOrder(order); err != nil {
		// Field prompts validate as they go; this is the whole-order recheck.
		fmt.Fprintf(f.out, "Cannot place order: %v\n", err)
		return nil
	}

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, "Purchase confirmation")
	fmt.Fprintf(f.out, "  Domain:             %s\n", order.Domain)
	fmt.Fprintf(f.out, "  Registration:       %d year(s)\n", order.Years)
	fmt.Fprintf(f.out, "  Privacy protection: %s\n", enabled(order.Privacy))
	fmt.Fprintf(f.out, "  Auto-renewal:       %s\n", enabled(order.AutoRenew))
	fmt.Fprintf(f.out, "  Registrant:         %s %s <%s>\n", info.FirstName, info.LastName, info.Email)

	confirmed, err := f.promptYesNo("Proceed with the purchase? (y/n): ", false)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(f.out, "Purchase cancelled.")
		return nil
	}

	f.log.Info("submitting purchase", "domain", order.Domain, "years", order.Years)
	conf, err := f.client.Purchase(ctx, order)
	if err != nil {
		fmt.Fprintln(f.out, "The purchase was rejected:")
		f.renderClientError(err)
		fmt.Fprintln(f.out, "Check the details above, correct your input and try again.")
		return nil
	}

	if conf.PaymentURL != "" {
		f.renderPendingPayment(conf)
		return nil
	}

	fmt.Fprintf(f.out, "Success! %s is registered for %d year(s).\n", order.Domain, order.Years)
	if conf.OrderID != "" {
		fmt.Fprintf(f.out, "Order ID: %s\n", conf.OrderID)
	}
	if conf.Total > 0 {
		fmt.Fprintf(f.out, "Total: %s\n", money(conf.Total, conf.Currency))
	}
	return nil
}

// collectContact prompts for the registrant fields in fixed order. A field
// that fails validation is re-asked until it passes.
func (f *Flow) collectContact() (registrar.ContactInfo, error) {
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, "Registrant contact information:")

	var info registrar.ContactInfo
	fields := []struct {
		label    string
		dst      *string
		optional bool
		check    func(string) error
	}{
		{"First name", &info.FirstName, false, nil},
		{"Last name", &info.LastName, false, nil},
		{"Email address", &info.Email, false, contact.ValidateEmail},
		{"Phone (international format, e.g. +14155550100)", &info.Phone, false, contact.ValidatePhone},
		{"Address line 1", &info.AddressLine1, false, nil},
		{"Address line 2 (optional)", &info.AddressLine2, true, nil},
		{"City", &info.City, false, nil},
		{"State/Province", &info.State, false, nil},
		{"Postal/ZIP code", &info.PostalCode, false, nil},
		{"Country (2-letter code, e.g. US)", &info.Country, false, contact.ValidateCountry},
	}

	for _, field := range fields {
		for {
			value, err := f.readLine(field.label + ": ")
			if err != nil {
				return registrar.ContactInfo{}, err
			}
			value = strings.TrimSpace(value)

			if value == "" {
				if field.optional {
					break
				}
				fmt.Fprintln(f.out, "This field is required.")
				continue
			}
			if field.check != nil {
				if err := field.check(value); err != nil {
					fmt.Fprintf(f.out, "%v\n", err)
					continue
				}
			}
			*field.dst = value
			break
		}
	}

	info.Country = strings.ToUpper(info.Country)
	return info, nil
}

// orderStatusFlow looks up a previously placed order.
func (f *Flow) orderStatusFlow(ctx context.Context) error {
	id, err := f.readLine("Order ID (or 'back'): ")
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" || strings.EqualFold(id, "back") {
		return nil
	}

	status, err := f.client.OrderStatus(ctx, id)
	if err != nil {
		f.renderClientError(err)
		return nil
	}

	fmt.Fprintf(f.out, "Order %s: %s\n", status.OrderID, status.Status)
	if status.CreatedAt != "" {
		fmt.Fprintf(f.out, "Created: %s\n", status.CreatedAt)
	}
	if status.Total > 0 {
		fmt.Fprintf(f.out, "Total: %s\n", money(status.Total, status.Currency))
	}
	return nil
}

func splitCommaList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	seen := map[string]struct{}{}
	for _, p := range parts {
		p = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(p), "."))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
