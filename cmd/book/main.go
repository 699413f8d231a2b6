// book is a terminal front end for the ticket storefront. It lists a
// catalog or books one ticket through the booking store and prints every
// state transition.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/dharmasatrya/ticketstore/internal/client"
	"github.com/dharmasatrya/ticketstore/internal/models"
	"github.com/dharmasatrya/ticketstore/internal/store"
	"github.com/dharmasatrya/ticketstore/pkg/currency"
)

// exitError carries a process exit code out of run.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func (e *exitError) ExitCode() int { return e.code }

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		var coded *exitError
		if errors.As(err, &coded) {
			if coded.msg != "" {
				fmt.Fprintln(os.Stderr, coded.msg)
			}
			os.Exit(coded.code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	server   string
	kind     string
	ticketID string
	quantity int
	name     string
	email    string
	timeout  time.Duration
	list     bool
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("book", pflag.ContinueOnError)
	flagSet.SetOutput(stdout)
	flagSet.StringVar(&opts.server, "server", "http://localhost:8080", "storefront base URL")
	flagSet.StringVar(&opts.kind, "type", "flight", "ticket type: flight, train or bus")
	flagSet.StringVar(&opts.ticketID, "ticket", "", "id of the ticket to book")
	flagSet.IntVar(&opts.quantity, "quantity", 1, "number of tickets")
	flagSet.StringVar(&opts.name, "name", "", "passenger full name")
	flagSet.StringVar(&opts.email, "email", "", "contact email address")
	flagSet.DurationVar(&opts.timeout, "timeout", 10*time.Second, "overall request timeout")
	flagSet.BoolVar(&opts.list, "list", false, "list tickets of --type instead of booking")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return &exitError{code: 2, msg: err.Error()}
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return &exitError{code: 2, msg: "unexpected argument: " + rest[0]}
	}

	kind, err := models.ParseTicketType(opts.kind)
	if err != nil {
		return &exitError{code: 2, msg: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	c := client.New(opts.server)

	if opts.list {
		return listTickets(ctx, c, kind, stdout)
	}

	if opts.ticketID == "" {
		return &exitError{code: 2, msg: "--ticket is required"}
	}
	if problems := validateForm(opts.name, opts.email, opts.quantity); len(problems) > 0 {
		return &exitError{code: 2, msg: strings.Join(problems, "\n")}
	}

	ticket, err := c.GetTicket(ctx, kind, opts.ticketID)
	if err != nil {
		return fmt.Errorf("fetch ticket %s: %w", opts.ticketID, err)
	}

	s := store.New(c)
	unsubscribe := s.Subscribe(func(st store.State) {
		fmt.Fprintf(stdout, "status: %s\n", st.Status)
	})
	defer unsubscribe()

	s.SetTicketForBooking(*ticket, opts.quantity)
	s.UpdateUserInfo(store.UserInfo{
		Name:  strings.TrimSpace(opts.name),
		Email: strings.TrimSpace(opts.email),
	})

	total := ticket.Price * float64(opts.quantity)
	fmt.Fprintf(stdout, "Booking %d x %s %s -> %s (%s), total %s\n",
		opts.quantity, ticket.CompanyName, ticket.Origin, ticket.Destination,
		ticket.DepartureTime.Format(time.RFC3339), currency.Format(total, ticket.Currency))

	if err := s.SubmitBooking(ctx); err != nil {
		return err
	}

	st := s.Snapshot()
	switch st.Status {
	case store.StatusSucceeded:
		fmt.Fprintf(stdout, "Booking confirmed. Booking ID: %s\n", st.BookingID)
		return nil
	default:
		return &exitError{code: 1, msg: st.Error}
	}
}

// validateForm checks the booking form the way the storefront form does
// before anything is sent.
func validateForm(name, email string, quantity int) []string {
	var problems []string
	if strings.TrimSpace(name) == "" {
		problems = append(problems, "Name is required.")
	}
	switch {
	case strings.TrimSpace(email) == "":
		problems = append(problems, "Email is required.")
	case !models.ValidEmail(email):
		problems = append(problems, "Invalid email format.")
	}
	if quantity < models.MinQuantity {
		problems = append(problems, "Ticket quantity must be at least 1.")
	}
	if quantity > models.MaxQuantity {
		problems = append(problems, "Maximum ticket quantity allowed is 10.")
	}
	return problems
}

func listTickets(ctx context.Context, c *client.Client, kind models.TicketType, w io.Writer) error {
	tickets, err := c.ListTickets(ctx, kind, nil)
	if err != nil {
		return fmt.Errorf("list %s: %w", kind.Collection(), err)
	}
	for _, t := range tickets {
		price := t.FormattedPrice
		if price == "" {
			price = currency.Format(t.Price, t.Currency)
		}
		fmt.Fprintf(w, "%-6s %-22s %-26s -> %-26s %s  %s\n",
			t.ID, t.CompanyName, t.Origin, t.Destination,
			t.DepartureTime.Format("2006-01-02 15:04"), price)
	}
	return nil
}
