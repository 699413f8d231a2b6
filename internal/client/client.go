package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketstore/internal/models"
)

// APIError is a non-2xx answer from the storefront API.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []models.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Server responded with %d", e.StatusCode)
	}
	parts := []string{e.Message}
	for _, f := range e.Errors {
		parts = append(parts, f.Message)
	}
	return strings.Join(parts, " ")
}

// TransportError wraps a failure to reach the API or read its answer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitBooking posts req to /api/booking.
func (c *Client) SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var resp models.BookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/booking", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTickets returns one catalog, optionally filtered by query.
func (c *Client) ListTickets(ctx context.Context, kind models.TicketType, query url.Values) ([]models.Ticket, error) {
	path := "/api/" + kind.Collection()
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var tickets []models.Ticket
	if err := c.do(ctx, http.MethodGet, path, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (c *Client) GetTicket(ctx context.Context, kind models.TicketType, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	path := "/api/" + kind.Collection() + "/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderXRequestID, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody models.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil {
			apiErr.Message = errBody.Message
			apiErr.Errors = errBody.Errors
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: "decode response", Err: err}
	}
	return nil
}
