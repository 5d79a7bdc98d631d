// Package apiclient issues single JSON requests against the external
// services this bot talks to.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"assignment-bot/internal/apperror"
	"assignment-bot/internal/metrics"
)

// Service names an external API.
type Service string

const (
	GitHub   Service = "github"
	Calendly Service = "calendly"
	ClickUp  Service = "clickup"
)

// Request describes one outbound call. Path is appended to the service base
// endpoint and may carry a query string. A non-nil Body is sent as JSON.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   any
}

type Client struct {
	endpoints map[Service]string
	clients   map[Service]*http.Client
}

// New builds a client that knows only the given services. Every service gets
// its own instrumented http.Client using the default transport.
func New(endpoints map[Service]string) *Client {
	c := &Client{
		endpoints: make(map[Service]string, len(endpoints)),
		clients:   make(map[Service]*http.Client, len(endpoints)),
	}
	for service, base := range endpoints {
		c.endpoints[service] = strings.TrimSuffix(base, "/")
		c.clients[service] = &http.Client{
			Transport: metrics.InstrumentTransport(string(service), http.DefaultTransport),
		}
	}
	return c
}

// Endpoint returns the base URL registered for service.
func (c *Client) Endpoint(service Service) (string, error) {
	base, ok := c.endpoints[service]
	if !ok {
		return "", &apperror.Error{
			Kind:    apperror.KindConfiguration,
			Message: fmt.Sprintf("unknown service %q", service),
		}
	}
	return base, nil
}

// Do sends exactly one request and decodes the JSON response into out, which
// may be nil. An empty 2xx body decodes as {}. A non-2xx answer or a
// transport failure is returned as *apperror.APIError.
func (c *Client) Do(ctx context.Context, service Service, req Request, out any) error {
	base, err := c.Endpoint(service)
	if err != nil {
		return err
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return apperror.Parsing(err, "encode %s request body", service)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, base+req.Path, body)
	if err != nil {
		return apperror.Parsing(err, "build %s request", service)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.clients[service].Do(httpReq)
	if err != nil {
		return &apperror.APIError{Service: string(service), Transport: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperror.APIError{Service: string(service), Transport: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apperror.APIError{
			Service: string(service),
			Status:  resp.StatusCode,
			Body:    string(data),
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}
	if out == nil {
		if !json.Valid(data) {
			return apperror.Parsing(nil, "%s returned a body that is not JSON", service)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperror.Parsing(err, "decode %s response", service)
	}
	return nil
}
