package eapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"json2sql/internal/logger"
)

// ErrConnection is returned by New when the command API cannot be reached.
var ErrConnection = errors.New("eapi: connection failed")

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type Config struct {
	Username       string
	Password       string
	EnablePassword string
	Method         string // http or https
	Host           string
	Timeout        time.Duration

	// HTTPClient overrides the default client (tests, custom TLS).
	HTTPClient *http.Client
}

// Client talks JSON-RPC to the switch's /command-api endpoint.
type Client struct {
	endpoint       *url.URL
	enablePassword string
	http           *http.Client
	nextID         atomic.Uint64
}

// Counters holds the error counters of one interface.
type Counters struct {
	FCS    int64 `json:"fcs"`
	Symbol int64 `json:"symbol"`
}

// RPCError is a JSON-RPC error object returned by the switch.
type RPCError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    []json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("eapi: rpc error %d: %s", e.Code, e.Message)
}

// StatusError is returned when the endpoint answers with a non-200 status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return "eapi: unexpected status " + e.Status
}

type command struct {
	Cmd   string `json:"cmd"`
	Input string `json:"input"`
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  params `json:"params"`
	ID      string `json:"id"`
}

type params struct {
	Version int    `json:"version"`
	Cmds    []any  `json:"cmds"`
	Format  Format `json:"format"`
}

type response struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      string            `json:"id"`
	Result  []json.RawMessage `json:"result"`
	Error   *RPCError         `json:"error"`
}

// Endpoint builds <method>://<user>:<password>@<host>/command-api.
func Endpoint(cfg Config) *url.URL {
	return &url.URL{
		Scheme: cfg.Method,
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   cfg.Host,
		Path:   "/command-api",
	}
}

// New builds a client and probes the endpoint with an empty enable batch.
func New(ctx context.Context, cfg Config) (*Client, error) {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	c := &Client{
		endpoint:       Endpoint(cfg),
		enablePassword: cfg.EnablePassword,
		http:           hc,
	}

	if _, err := c.RunEnableCmds(ctx, nil, FormatJSON); err != nil {
		// only a failed round trip is a connection error; HTTP status,
		// decode and RPC errors are returned as they are
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("%w: %s: %w", ErrConnection, c.endpoint.Redacted(), err)
		}
		return nil, err
	}
	return c, nil
}

// RunEnableCmds runs cmds after an "enable" command and returns the results
// of cmds only.
func (c *Client) RunEnableCmds(ctx context.Context, cmds []string, format Format) ([]json.RawMessage, error) {
	batch := make([]any, 0, len(cmds)+1)
	batch = append(batch, command{Cmd: "enable", Input: c.enablePassword})
	for _, cmd := range cmds {
		batch = append(batch, cmd)
	}

	result, err := c.runCmds(ctx, batch, format)
	if err != nil {
		return nil, err
	}
	if len(result) != len(batch) {
		return nil, fmt.Errorf("eapi: expected %d results, got %d", len(batch), len(result))
	}
	return result[1:], nil
}

// RunEnableText is RunEnableCmds in text mode, each result reduced to its
// output string.
func (c *Client) RunEnableText(ctx context.Context, cmds []string) ([]string, error) {
	raw, err := c.RunEnableCmds(ctx, cmds, FormatText)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		var v struct {
			Output string `json:"output"`
		}
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, fmt.Errorf("eapi: decode text result %d: %w", i, err)
		}
		out[i] = v.Output
	}
	return out, nil
}

func (c *Client) runCmds(ctx context.Context, cmds []any, format Format) ([]json.RawMessage, error) {
	id := strconv.FormatUint(c.nextID.Add(1), 10)
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		Method:  "runCmds",
		Params:  params{Version: 1, Cmds: cmds, Format: format},
		ID:      id,
	})
	if err != nil {
		return nil, err
	}
	logger.Debugf("eapi request %s: %s", id, body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eapi: post: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("eapi: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("eapi: decode response: %w", err)
	}
	if r.Error != nil {
		return nil, r.Error
	}
	return r.Result, nil
}

// ConnectedInterfaces lists the short names of connected interfaces.
// Text mode is used so the names match the counters table.
func (c *Client) ConnectedInterfaces(ctx context.Context) ([]string, error) {
	out, err := c.RunEnableText(ctx, []string{"show interfaces status connected"})
	if err != nil {
		return nil, err
	}
	return ParseConnectedInterfaces(out[0]), nil
}

// InterfaceErrorCounters returns the counters of the given interfaces.
func (c *Client) InterfaceErrorCounters(ctx context.Context, interfaces []string) (map[string]Counters, error) {
	out, err := c.RunEnableText(ctx, []string{"show interfaces counters errors"})
	if err != nil {
		return nil, err
	}
	return ParseErrorCounters(out[0], interfaces)
}

func (c *Client) ConnectedInterfacesCounters(ctx context.Context) (map[string]Counters, error) {
	ifaces, err := c.ConnectedInterfaces(ctx)
	if err != nil {
		return nil, err
	}
	return c.InterfaceErrorCounters(ctx, ifaces)
}

// TurnOffInterface administratively shuts the interface down.
func (c *Client) TurnOffInterface(ctx context.Context, name string) error {
	_, err := c.RunEnableCmds(ctx, []string{
		"configure",
		"interface " + name,
		"shutdown",
	}, FormatJSON)
	return err
}
