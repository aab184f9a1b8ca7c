package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultRequestTimeout = 2 * time.Minute
	errorBodyLimit        = 240
)

// ErrMalformedResponse is returned when the service answers 2xx with a body
// the client cannot use.
var ErrMalformedResponse = errors.New("malformed gateway response")

type StartRequest struct {
	GameID   string `json:"game_id"`
	Tone     string `json:"tone"`
	Provider string `json:"llm_provider"`
}

type StartResponse struct {
	SessionID    string `json:"id"`
	GameResponse string `json:"game_response"`
	LLMResponse  string `json:"llm_response"`
}

type commandRequest struct {
	SessionID string `json:"game_id"`
	Input     string `json:"input"`
}

type CommandResponse struct {
	GameCommand  string `json:"game_command"`
	GameResponse string `json:"game_response"`
	InputCommand string `json:"input_command"`
	LLMResponse  string `json:"llm_response"`
}

type tailRequest struct {
	SessionID string `json:"game_state_id"`
}

// commandReply and tailReply use pointers so a 2xx body missing the fields
// can be told apart from one carrying empty strings.
type commandReply struct {
	GameCommand  string  `json:"game_command"`
	GameResponse *string `json:"game_response"`
	InputCommand string  `json:"input_command"`
	LLMResponse  *string `json:"llm_response"`
}

type tailReply struct {
	Log *string `json:"log"`
}

// StatusError reports a non-2xx answer from the service.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return ""
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: http %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Op, e.StatusCode, body)
}

// Client talks to the interpreter/rewriter web endpoint.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewWithClient(baseURL, &http.Client{}, timeout, logger)
}

func NewWithClient(baseURL string, client *http.Client, timeout time.Duration, logger *slog.Logger) *Client {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	var resp StartResponse
	if err := c.post(ctx, "start_game", req, &resp); err != nil {
		return StartResponse{}, err
	}
	if strings.TrimSpace(resp.SessionID) == "" {
		return StartResponse{}, fmt.Errorf("start_game: %w: missing session id", ErrMalformedResponse)
	}
	return resp, nil
}

func (c *Client) Command(ctx context.Context, sessionID, input string) (CommandResponse, error) {
	var reply commandReply
	if err := c.post(ctx, "user_command", commandRequest{SessionID: sessionID, Input: input}, &reply); err != nil {
		return CommandResponse{}, err
	}
	if reply.GameResponse == nil || reply.LLMResponse == nil {
		return CommandResponse{}, fmt.Errorf("user_command: %w: missing game_response or llm_response", ErrMalformedResponse)
	}
	return CommandResponse{
		GameCommand:  reply.GameCommand,
		GameResponse: *reply.GameResponse,
		InputCommand: reply.InputCommand,
		LLMResponse:  *reply.LLMResponse,
	}, nil
}

func (c *Client) TailLog(ctx context.Context, sessionID string) (string, error) {
	var reply tailReply
	if err := c.post(ctx, "get_log", tailRequest{SessionID: sessionID}, &reply); err != nil {
		return "", err
	}
	if reply.Log == nil {
		return "", fmt.Errorf("get_log: %w: missing log", ErrMalformedResponse)
	}
	return *reply.Log, nil
}

// Warm asks the service to spin up its inference workers. The response body
// carries nothing of interest.
func (c *Client) Warm(ctx context.Context) error {
	return c.post(ctx, "warm_inference", nil, nil)
}

func (c *Client) post(ctx context.Context, op string, body any, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("%s: encode request body: %w", op, err)
		}
		reqBody = buf
	}
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/"+op, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("gateway request failed", "op", op, "request_id", requestID, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}
	c.logger.Debug("gateway request",
		"op", op,
		"request_id", requestID,
		"status", resp.StatusCode,
		"latency_ms", time.Since(started).Milliseconds(),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: compactBody(payload)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	return nil
}

func compactBody(payload []byte) string {
	compact := strings.Join(strings.Fields(string(payload)), " ")
	if len(compact) <= errorBodyLimit {
		return compact
	}
	return compact[:errorBodyLimit-3] + "..."
}
