package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dmitrijs2005/magiceditor/internal/common"
	"github.com/dmitrijs2005/magiceditor/internal/logging"
	"github.com/dmitrijs2005/magiceditor/internal/netx"
	"github.com/google/uuid"
)

const (
	serverFailurePrefix  = "Server responded"
	pollingFailurePrefix = "Polling failed"
)

type HTTPClient struct {
	baseURL        string
	http           *http.Client
	log            logging.Logger
	requestTimeout time.Duration
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithRequestTimeout bounds every single request. Zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.requestTimeout = d }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// do sends body as JSON to path and decodes a 2xx answer into out (when
// out is non-nil). Non-2xx answers become *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, failurePrefix string) error {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	req, err := netx.NewJSONRequest(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	log := c.log.With("method", method, "path", path, "request_id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		if netx.IsConnError(err) {
			err = &unavailableError{err: err}
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    netx.ErrorMessage(resp, failurePrefix),
		}
		log.Warn(ctx, "backend error", "status", resp.StatusCode, "error", apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	return netx.DecodeJSON(resp, out)
}

func (c *HTTPClient) ClassifyImage(ctx context.Context, img models.EncodedFile) (bool, error) {
	req := struct {
		ImageData models.EncodedFile `json:"imageData"`
	}{img}
	var resp struct {
		Classification string `json:"classification"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/classify-image", req, &resp, serverFailurePrefix); err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(strings.TrimSpace(resp.Classification)), "yes"), nil
}

// ImprovePrompt asks the backend to rewrite prompt. Blank prompts are
// rejected with common.ErrEmptyPrompt without a request.
func (c *HTTPClient) ImprovePrompt(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", common.ErrEmptyPrompt
	}
	req := struct {
		Prompt string `json:"prompt"`
	}{prompt}
	var resp struct {
		ImprovedPrompt string `json:"improvedPrompt"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/improve-prompt", req, &resp, serverFailurePrefix); err != nil {
		return "", err
	}
	return resp.ImprovedPrompt, nil
}

func (c *HTTPClient) EditImage(ctx context.Context, img models.EncodedFile, prompt string) (models.EditedResult, error) {
	req := struct {
		ImageData models.EncodedFile `json:"imageData"`
		Prompt    string             `json:"prompt"`
	}{img, prompt}
	var resp models.EditedResult
	if err := c.do(ctx, http.MethodPost, "/api/edit-image", req, &resp, serverFailurePrefix); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) CombineImages(ctx context.Context, img1, img2 models.EncodedFile, prompt string) (models.EditedResult, error) {
	req := struct {
		Image1Data models.EncodedFile `json:"image1Data"`
		Image2Data models.EncodedFile `json:"image2Data"`
		Prompt     string             `json:"prompt"`
	}{img1, img2, prompt}
	var resp models.EditedResult
	if err := c.do(ctx, http.MethodPost, "/api/combine-images", req, &resp, serverFailurePrefix); err != nil {
		return nil, err
	}
	return resp, nil
}

// StartVideo submits a generation job and returns its operation name. img
// may be nil for text-only generation; it is then sent as JSON null.
func (c *HTTPClient) StartVideo(ctx context.Context, prompt string, img *models.EncodedFile) (string, error) {
	req := struct {
		Prompt    string              `json:"prompt"`
		ImageData *models.EncodedFile `json:"imageData"`
	}{prompt, img}
	var resp struct {
		OperationName string `json:"operationName"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/generate-video", req, &resp, serverFailurePrefix); err != nil {
		return "", err
	}
	if resp.OperationName == "" {
		return "", fmt.Errorf("generate video: empty operation name in response")
	}
	return resp.OperationName, nil
}

func (c *HTTPClient) VideoStatus(ctx context.Context, operationName string) (*models.VideoStatus, error) {
	req := struct {
		OperationName string `json:"operationName"`
	}{operationName}
	var resp models.VideoStatus
	if err := c.do(ctx, http.MethodPost, "/api/video-status", req, &resp, pollingFailurePrefix); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CommunityPrompts(ctx context.Context) ([]models.CommunityPrompt, error) {
	var resp []models.CommunityPrompt
	if err := c.do(ctx, http.MethodGet, "/api/community/prompts", nil, &resp, serverFailurePrefix); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) SharePrompt(ctx context.Context, data models.SharePromptData) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/community/share-prompt", data, &resp, serverFailurePrefix); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) Chat(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	if history == nil {
		history = []models.ChatMessage{}
	}
	req := struct {
		History    []models.ChatMessage `json:"history"`
		NewMessage string               `json:"newMessage"`
	}{history, message}
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &resp, serverFailurePrefix); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

var _ Client = (*HTTPClient)(nil)
