package synth

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fitted/internal/domain"
)

// InputImage is one ordered reference image for a synthesis call.
type InputImage struct {
	MIMEType string
	Data     []byte
}

// Request is a single synthesis call: one prompt, 2-3 ordered reference
// images and the output aspect ratio.
type Request struct {
	Prompt      string
	Images      []InputImage
	AspectRatio string
}

// Generator abstracts the image synthesis backend.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]byte, error)
}

// Options controls how the Replicate client is configured.
type Options struct {
	APIToken   string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// Client runs synchronous predictions against a Replicate image model and
// downloads the single output image into memory.
type Client struct {
	token      string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Output parameters are fixed per the synthesis contract.
const (
	outputFormat    = "webp"
	outputQuality   = 90
	safetyTolerance = 2

	defaultTimeout = 180 * time.Second
)

func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://api.replicate.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "black-forest-labs/flux-2-pro"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		token:      strings.TrimSpace(opts.APIToken),
		baseURL:    base,
		model:      model,
		httpClient: client,
	}
}

type predictionRequest struct {
	Input predictionInput `json:"input"`
}

type predictionInput struct {
	Prompt          string   `json:"prompt"`
	InputImages     []string `json:"input_images"`
	AspectRatio     string   `json:"aspect_ratio"`
	OutputFormat    string   `json:"output_format"`
	OutputQuality   int      `json:"output_quality"`
	SafetyTolerance int      `json:"safety_tolerance"`
}

type predictionResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

// Generate runs one prediction and returns the output image bytes.
func (c *Client) Generate(ctx context.Context, req Request) ([]byte, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: replicate API token is missing", domain.ErrSynthesis)
	}
	if len(req.Images) == 0 {
		return nil, fmt.Errorf("%w: at least one input image is required", domain.ErrSynthesis)
	}

	payload := predictionRequest{Input: predictionInput{
		Prompt:          req.Prompt,
		InputImages:     dataURIs(req.Images),
		AspectRatio:     req.AspectRatio,
		OutputFormat:    outputFormat,
		OutputQuality:   outputQuality,
		SafetyTolerance: safetyTolerance,
	}}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal prediction: %v", domain.ErrSynthesis, err)
	}

	endpoint := fmt.Sprintf("%s/models/%s/predictions", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrSynthesis, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Prefer", "wait")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: invoke replicate: %v", domain.ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: replicate status %d: %s", domain.ErrSynthesis, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	var pred predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("%w: decode prediction: %v", domain.ErrSynthesis, err)
	}
	if pred.Error != "" {
		return nil, fmt.Errorf("%w: prediction failed: %s", domain.ErrSynthesis, pred.Error)
	}

	outputURL, err := firstOutputURL(pred.Output)
	if err != nil {
		return nil, err
	}
	return c.download(ctx, outputURL)
}

// firstOutputURL accepts either a single URL or a list, taking the first
// element of a list.
func firstOutputURL(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: prediction returned no output", domain.ErrSynthesis)
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 && many[0] != "" {
		return many[0], nil
	}
	return "", fmt.Errorf("%w: unusable prediction output", domain.ErrSynthesis)
}

func dataURIs(images []InputImage) []string {
	uris := make([]string, len(images))
	for i, img := range images {
		mime := img.MIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		uris[i] = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
	}
	return uris
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create download request: %v", domain.ErrSynthesis, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: download output: %v", domain.ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: download output status %d", domain.ErrSynthesis, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read output: %v", domain.ErrSynthesis, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty output image", domain.ErrSynthesis)
	}
	return data, nil
}

var _ Generator = (*Client)(nil)
