// Package synthesis talks to an external VOICEVOX-compatible speech
// synthesis engine over its HTTP API and decodes the rendered audio into
// waveforms. It contains no signal processing; the enhancement pipeline
// accepts waveforms from any origin.
package synthesis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sonavox/sonavox/audio"
	"github.com/sonavox/sonavox/logging"
)

// ClientConfig holds connection settings for the synthesis engine.
type ClientConfig struct {
	Host    string        `json:"host" yaml:"host"`
	Port    int           `json:"port" yaml:"port"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DefaultClientConfig returns the engine's stock local endpoint.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Host:    "127.0.0.1",
		Port:    50021,
		Timeout: 30 * time.Second,
	}
}

// Speaker is one selectable voice style of the engine.
type Speaker struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Client is an HTTP client for the synthesis engine.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a client for the engine at the configured endpoint.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}
	return &Client{
		baseURL:    fmt.Sprintf("http://%s:%d", config.Host, config.Port),
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logging.WithFields(logging.Fields{"component": "synthesis_client"}),
	}
}

// Version returns the engine version string, doubling as a connectivity
// check.
func (c *Client) Version(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/version")
	if err != nil {
		return "", err
	}

	var version string
	if err := json.Unmarshal(body, &version); err != nil {
		return "", fmt.Errorf("synthesis: decode version: %w", err)
	}
	return version, nil
}

// Speakers lists the engine's available voice styles.
func (c *Client) Speakers(ctx context.Context) ([]Speaker, error) {
	body, err := c.get(ctx, "/speakers")
	if err != nil {
		return nil, err
	}

	var raw []struct {
		Name   string `json:"name"`
		Styles []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"styles"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("synthesis: decode speakers: %w", err)
	}

	var speakers []Speaker
	for _, sp := range raw {
		for _, style := range sp.Styles {
			speakers = append(speakers, Speaker{
				ID:   style.ID,
				Name: fmt.Sprintf("%s (%s)", sp.Name, style.Name),
			})
		}
	}
	return speakers, nil
}

// BuildQuery asks the engine to construct a synthesis query for the given
// text and speaker. The query is opaque to this library and passed back
// verbatim to Render.
func (c *Client) BuildQuery(ctx context.Context, text string, speakerID int) (json.RawMessage, error) {
	if text == "" {
		return nil, fmt.Errorf("synthesis: text must not be empty")
	}

	params := url.Values{}
	params.Set("text", text)
	params.Set("speaker", strconv.Itoa(speakerID))

	body, err := c.post(ctx, "/audio_query?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// Render synthesizes a query into a waveform.
func (c *Client) Render(ctx context.Context, query json.RawMessage, speakerID int) (*audio.Waveform, error) {
	if len(query) == 0 {
		return nil, fmt.Errorf("synthesis: query must not be empty")
	}

	params := url.Values{}
	params.Set("speaker", strconv.Itoa(speakerID))

	body, err := c.post(ctx, "/synthesis?"+params.Encode(), query)
	if err != nil {
		return nil, err
	}

	w, err := DecodeWAV(body)
	if err != nil {
		return nil, fmt.Errorf("synthesis: decode rendered audio: %w", err)
	}

	c.logger.Debug("rendered audio", logging.Fields{
		"speaker":     speakerID,
		"samples":     w.Len(),
		"sample_rate": w.SampleRate,
	})
	return w, nil
}

// TextToSpeech builds a query and renders it in one call.
func (c *Client) TextToSpeech(ctx context.Context, text string, speakerID int) (*audio.Waveform, error) {
	query, err := c.BuildQuery(ctx, text, speakerID)
	if err != nil {
		return nil, err
	}
	return c.Render(ctx, query, speakerID)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("synthesis: build request: %w", err)
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("synthesis: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("synthesis: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("synthesis: %s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	return body, nil
}
