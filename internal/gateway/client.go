package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/younglord3302/Lumina/internal/config"
	"github.com/younglord3302/Lumina/internal/logging"
)

var (
	// ErrNoAPIKey means no Gemini key was found in config or environment.
	ErrNoAPIKey = errors.New("no API key configured (set GEMINI_API_KEY or run lumina status)")
	// ErrBusy is returned when a chat request arrives while another is in flight.
	ErrBusy = errors.New("assistant is busy with another request")
	// ErrEntityNotFound signals that the API rejected the key or model.
	// Callers should refresh credentials and retry once.
	ErrEntityNotFound = errors.New("requested entity was not found")
	// ErrVideoTimeout means the render did not finish within the poll budget.
	ErrVideoTimeout = errors.New("video generation timed out")
)

// contentGenerator is the slice of the genai surface the gateway calls.
// Swapped for a stub in tests.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type videoGenerator interface {
	GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation, cfg *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error)
}

// genaiVideo adapts the SDK's split Models/Operations services to videoGenerator.
type genaiVideo struct {
	models *genai.Models
	ops    *genai.Operations
}

func (g genaiVideo) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return g.models.GenerateVideos(ctx, model, prompt, image, cfg)
}

func (g genaiVideo) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation, cfg *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error) {
	return g.ops.GetVideosOperation(ctx, op, cfg)
}

// Client wraps the Gemini API for every storefront AI operation.
type Client struct {
	cfg    *config.Config
	log    *zap.Logger
	raw    *genai.Client
	models contentGenerator
	video  videoGenerator

	// pollInterval overrides cfg.PollInterval when nonzero; used by tests.
	pollInterval time.Duration
}

// New connects to the Gemini API with the configured key.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if log == nil {
		log = zap.NewNop()
	}

	raw, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	log.Debug("gateway ready",
		zap.String("category", logging.CategoryGateway),
		zap.String("chat_model", cfg.ChatModelName()),
		zap.String("video_model", cfg.VideoModelName()))

	return &Client{
		cfg:    cfg,
		log:    log,
		raw:    raw,
		models: raw.Models,
		video:  genaiVideo{models: raw.Models, ops: raw.Operations},
	}, nil
}

// Close releases the underlying API client.
// genai.Client exposes no close method; nothing to release.
func (c *Client) Close() error {
	return nil
}

// classify maps raw API failures onto gateway sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "requested entity was not found") ||
		strings.Contains(s, "not_found") ||
		strings.Contains(s, "status 404") {
		return fmt.Errorf("%w: %v", ErrEntityNotFound, err)
	}
	return err
}

// responseText flattens the first candidate's text parts.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}
