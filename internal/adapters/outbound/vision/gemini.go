// Package vision implements domain.VisionInterpreter with Google Gemini.
package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/httpapi"
	"github.com/tradecheck/tradecheck/internal/domain"
)

const (
	DefaultEndpoint   = "https://generativelanguage.googleapis.com/"
	DefaultAPIVersion = "v1beta"
	DefaultModel      = "gemini-2.5-flash"
)

var instructions = strings.Join([]string{
	"You are an automotive visual inspector.",
	"Analyze the following photos and notes. Extract visible condition issues ONLY if they are clearly supported by the images or explicitly stated in the description.",
	"Return the issues with an appropriate issueKey, severity (1-5), short title, concise description, a suitable icon name, and your confidence (0-1).",
	"Also estimate cleanliness (rough/average/clean/excellent), overall comment, and coverage (angles observed, count, and a photoQualityScore).",
	"",
	"Assumptions you MUST avoid:",
	"- Do not infer mechanical problems that are not visually indicated.",
	"- If unsure, omit the issue or set very low confidence.",
}, "\n")

// Config configures a GeminiInterpreter.
type Config struct {
	APIKey     string
	Model      string
	Endpoint   string
	APIVersion string
	Timeout    time.Duration
	RPS        float64 // sustained requests per second
}

// GeminiInterpreter asks the model for a JSON observation constrained by a
// response schema. Inline photos are sent as bytes; URL photos are passed as
// file URIs the model reads itself.
type GeminiInterpreter struct {
	cfg     Config
	client  *genai.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewGemini(ctx context.Context, cfg Config, logger *zap.Logger) (*GeminiInterpreter, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if !strings.HasSuffix(cfg.Endpoint, "/") {
		cfg.Endpoint += "/"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.Endpoint,
			APIVersion: cfg.APIVersion,
			Headers:    http.Header{"User-Agent": []string{httpapi.UserAgent}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiInterpreter{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), 1),
		logger:  logger,
	}, nil
}

func (g *GeminiInterpreter) Interpret(ctx context.Context, req domain.VisionRequest) (*domain.VisualObservation, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts(req), genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", g.cfg.Model, g.statusError(err))
	}
	g.logger.Debug("vision call finished",
		zap.String("model", g.cfg.Model),
		zap.Int("photos", len(req.Photos)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return decodeObservation(resp)
}

// parts renders the prompt, the mileage and description notes, then one part per photo.
func parts(req domain.VisionRequest) []*genai.Part {
	out := []*genai.Part{
		genai.NewPartFromText(instructions),
		genai.NewPartFromText(fmt.Sprintf("Mileage: %d", req.Mileage)),
		genai.NewPartFromText("User description: " + req.Description),
	}
	for _, p := range req.Photos {
		if p.IsURL() {
			out = append(out, genai.NewPartFromURI(p.URL, p.MediaType()))
			continue
		}
		out = append(out, genai.NewPartFromBytes(p.Data, p.MediaType()))
	}
	return out
}

// statusError maps API failures onto httpapi.StatusError so one retry policy
// covers every upstream.
func (g *GeminiInterpreter) statusError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	return &httpapi.StatusError{
		Method: http.MethodPost,
		URL:    "models/" + g.cfg.Model + ":generateContent",
		Code:   apiErr.Code,
		Body:   apiErr.Message,
	}
}

func decodeObservation(resp *genai.GenerateContentResponse) (*domain.VisualObservation, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, errors.New("no candidates in response")
	}

	c := resp.Candidates[0]
	var text strings.Builder
	if c.Content != nil {
		for _, p := range c.Content.Parts {
			if p != nil {
				text.WriteString(p.Text)
			}
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("empty candidate (finish reason %s)", c.FinishReason)
	}

	dec := json.NewDecoder(strings.NewReader(text.String()))
	dec.DisallowUnknownFields()
	var obs domain.VisualObservation
	if err := dec.Decode(&obs); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedObservation, err)
	}
	return &obs, nil
}
