package explain

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
)

type GeminiConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type GeminiExplainer struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewGeminiExplainer(cfg GeminiConfig) (*GeminiExplainer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-1.5-flash"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GeminiExplainer{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (e *GeminiExplainer) Explain(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(buildGeminiPayload(req.SQL))
	if err != nil {
		return Result{}, fmt.Errorf("marshal generate payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		e.baseURL, url.PathEscape(e.model), url.QueryEscape(e.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("request content generation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	rawRespBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read generate response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return Result{}, fmt.Errorf("content generation failed status=%d body=%s", resp.StatusCode, string(rawRespBody))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(rawRespBody, &parsed); err != nil {
		return Result{}, fmt.Errorf("decode generate response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return Result{}, fmt.Errorf("empty generation candidates")
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	explanation := strings.TrimSpace(text.String())
	if explanation == "" {
		return Result{}, fmt.Errorf("model returned empty explanation")
	}
	return Result{
		Explanation: explanation,
		Provider:    "gemini",
		Model:       e.model,
	}, nil
}

func buildGeminiPayload(sqlText string) map[string]any {
	// The query text goes into the prompt verbatim; escaping it would change
	// what the model is asked to explain.
	prompt := fmt.Sprintf(
		"Você é um especialista em SQL. Analise a query abaixo e explique o que ela faz "+
			"em um parágrafo claro e conciso, e depois liste o que cada função principal faz.\n\n"+
			"Query SQL:\n```sql\n%s\n```",
		sqlText,
	)
	return map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}
}
