package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/invoiceflow/po-reconciler/internal/common"
	"github.com/invoiceflow/po-reconciler/internal/llm"
)

// ProposeMatches implements llm.MatchOracle over the messages API.
// Everything that comes back is schema-validated before decoding; the
// matcher still re-validates indices on top of this.
func (c *Client) ProposeMatches(ctx context.Context, req llm.MatchRequest) (*llm.MatchProposal, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("oracle.match.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"po_number", req.PONumber,
		"candidates", len(req.Candidates),
		"references", len(req.References),
	)

	raw, err := c.post(ctx, buildMatchingPrompt(req))
	if err != nil {
		c.logger.Error("oracle.match.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	content, err := c.firstText(raw)
	if err != nil {
		c.logger.Error("oracle.match.decode_error", "req_id", rid, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrOracle, err)
	}

	obj, err := llm.ExtractJSONObject(content)
	if err != nil {
		c.logger.Error("oracle.match.no_json", "req_id", rid, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrOracle, err)
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildMatchProposalSchema(), obj); err != nil {
		c.logger.Error("oracle.match.schema_validation_failed", "req_id", rid, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrOracle, err)
	}

	var proposal llm.MatchProposal
	if err := json.Unmarshal(obj, &proposal); err != nil {
		return nil, fmt.Errorf("%w: unmarshal proposal: %v", common.ErrOracle, err)
	}

	c.logger.Info("oracle.match.ok",
		"req_id", rid,
		"matches", len(proposal.Matches),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &proposal, nil
}

// ExtractHeaderDetail implements llm.HeaderDetailExtractor.
func (c *Client) ExtractHeaderDetail(ctx context.Context, req llm.ExtractRequest) (*llm.ExtractResult, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("extract.llm.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(req.DocumentText),
		"filename", req.FilenameHint,
	)

	raw, err := c.post(ctx, buildExtractionPrompt(req))
	if err != nil {
		c.logger.Error("extract.llm.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, err
	}

	content, err := c.firstText(raw)
	if err != nil {
		return nil, raw, fmt.Errorf("decode response: %w", err)
	}

	obj, err := llm.ExtractJSONObject(content)
	if err != nil {
		c.logger.Error("extract.llm.no_json", "req_id", rid, "error", err)
		return nil, []byte(content), fmt.Errorf("extract json: %w", err)
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildHeaderDetailSchema(), obj); err != nil {
		c.logger.Error("extract.llm.schema_validation_failed", "req_id", rid, "error", err)
		return nil, obj, fmt.Errorf("schema validation failed: %w", err)
	}

	var out llm.ExtractResult
	if err := json.Unmarshal(obj, &out); err != nil {
		return nil, obj, fmt.Errorf("unmarshal fields: %w", err)
	}

	c.logger.Info("extract.llm.ok",
		"req_id", rid,
		"header_fields", len(out.Header),
		"line_items", len(out.LineItems),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &out, obj, nil
}

// post sends one user message and returns the raw response body.
func (c *Client) post(ctx context.Context, prompt string) ([]byte, error) {
	body := map[string]any{
		"model":       c.cfg.Model,
		"max_tokens":  c.cfg.MaxTokens,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/messages", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: oracle http error: %v", common.ErrTransient, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.Warn("oracle response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: oracle status %d: %s", common.ErrOracle, resp.StatusCode, string(raw))
	}
	return raw, nil
}

// firstText pulls the first text block out of a messages API response.
func (c *Client) firstText(raw []byte) (string, error) {
	var msg struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return "", fmt.Errorf("decode message: %w", err)
	}
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}
