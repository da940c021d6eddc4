// Package sendernet はSender.net購読者リストAPIのクライアントを提供する。
package sendernet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// defaultEndpoint はSender.netの購読者登録APIのエンドポイント。
const defaultEndpoint = "https://api.sender.net/v2/subscribers"

// Client はSender.net APIのクライアント。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	endpoint   string // テスト用にエンドポイントを差し替え可能
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, logger *slog.Logger, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
	}
}

// subscribeRequest は購読者登録リクエストのボディ。
// groupsは未指定でも空配列として送信する。
type subscribeRequest struct {
	Email  string   `json:"email"`
	Groups []string `json:"groups"`
}

// Subscribe はメールアドレスを購読者リストに登録する。
// groupsが空の場合はプロバイダ側のデフォルトリストに登録される。
func (c *Client) Subscribe(ctx context.Context, email string, groups []string) error {
	if groups == nil {
		groups = []string{}
	}

	body, err := json.Marshal(subscribeRequest{Email: email, Groups: groups})
	if err != nil {
		return fmt.Errorf("リクエストボディの構築に失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Sender APIの呼び出しに失敗しました",
			slog.String("error", err.Error()),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Sender APIがエラーステータスを返しました",
			slog.Int("http_status", resp.StatusCode),
			slog.String("detail", string(detail)),
		)
		return fmt.Errorf("Sender APIがステータス %d を返しました", resp.StatusCode)
	}

	return nil
}
