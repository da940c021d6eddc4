// Package youtube はYouTube Data API v3のクライアントを提供する。
// チャンネルハンドルからのチャンネルID解決と、チャンネルの直近動画の検索を行う。
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/czmma/czapi/internal/model"
)

// defaultBaseURL はYouTube Data API v3のベースURL。
const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client はYouTube Data APIのクライアント。
// APIクォータを守るため、外向きの呼び出しはlimiterでペーシングする。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	baseURL    string // テスト用にベースURLを差し替え可能
	limiter    *rate.Limiter
}

// NewClient はClientの新しいインスタンスを生成する。
// ペーシングは5 req/sec・バースト2。1リクエストの処理で
// 最大2回（ID解決+検索）呼び出す前提の保守的な値。
func NewClient(httpClient *http.Client, logger *slog.Logger, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(5), 2),
	}
}

// channelsResponse は channels エンドポイントのレスポンス。
type channelsResponse struct {
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
}

// searchResponse は search エンドポイントのレスポンス。
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
			PublishedAt string `json:"publishedAt"`
			Description string `json:"description"`
		} `json:"snippet"`
	} `json:"items"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ResolveChannelID はチャンネルハンドルからチャンネルIDを解決する。
// ハンドルに対応するチャンネルが見つからない場合は空文字列を返す（エラーではない）。
// APIがエラーステータスを返した場合もログのみ残して空文字列を返す。
// 通信自体の失敗はエラーとして返す。
func (c *Client) ResolveChannelID(ctx context.Context, handle string) (string, error) {
	q := url.Values{}
	q.Set("part", "id")
	q.Set("forHandle", handle)
	q.Set("key", c.apiKey)

	var result channelsResponse
	status, err := c.getJSON(ctx, "/channels", q, &result)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		c.logger.Warn("チャンネルID解決がエラーステータスを返しました",
			slog.Int("http_status", status),
			slog.String("handle", handle),
		)
		return "", nil
	}

	if len(result.Items) == 0 {
		return "", nil
	}
	return result.Items[0].ID, nil
}

// SearchVideos はチャンネルの直近動画を公開日降順で最大maxResults件取得する。
func (c *Client) SearchVideos(ctx context.Context, channelID string, maxResults int) ([]model.Video, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("channelId", channelID)
	q.Set("order", "date")
	q.Set("type", "video")
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("key", c.apiKey)

	var result searchResponse
	status, err := c.getJSON(ctx, "/search", q, &result)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		msg := "unknown error"
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		c.logger.Error("動画検索がエラーステータスを返しました",
			slog.Int("http_status", status),
			slog.String("api_error", msg),
		)
		return nil, fmt.Errorf("YouTube APIがステータス %d を返しました: %s", status, msg)
	}

	videos := make([]model.Video, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, model.Video{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Thumbnail:   pickThumbnail(item.Snippet.Thumbnails.High.URL, item.Snippet.Thumbnails.Medium.URL, item.Snippet.Thumbnails.Default.URL),
			PublishedAt: item.Snippet.PublishedAt,
			Description: item.Snippet.Description,
		})
	}
	return videos, nil
}

// getJSON はペーシングを挟んでGETリクエストを実行し、レスポンスJSONをデコードする。
// HTTPステータスは呼び出し側が判定する。
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("ペーシング待機が中断されました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("YouTube APIの呼び出しに失敗しました",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}
	return resp.StatusCode, nil
}

// pickThumbnail は high → medium → default の優先順でサムネイルURLを選ぶ。
func pickThumbnail(high, medium, def string) string {
	if high != "" {
		return high
	}
	if medium != "" {
		return medium
	}
	return def
}
