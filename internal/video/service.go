// Package video はチャンネルの直近動画一覧の取得と整形を提供する。
package video

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/czmma/czapi/internal/metrics"
	"github.com/czmma/czapi/internal/model"
)

const (
	// fetchCount はプロバイダから取得する件数。ショート動画の除外分を見込んで多めに取る。
	fetchCount = 12
	// serveCount はクライアントに返す最大件数。
	serveCount = 6

	// MsgNotConfigured はAPIキー未設定時の案内メッセージ。
	MsgNotConfigured = "YouTube API not configured - visit channel directly"
	// MsgChannelNotFound はチャンネルIDを解決できなかった場合の案内メッセージ。
	MsgChannelNotFound = "Channel not found"
)

// ProviderClient は動画プラットフォームAPIのインターフェース。
type ProviderClient interface {
	ResolveChannelID(ctx context.Context, handle string) (string, error)
	SearchVideos(ctx context.Context, channelID string, maxResults int) ([]model.Video, error)
}

// ServiceConfig はServiceの設定を保持する。
type ServiceConfig struct {
	// Configured はプロバイダ認証情報が設定されているかどうか。
	Configured bool
	// ChannelID は事前解決済みのチャンネルID。設定時はハンドル解決を行わない。
	ChannelID string
	// ChannelHandle はチャンネルIDが未設定の場合に解決に使うハンドル。
	ChannelHandle string
}

// Service は動画一覧取得のサービス。
type Service struct {
	client  ProviderClient
	logger  *slog.Logger
	metrics metrics.Recorder
	config  ServiceConfig

	// 第三者コンテンツの整形ポリシー。タグを全て除去しテキストのみ残す。
	policy *bluemonday.Policy

	// チャンネルIDはプロセス内で1回だけ解決してキャッシュする
	mu        sync.Mutex
	channelID string
}

// NewService はServiceを生成する。
func NewService(client ProviderClient, logger *slog.Logger, rec metrics.Recorder, config ServiceConfig) *Service {
	return &Service{
		client:    client,
		logger:    logger,
		metrics:   rec,
		config:    config,
		policy:    bluemonday.StrictPolicy(),
		channelID: config.ChannelID,
	}
}

// Recent はチャンネルの直近動画を返す。
//
// 戻り値のmessageは空一覧の理由の案内で、エラーではない。
// プロバイダ未設定とチャンネル未発見は縮退動作（空一覧+案内）とし、
// プロバイダ呼び出し自体の失敗のみをエラーとして返す。
func (s *Service) Recent(ctx context.Context) (videos []model.Video, message string, err error) {
	if !s.config.Configured {
		return []model.Video{}, MsgNotConfigured, nil
	}

	channelID, err := s.resolveChannelID(ctx)
	if err != nil {
		return nil, "", err
	}
	if channelID == "" {
		s.logger.Warn("チャンネルIDを解決できませんでした",
			slog.String("handle", s.config.ChannelHandle),
		)
		return []model.Video{}, MsgChannelNotFound, nil
	}

	start := time.Now()
	fetched, err := s.client.SearchVideos(ctx, channelID, fetchCount)
	if err != nil {
		s.metrics.RecordProviderCall("youtube", "failure", time.Since(start))
		return nil, "", fmt.Errorf("動画一覧の取得に失敗しました: %w", err)
	}
	s.metrics.RecordProviderCall("youtube", "success", time.Since(start))

	videos = make([]model.Video, 0, serveCount)
	for _, v := range fetched {
		// "#short" の部分一致判定は "#shorts" も同時に除外する
		if strings.Contains(strings.ToLower(v.Title), "#short") {
			continue
		}
		v.Title = s.scrub(v.Title)
		v.Description = s.scrub(v.Description)
		videos = append(videos, v)
		if len(videos) == serveCount {
			break
		}
	}

	s.logger.Info("動画一覧を返します",
		slog.Int("returned", len(videos)),
		slog.Int("fetched", len(fetched)),
	)
	return videos, "", nil
}

// resolveChannelID はチャンネルIDを返す。設定値があればそれを使い、
// なければハンドルから1回だけ解決して以降はキャッシュを返す。
func (s *Service) resolveChannelID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.channelID != "" {
		return s.channelID, nil
	}

	s.logger.Info("チャンネルIDをハンドルから解決します",
		slog.String("handle", s.config.ChannelHandle),
	)
	id, err := s.client.ResolveChannelID(ctx, s.config.ChannelHandle)
	if err != nil {
		return "", fmt.Errorf("チャンネルIDの解決に失敗しました: %w", err)
	}

	// 未発見（空文字列）はキャッシュしない。次のリクエストで再解決を試みる。
	s.channelID = id
	if id != "" {
		s.logger.Info("チャンネルIDを解決しました", slog.String("channel_id", id))
	}
	return id, nil
}

// scrub は第三者コンテンツのテキストからマークアップを除去する。
// ポリシーが施したHTMLエスケープは元のテキストに戻す。
func (s *Service) scrub(text string) string {
	return html.UnescapeString(s.policy.Sanitize(text))
}
