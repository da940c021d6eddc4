// Package newsletter はニュースレター購読登録の処理を提供する。
package newsletter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/czmma/czapi/internal/metrics"
	"github.com/czmma/czapi/internal/validate"
)

// SubscriberClient は購読者リストプロバイダのインターフェース。
type SubscriberClient interface {
	Subscribe(ctx context.Context, email string, groups []string) error
}

// Service はニュースレター登録のサービス。
type Service struct {
	client  SubscriberClient // 未設定（nil）の場合はログのみ残して登録をスキップする
	groupID string
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewService はServiceを生成する。clientがnilの場合、登録リクエストは
// ログに記録された上で成功として扱われる。
func NewService(client SubscriberClient, groupID string, logger *slog.Logger, rec metrics.Recorder) *Service {
	return &Service{
		client:  client,
		groupID: groupID,
		logger:  logger,
		metrics: rec,
	}
}

// Subscribe は検証済みのメールアドレスを購読者リストに登録する。
//
// 問い合わせメールの配送と異なり、リストへの登録はこの呼び出しの
// 目的そのものであるため、プロバイダの失敗はエラーとして呼び出し側に返す。
func (s *Service) Subscribe(ctx context.Context, email string) error {
	email = validate.CleanEmail(email)

	s.logger.Info("ニュースレター登録リクエストを受理しました",
		slog.String("email", email),
	)

	if s.client == nil {
		s.logger.Info("購読者リストプロバイダが未設定のため登録をスキップします",
			slog.String("email", email),
		)
		s.metrics.RecordNewsletterSignup()
		return nil
	}

	var groups []string
	if s.groupID != "" {
		groups = []string{s.groupID}
	}

	start := time.Now()
	if err := s.client.Subscribe(ctx, email, groups); err != nil {
		s.metrics.RecordProviderCall("sender", "failure", time.Since(start))
		return fmt.Errorf("購読者リストへの登録に失敗しました: %w", err)
	}

	s.metrics.RecordProviderCall("sender", "success", time.Since(start))
	s.metrics.RecordNewsletterSignup()
	s.logger.Info("購読者リストに登録しました",
		slog.String("email", email),
	)
	return nil
}
