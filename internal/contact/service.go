// Package contact は問い合わせフォームの送信処理を提供する。
// 件名に応じた宛先へのルーティング、HTMLメール本文の構築、
// トランザクショナルメールプロバイダ経由の送信を行う。
package contact

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/czmma/czapi/internal/metrics"
	"github.com/czmma/czapi/internal/model"
	"github.com/czmma/czapi/internal/resend"
	"github.com/czmma/czapi/internal/validate"
)

// fallbackRecipient はルーティング表が引けなかった場合の最終フォールバック宛先。
const fallbackRecipient = "czmmaemailing@gmail.com"

// EmailSender はメール送信プロバイダのインターフェース。
type EmailSender interface {
	SendEmail(ctx context.Context, msg resend.Message) error
}

// ServiceConfig はServiceの設定を保持する。
// ルーティング表とラベル表はイミュータブルな設定として注入する。
// テストで代替の表に差し替えられる。
type ServiceConfig struct {
	// FromEmail は送信元アドレス（表示名つき可）。
	FromEmail string
	// Routing は件名→宛先リストの表。
	Routing map[string][]string
	// Labels は件名→メール件名用ラベルの表。
	Labels map[string]string
}

// DefaultRouting は全件名を同じ宛先リストに割り当てるルーティング表を返す。
func DefaultRouting(recipients []string) map[string][]string {
	return map[string][]string{
		model.SubjectGeneral:     recipients,
		model.SubjectFighter:     recipients,
		model.SubjectSponsorship: recipients,
		model.SubjectMedia:       recipients,
	}
}

// DefaultLabels は件名→ラベルのデフォルト表を返す。
func DefaultLabels() map[string]string {
	return map[string]string{
		model.SubjectGeneral:     "General Inquiry",
		model.SubjectFighter:     "Fighter Inquiry",
		model.SubjectSponsorship: "Sponsorship Inquiry",
		model.SubjectMedia:       "Media/Press Inquiry",
	}
}

// Service は問い合わせ送信処理のサービス。
type Service struct {
	sender  EmailSender // 未設定（nil）の場合はログのみ残して送信をスキップする
	logger  *slog.Logger
	metrics metrics.Recorder
	config  ServiceConfig
}

// NewService はServiceを生成する。senderがnilの場合、送信はスキップされるが
// 送信内容の受理自体は成功として扱われる。
func NewService(sender EmailSender, logger *slog.Logger, rec metrics.Recorder, config ServiceConfig) *Service {
	return &Service{
		sender:  sender,
		logger:  logger,
		metrics: rec,
		config:  config,
	}
}

// Submit は検証済みの問い合わせ送信を処理する。
// 自由記述フィールドをサニタイズし、件名から宛先を解決してメールを送信する。
//
// メール送信の失敗はログに残して握りつぶし、Submitは成功を返す。
// 送信の受理と配送の成否を切り離すのは意図した仕様であり、
// 配送失敗をフォームのエラーとしてエンドユーザーに見せない。
func (s *Service) Submit(ctx context.Context, sub model.ContactSubmission) error {
	sanitized := model.ContactSubmission{
		FirstName: validate.CleanText(sub.FirstName),
		LastName:  validate.CleanText(sub.LastName),
		Email:     validate.CleanEmail(sub.Email),
		Subject:   sub.Subject, // 列挙値はバリデーション済みのためそのまま通す
		Message:   validate.CleanText(sub.Message),
	}

	submissionID := uuid.NewString()
	s.logger.Info("問い合わせフォームの送信を受理しました",
		slog.String("submission_id", submissionID),
		slog.String("subject", sanitized.Subject),
		slog.String("email", sanitized.Email),
	)
	s.metrics.RecordContactSubmission()

	// 宛先の解決はバリデーション通過後のフォールバック。
	// 未知の件名はバリデーションで既に拒否されている。
	recipients := s.config.Routing[sanitized.Subject]
	if len(recipients) == 0 {
		recipients = s.config.Routing[model.SubjectGeneral]
	}
	if len(recipients) == 0 {
		recipients = []string{fallbackRecipient}
	}

	label := s.config.Labels[sanitized.Subject]
	if label == "" {
		label = "Contact Form"
	}

	if s.sender == nil {
		s.logger.Info("メールプロバイダが未設定のため送信をスキップします",
			slog.String("submission_id", submissionID),
		)
		return nil
	}

	html, err := renderEmailBody(label, sanitized)
	if err != nil {
		// 本文構築の失敗も配送失敗と同じ扱い。受理は成功のまま。
		s.logger.Error("メール本文の構築に失敗しました",
			slog.String("submission_id", submissionID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	start := time.Now()
	err = s.sender.SendEmail(ctx, resend.Message{
		From:    s.config.FromEmail,
		To:      recipients,
		ReplyTo: sanitized.Email,
		Subject: "[" + label + "] " + sanitized.FirstName + " " + sanitized.LastName,
		HTML:    html,
	})
	if err != nil {
		s.metrics.RecordProviderCall("resend", "failure", time.Since(start))
		s.logger.Error("問い合わせメールの送信に失敗しました",
			slog.String("submission_id", submissionID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	s.metrics.RecordProviderCall("resend", "success", time.Since(start))
	s.logger.Info("問い合わせメールを送信しました",
		slog.String("submission_id", submissionID),
		slog.Int("recipient_count", len(recipients)),
	)
	return nil
}

// renderEmailBody はサニタイズ済みの送信内容からラベルつきHTMLメール本文を構築する。
func renderEmailBody(label string, sub model.ContactSubmission) (string, error) {
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, emailData{
		Label:      label,
		Submission: sub,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
