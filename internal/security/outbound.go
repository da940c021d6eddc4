// Package security は外部プロバイダ呼び出しの保護機能を提供する。
package security

import (
	"net/http"
	"time"

	"github.com/doyensec/safeurl"
)

// NewOutboundClient は外部プロバイダ（メール配信・購読者リスト・動画API）
// 呼び出し用のHTTPクライアントを生成する。
//
// httpsスキームとポート443のみ許可し、必ずタイムアウトを設定する。
// 外部呼び出しがリクエスト処理を無期限に塞ぐことを防ぐ。
// safeurlはDialerレベルでDNS解決後のIPアドレスも検証するため、
// プライベートIPやメタデータIPへの到達は設定ミスがあってもブロックされる。
func NewOutboundClient(timeout time.Duration) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("https").
		SetAllowedPorts(443).
		Build()

	wrappedClient := safeurl.Client(config)
	return wrappedClient.Client
}
