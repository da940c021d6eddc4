// Package config は環境変数からのアプリケーション設定の読み込みを提供する。
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// デフォルトの問い合わせメール宛先。環境変数未設定時のフォールバック。
const defaultContactRecipient = "czmmaemailing@gmail.com"

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
// プロバイダ認証情報はすべて任意であり、未設定の場合は該当エンドポイントが
// 縮退動作（ログのみ・空応答）になる。起動自体は失敗しない。
type Config struct {
	// Server
	ServerPort        string
	CORSAllowedOrigin string

	// Contact（Resendトランザクショナルメール）
	ResendAPIKey      string
	ResendFromEmail   string
	ContactRecipients []string

	// Newsletter（Sender.net購読者リスト）
	SenderAPIKey  string
	SenderGroupID string

	// YouTube Data API
	YouTubeAPIKey        string
	YouTubeChannelID     string
	YouTubeChannelHandle string

	// 外部プロバイダ呼び出し共通
	ProviderTimeout time.Duration

	// Rate Limit（固定ウィンドウ: 一般API / 問い合わせ / ニュースレター / 動画一覧）
	APIWindow        time.Duration
	APIMax           int
	ContactWindow    time.Duration
	ContactMax       int
	NewsletterWindow time.Duration
	NewsletterMax    int
	VideoWindow      time.Duration
	VideoMax         int

	// Redis（任意。設定時はレート制限ストアをRedisバックエンドに切り替える）
	RedisURL string
}

// Load は環境変数からConfigを読み込む。
// すべての項目が任意のため、常に有効なConfigを返す。
func Load() *Config {
	return &Config{
		ServerPort:        getEnvString("SERVER_PORT", "8080"),
		CORSAllowedOrigin: getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),

		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		ResendFromEmail:   getEnvString("RESEND_FROM_EMAIL", "Combat Zone <onboarding@resend.dev>"),
		ContactRecipients: getEnvStringList("CONTACT_RECIPIENTS", []string{defaultContactRecipient}),

		SenderAPIKey:  os.Getenv("SENDER_API_KEY"),
		SenderGroupID: os.Getenv("SENDER_GROUP_ID"),

		YouTubeAPIKey:        os.Getenv("YOUTUBE_API_KEY"),
		YouTubeChannelID:     os.Getenv("YOUTUBE_CHANNEL_ID"),
		YouTubeChannelHandle: getEnvString("YOUTUBE_CHANNEL_HANDLE", "CombatZoneMMA"),

		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),

		APIWindow:        getEnvDuration("RATE_LIMIT_API_WINDOW", 15*time.Minute),
		APIMax:           getEnvInt("RATE_LIMIT_API_MAX", 100),
		ContactWindow:    getEnvDuration("RATE_LIMIT_CONTACT_WINDOW", time.Hour),
		ContactMax:       getEnvInt("RATE_LIMIT_CONTACT_MAX", 5),
		NewsletterWindow: getEnvDuration("RATE_LIMIT_NEWSLETTER_WINDOW", time.Hour),
		NewsletterMax:    getEnvInt("RATE_LIMIT_NEWSLETTER_MAX", 5),
		VideoWindow:      getEnvDuration("RATE_LIMIT_VIDEO_WINDOW", time.Minute),
		VideoMax:         getEnvInt("RATE_LIMIT_VIDEO_MAX", 10),

		RedisURL: os.Getenv("REDIS_URL"),
	}
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// getEnvStringList はカンマ区切りの環境変数を文字列スライスとして読み込む。
// 空要素は除去する。
func getEnvStringList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
