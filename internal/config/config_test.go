package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
	if cfg.ProviderTimeout != 10*time.Second {
		t.Errorf("ProviderTimeout = %v, want %v", cfg.ProviderTimeout, 10*time.Second)
	}
	if cfg.YouTubeChannelHandle != "CombatZoneMMA" {
		t.Errorf("YouTubeChannelHandle = %q, want %q", cfg.YouTubeChannelHandle, "CombatZoneMMA")
	}

	// レート制限のデフォルト: 一般API 15分/100、問い合わせ 1時間/5、
	// ニュースレター 1時間/5、動画一覧 1分/10
	if cfg.APIWindow != 15*time.Minute || cfg.APIMax != 100 {
		t.Errorf("API tier = %v/%d, want 15m/100", cfg.APIWindow, cfg.APIMax)
	}
	if cfg.ContactWindow != time.Hour || cfg.ContactMax != 5 {
		t.Errorf("Contact tier = %v/%d, want 1h/5", cfg.ContactWindow, cfg.ContactMax)
	}
	if cfg.NewsletterWindow != time.Hour || cfg.NewsletterMax != 5 {
		t.Errorf("Newsletter tier = %v/%d, want 1h/5", cfg.NewsletterWindow, cfg.NewsletterMax)
	}
	if cfg.VideoWindow != time.Minute || cfg.VideoMax != 10 {
		t.Errorf("Video tier = %v/%d, want 1m/10", cfg.VideoWindow, cfg.VideoMax)
	}
}

func TestLoad_CredentialsDefaultToEmpty(t *testing.T) {
	cfg := Load()

	// 認証情報の未設定は正常系。縮退動作の前提になる。
	if cfg.ResendAPIKey != "" {
		t.Errorf("ResendAPIKey = %q, want empty", cfg.ResendAPIKey)
	}
	if cfg.SenderAPIKey != "" {
		t.Errorf("SenderAPIKey = %q, want empty", cfg.SenderAPIKey)
	}
	if cfg.YouTubeAPIKey != "" {
		t.Errorf("YouTubeAPIKey = %q, want empty", cfg.YouTubeAPIKey)
	}
}

func TestLoad_ContactRecipientsFromEnv(t *testing.T) {
	t.Setenv("CONTACT_RECIPIENTS", "info@example.com, press@example.com ,")

	cfg := Load()

	want := []string{"info@example.com", "press@example.com"}
	if diff := cmp.Diff(want, cfg.ContactRecipients); diff != "" {
		t.Errorf("ContactRecipients mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ContactRecipientsDefault(t *testing.T) {
	cfg := Load()

	want := []string{"czmmaemailing@gmail.com"}
	if diff := cmp.Diff(want, cfg.ContactRecipients); diff != "" {
		t.Errorf("ContactRecipients mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidNumericFallsBackToDefault(t *testing.T) {
	t.Setenv("RATE_LIMIT_API_MAX", "not-a-number")
	t.Setenv("RATE_LIMIT_API_WINDOW", "soon")

	cfg := Load()

	if cfg.APIMax != 100 {
		t.Errorf("APIMax = %d, want 100", cfg.APIMax)
	}
	if cfg.APIWindow != 15*time.Minute {
		t.Errorf("APIWindow = %v, want 15m", cfg.APIWindow)
	}
}

func TestLoad_OverridesFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_VIDEO_MAX", "20")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "9090")
	}
	if cfg.ProviderTimeout != 3*time.Second {
		t.Errorf("ProviderTimeout = %v, want 3s", cfg.ProviderTimeout)
	}
	if cfg.VideoMax != 20 {
		t.Errorf("VideoMax = %d, want 20", cfg.VideoMax)
	}
}
