// Package app はアプリケーションの起動と依存関係のワイヤリングを行う。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/czmma/czapi/internal/config"
	"github.com/czmma/czapi/internal/contact"
	"github.com/czmma/czapi/internal/handler"
	"github.com/czmma/czapi/internal/logger"
	"github.com/czmma/czapi/internal/metrics"
	"github.com/czmma/czapi/internal/newsletter"
	"github.com/czmma/czapi/internal/ratelimit"
	"github.com/czmma/czapi/internal/resend"
	"github.com/czmma/czapi/internal/security"
	"github.com/czmma/czapi/internal/sendernet"
	"github.com/czmma/czapi/internal/video"
	"github.com/czmma/czapi/internal/youtube"
)

// Init はアプリケーションの初期化を行う。
// JSON構造化ログをセットアップし、環境変数からConfigを読み込む。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) *config.Config {
	logger.SetupDefault(w)
	return config.Load()
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg := Init(w)

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	return runServe(cfg)
}

// runServe はAPIサーバーモードで起動する。
// 全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. レート制限ストア
	// REDIS_URL設定時はRedisで複数インスタンス間のカウントを共有する。
	// 未設定ならインメモリ（単一インスタンス前提の既定）。
	store, err := newRateLimitStore(ctx, cfg)
	if err != nil {
		return err
	}

	// 2. メトリクス
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 3. 外部プロバイダクライアント
	// 認証情報が未設定のプロバイダはnilのままにし、サービス側で
	// 縮退モード（スキップ／案内メッセージ）として扱う。
	outbound := security.NewOutboundClient(cfg.ProviderTimeout)

	var sender contact.EmailSender
	if cfg.ResendAPIKey != "" {
		sender = resend.NewClient(outbound, slog.Default(), cfg.ResendAPIKey)
	} else {
		slog.Warn("RESEND_API_KEY not set, contact emails will be skipped")
	}

	var subscriber newsletter.SubscriberClient
	if cfg.SenderAPIKey != "" {
		subscriber = sendernet.NewClient(outbound, slog.Default(), cfg.SenderAPIKey)
	} else {
		slog.Warn("SENDER_API_KEY not set, newsletter signups will be skipped")
	}

	var provider video.ProviderClient
	if cfg.YouTubeAPIKey != "" {
		provider = youtube.NewClient(outbound, slog.Default(), cfg.YouTubeAPIKey)
	}

	// 4. ドメインサービス
	contactService := contact.NewService(sender, slog.Default(), collector, contact.ServiceConfig{
		FromEmail: cfg.ResendFromEmail,
		Routing:   contact.DefaultRouting(cfg.ContactRecipients),
		Labels:    contact.DefaultLabels(),
	})
	newsletterService := newsletter.NewService(subscriber, cfg.SenderGroupID, slog.Default(), collector)
	videoService := video.NewService(provider, slog.Default(), collector, video.ServiceConfig{
		Configured:    cfg.YouTubeAPIKey != "",
		ChannelID:     cfg.YouTubeChannelID,
		ChannelHandle: cfg.YouTubeChannelHandle,
	})

	// 5. ルーターの構築
	router := handler.NewRouter(handler.RouterDeps{
		Logger:            slog.Default(),
		Metrics:           collector,
		Gatherer:          registry,
		Store:             store,
		Rules:             rulesFromConfig(cfg),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,

		ContactService:    contactService,
		NewsletterService: newsletterService,
		VideoService:      videoService,
	})

	// 6. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// newRateLimitStore はレート制限ストアを構築する。
func newRateLimitStore(ctx context.Context, cfg *config.Config) (ratelimit.Store, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		slog.Info("rate limit store: redis", slog.String("addr", opts.Addr))
		return ratelimit.NewRedisStore(client), nil
	}

	memory := ratelimit.NewMemoryStore()
	memory.StartJanitor(ctx, 10*time.Minute)
	slog.Info("rate limit store: in-memory")
	return memory, nil
}

// rulesFromConfig はConfigからエンドポイント別レート制限設定を組み立てる。
func rulesFromConfig(cfg *config.Config) handler.RateLimitRules {
	return handler.RateLimitRules{
		API:        ratelimit.Config{Window: cfg.APIWindow, Max: cfg.APIMax},
		Contact:    ratelimit.Config{Window: cfg.ContactWindow, Max: cfg.ContactMax},
		Newsletter: ratelimit.Config{Window: cfg.NewsletterWindow, Max: cfg.NewsletterMax},
		Video:      ratelimit.Config{Window: cfg.VideoWindow, Max: cfg.VideoMax},
	}
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /api/health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/api/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
