package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/czmma/czapi/internal/metrics"
	"github.com/czmma/czapi/internal/middleware"
	"github.com/czmma/czapi/internal/ratelimit"
)

// RateLimitRules はエンドポイント別のレート制限設定をまとめた構造体。
type RateLimitRules struct {
	API        ratelimit.Config
	Contact    ratelimit.Config
	Newsletter ratelimit.Config
	Video      ratelimit.Config
}

// DefaultRateLimitRules は本番の既定値を返す。主にテスト用。
func DefaultRateLimitRules() RateLimitRules {
	return RateLimitRules{
		API:        ratelimit.Config{Window: 15 * time.Minute, Max: 100},
		Contact:    ratelimit.Config{Window: time.Hour, Max: 5},
		Newsletter: ratelimit.Config{Window: time.Hour, Max: 5},
		Video:      ratelimit.Config{Window: time.Minute, Max: 10},
	}
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	Logger            *slog.Logger
	Metrics           metrics.Recorder
	Gatherer          prometheus.Gatherer
	Store             ratelimit.Store
	Rules             RateLimitRules
	CORSAllowedOrigin string

	ContactService    ContactServiceInterface
	NewsletterService NewsletterServiceInterface
	VideoService      VideoServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RequestID → Logging → SecurityHeaders → CORS
//
// /metricsと/api/healthはレート制限の外に置く。/api配下は一般レート制限が
// かかり、さらにPOST /api/contact・POST /api/newsletter・GET /api/youtube/videos
// にはエンドポイント固有の制限が重なる。
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware(deps.Logger))
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	contactHandler := NewContactHandler(deps.ContactService, deps.Logger)
	newsletterHandler := NewNewsletterHandler(deps.NewsletterService, deps.Logger)
	videoHandler := NewVideoHandler(deps.VideoService, deps.Logger)

	generalLimit := middleware.NewRateLimitMiddleware(deps.Store, "api", deps.Rules.API,
		"Too many requests, please try again later.", deps.Metrics)
	contactLimit := middleware.NewRateLimitMiddleware(deps.Store, "contact", deps.Rules.Contact,
		"Too many contact submissions. Please try again later.", deps.Metrics)
	newsletterLimit := middleware.NewRateLimitMiddleware(deps.Store, "newsletter", deps.Rules.Newsletter,
		"Too many signup attempts. Please try again later.", deps.Metrics)
	videoLimit := middleware.NewRateLimitMiddleware(deps.Store, "video", deps.Rules.Video,
		"Too many video requests, please try again shortly.", deps.Metrics)

	r.Route("/api", func(r chi.Router) {
		// 死活監視は制限の対象外
		r.Get("/health", Health)

		r.Group(func(r chi.Router) {
			r.Use(generalLimit)

			r.With(contactLimit).Post("/contact", contactHandler.Submit)
			r.With(newsletterLimit).Post("/newsletter", newsletterHandler.Subscribe)
			r.With(videoLimit).Get("/youtube/videos", videoHandler.List)
		})
	})

	return r
}
