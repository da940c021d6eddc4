package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/czmma/czapi/internal/metrics"
	"github.com/czmma/czapi/internal/ratelimit"
)

// NewRateLimitMiddleware は固定ウィンドウ方式のレート制限ミドルウェアを返す。
//
// scopeはエンドポイント識別子で、ストア上のキーの名前空間とメトリクスの
// ラベルに使う。クライアントキーは同じでもscopeが異なれば独立に数える。
// 上限超過時は429と固定メッセージのJSONを返す。
//
// ストア自体の障害はフェイルオープンとし、ログを残してリクエストを通す。
// レート制限の故障でサイト全体を落とさないため。
func NewRateLimitMiddleware(store ratelimit.Store, scope string, cfg ratelimit.Config, message string, rec metrics.Recorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":" + ClientKey(r)

			allowed, err := store.Allow(r.Context(), key, cfg)
			if err != nil {
				slog.Error("rate limit store unavailable, allowing request",
					slog.String("scope", scope),
					slog.String("error", err.Error()),
				)
				allowed = true
			}

			if !allowed {
				slog.Warn("rate limit exceeded",
					slog.String("scope", scope),
					slog.String("client_key", ClientKey(r)),
				)
				rec.RecordRateLimited(scope)

				w.Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": message})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
