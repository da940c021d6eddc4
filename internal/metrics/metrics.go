// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。
// ミドルウェアとサービス層から利用する。
type Recorder interface {
	RecordHTTPStatus(statusCode int)
	RecordRateLimited(endpoint string)
	RecordProviderCall(provider, outcome string, duration time.Duration)
	RecordContactSubmission()
	RecordNewsletterSignup()
}

// Collector はPrometheusメトリクスを収集するRecorder実装。
type Collector struct {
	httpStatus         *prometheus.CounterVec
	rateLimited        *prometheus.CounterVec
	providerCalls      *prometheus.CounterVec
	providerLatency    *prometheus.HistogramVec
	contactSubmissions prometheus.Counter
	newsletterSignups  prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "czapi_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "czapi_rate_limited_total",
			Help: "レート制限で拒否したリクエスト数（エンドポイント別）",
		}, []string{"endpoint"}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "czapi_provider_calls_total",
			Help: "外部プロバイダ呼び出し数（プロバイダ・結果別）",
		}, []string{"provider", "outcome"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "czapi_provider_latency_seconds",
			Help:    "外部プロバイダ呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		contactSubmissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "czapi_contact_submissions_total",
			Help: "受理した問い合わせ送信の合計数",
		}),
		newsletterSignups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "czapi_newsletter_signups_total",
			Help: "受理したニュースレター登録の合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.rateLimited,
		c.providerCalls,
		c.providerLatency,
		c.contactSubmissions,
		c.newsletterSignups,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRateLimited はレート制限による拒否を記録する。
func (c *Collector) RecordRateLimited(endpoint string) {
	c.rateLimited.WithLabelValues(endpoint).Inc()
}

// RecordProviderCall は外部プロバイダ呼び出しの結果とレイテンシを記録する。
// outcomeは "success" または "failure"。
func (c *Collector) RecordProviderCall(provider, outcome string, duration time.Duration) {
	c.providerCalls.WithLabelValues(provider, outcome).Inc()
	c.providerLatency.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordContactSubmission は問い合わせ送信の受理を記録する。
func (c *Collector) RecordContactSubmission() {
	c.contactSubmissions.Inc()
}

// RecordNewsletterSignup はニュースレター登録の受理を記録する。
func (c *Collector) RecordNewsletterSignup() {
	c.newsletterSignups.Inc()
}

// Nop は何も記録しないRecorder実装。テスト用。
type Nop struct{}

func (Nop) RecordHTTPStatus(int)                                {}
func (Nop) RecordRateLimited(string)                            {}
func (Nop) RecordProviderCall(string, string, time.Duration)    {}
func (Nop) RecordContactSubmission()                            {}
func (Nop) RecordNewsletterSignup()                             {}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
