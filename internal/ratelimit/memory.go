package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore はプロセス内メモリ上のStore実装。
// 単一インスタンス運用でのデフォルト。インスタンス間の同期は行わないため、
// 水平スケール時は各インスタンスが独立した制限を持つ点に注意。
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]time.Time

	// now はテストで時刻を差し替えるためのフック。
	now func() time.Time

	janitorTTL time.Duration
}

// MemoryStoreOption はMemoryStoreの生成オプション。
type MemoryStoreOption func(*MemoryStore)

// WithJanitorTTL は全記録が期限切れになったキーを掃除するまでの猶予を設定する。
func WithJanitorTTL(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) { s.janitorTTL = d }
}

// NewMemoryStore はMemoryStoreを生成する。
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries:    make(map[string][]time.Time),
		now:        time.Now,
		janitorTTL: 2 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow はStoreを実装する。刈り取り・判定・追記をロック下で一括実行するため、
// 同一キーへの同時リクエストが重なってもカウント漏れは起きない。
func (s *MemoryStore) Allow(_ context.Context, key string, cfg Config) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	windowStart := now.Add(-cfg.Window)

	recorded := s.entries[key]
	recent := recorded[:0]
	for _, ts := range recorded {
		if ts.After(windowStart) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= cfg.Max {
		// 上限到達時は記録しない。拒否されたリクエストはウィンドウを延長しない。
		s.entries[key] = recent
		return false, nil
	}

	s.entries[key] = append(recent, now)
	return true, nil
}

// KeyCount は現在保持しているキー数を返す。テストおよびメトリクス用。
func (s *MemoryStore) KeyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// cleanup は最終記録がjanitorTTLより古いキーを削除する。
// メモリ解放のみが目的で、許可判定の結果には影響しない。
func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.janitorTTL)
	for key, recorded := range s.entries {
		if len(recorded) == 0 || recorded[len(recorded)-1].Before(cutoff) {
			delete(s.entries, key)
		}
	}
}

// StartJanitor は期限切れキーの定期掃除をバックグラウンドで開始する。
// コンテキストのキャンセルで停止する。
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanup()
			}
		}
	}()
}
