package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyPrefix はRedis上のレート制限キーの名前空間。
const keyPrefix = "czapi:ratelimit:"

// allowScript は刈り取り・件数判定・追記を1回の呼び出しで実行するLuaスクリプト。
// Redisはスクリプトを単一スレッドで実行するため、複数インスタンスの
// 同時リクエストが重なっても判定と記録の間に割り込みは起きない。
// 戻り値は許可なら1、上限到達なら0。
var allowScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], 0, ARGV[1])
if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[2]) then
	return 0
end
redis.call('ZADD', KEYS[1], ARGV[3], ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

// RedisStore はRedisのソート済みセットを使ったStore実装。
// スコアを記録時刻（ミリ秒）として保持し、ウィンドウ外のスコアを
// 刈り取ってから件数判定する。複数インスタンスが同じRedisを参照する
// ことで、水平スケール時もクライアント単位の制限を共有できる。
type RedisStore struct {
	client redis.Scripter
}

// NewRedisStore はRedisStoreを生成する。
func NewRedisStore(client redis.Scripter) *RedisStore {
	return &RedisStore{client: client}
}

// Allow はStoreを実装する。判定と記録はLuaスクリプトとして
// サーバー側で一括実行されるため、キー単位でアトミックに振る舞う。
func (s *RedisStore) Allow(ctx context.Context, key string, cfg Config) (bool, error) {
	now := time.Now()
	windowStartMs := now.Add(-cfg.Window).UnixMilli()

	// メンバーはUUIDで一意化する。同一ミリ秒の同時リクエストが
	// 1件に潰れてカウント漏れになるのを防ぐ。
	res, err := allowScript.Run(ctx, s.client, []string{keyPrefix + key},
		windowStartMs,
		cfg.Max,
		now.UnixMilli(),
		uuid.NewString(),
		cfg.Window.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis rate limit check: %w", err)
	}

	return res == 1, nil
}
