// Package ratelimit は固定ウィンドウ方式のレート制限ストアを提供する。
//
// アルゴリズムはキーごとのタイムスタンプ列に対する「期限切れの刈り取り →
// 件数判定 → 現在時刻の追記」で、この一連の操作はキー単位で実質的に
// アトミックに実行される。ストアはインターフェースとして注入可能であり、
// 単一インスタンス運用ではインメモリ実装、水平スケール時はRedis実装に
// 差し替えられる。
package ratelimit

import (
	"context"
	"time"
)

// Config は1つのレート制限ティアの設定を表す。
type Config struct {
	// Window は判定対象となる直近の時間幅。
	Window time.Duration
	// Max はウィンドウ内で許可するリクエスト数の上限。
	Max int
}

// Store はキーごとのリクエスト記録と許可判定を行う。
//
// Allow はウィンドウ外の記録を破棄した上で件数を数え、上限以上なら
// 記録せずに false を返す。上限未満なら現在時刻を記録して true を返す。
// ストア自体の障害はエラーとして返す（呼び出し側はフェイルオープンする）。
type Store interface {
	Allow(ctx context.Context, key string, cfg Config) (bool, error)
}
