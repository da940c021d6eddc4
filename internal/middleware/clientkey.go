// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"net/http"
	"strings"
)

// unknownClientKey は転送元アドレスを特定できないクライアントの共有キー。
const unknownClientKey = "unknown"

// ClientKey はレート制限のバケット分けに使うクライアント識別子を返す。
// X-Forwarded-Forヘッダーの先頭エントリを使い、取得できない場合は
// 共有の "unknown" キーに集約する。
//
// プロキシを経ないクライアントが全員1つのバケットを共有する点は
// 既知の挙動としてそのまま維持している（詳細はDESIGN.md参照）。
func ClientKey(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return unknownClientKey
	}
	first := strings.TrimSpace(strings.Split(xff, ",")[0])
	if first == "" {
		return unknownClientKey
	}
	return first
}
