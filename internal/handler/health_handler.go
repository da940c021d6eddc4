package handler

import "net/http"

// Health は死活監視エンドポイントを処理する。
// GET /api/health
//
// レート制限もプロバイダー照会も挟まず、プロセスが応答できることだけを示す。
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
