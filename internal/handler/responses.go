// Package handler はAPIエンドポイントのHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/czmma/czapi/internal/model"
)

// maxBodyBytes はPOSTリクエストボディの上限サイズ。
// 最大のフィールド（本文2000文字）を多バイト文字で埋めても収まる値。
const maxBodyBytes = 64 << 10

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError は統一フォーマット {"error": メッセージ} のエラーレスポンスを書き込む。
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// validationErrorResponse はバリデーション失敗時のレスポンス。
type validationErrorResponse struct {
	Error   string             `json:"error"`
	Details []model.FieldError `json:"details"`
}

// writeValidationError はフィールドごとのエラー詳細付きの400応答を書き込む。
func writeValidationError(w http.ResponseWriter, message string, details []model.FieldError) {
	writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   message,
		Details: details,
	})
}
