package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/czmma/czapi/internal/model"
	"github.com/czmma/czapi/internal/validate"
)

// ContactServiceInterface はお問い合わせハンドラーが必要とするサービスインターフェース。
type ContactServiceInterface interface {
	// Submit は検証済みのお問い合わせを処理する。
	Submit(ctx context.Context, sub model.ContactSubmission) error
}

// ContactHandler はお問い合わせフォームのHTTPハンドラー。
type ContactHandler struct {
	service ContactServiceInterface
	logger  *slog.Logger
}

// NewContactHandler はContactHandlerを生成する。
func NewContactHandler(service ContactServiceInterface, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger,
	}
}

// Submit はお問い合わせフォームの送信を処理する。
// POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	// ボディの上限はフィールド長制限の合計より十分大きい値に抑える
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var sub model.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if details := validate.Check(sub); len(details) > 0 {
		writeValidationError(w, "Validation failed", details)
		return
	}

	if err := h.service.Submit(r.Context(), sub); err != nil {
		h.logger.Error("contact submission failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Failed to process your request. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Thank you for your message. We'll be in touch soon.",
	})
}
