package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/czmma/czapi/internal/model"
	"github.com/czmma/czapi/internal/validate"
)

// NewsletterServiceInterface はニュースレターハンドラーが必要とするサービスインターフェース。
type NewsletterServiceInterface interface {
	// Subscribe はメールアドレスを購読者リストに登録する。
	Subscribe(ctx context.Context, email string) error
}

// NewsletterHandler はニュースレター登録のHTTPハンドラー。
type NewsletterHandler struct {
	service NewsletterServiceInterface
	logger  *slog.Logger
}

// NewNewsletterHandler はNewsletterHandlerを生成する。
func NewNewsletterHandler(service NewsletterServiceInterface, logger *slog.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		service: service,
		logger:  logger,
	}
}

// Subscribe はニュースレター登録を処理する。
// POST /api/newsletter
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var sub model.NewsletterSubscription
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if details := validate.Check(sub); len(details) > 0 {
		writeValidationError(w, "Invalid email address", details)
		return
	}

	if err := h.service.Subscribe(r.Context(), sub.Email); err != nil {
		h.logger.Error("newsletter signup failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Failed to subscribe. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Successfully subscribed to the newsletter!",
	})
}
