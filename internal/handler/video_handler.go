package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/czmma/czapi/internal/model"
)

// VideoServiceInterface は動画ハンドラーが必要とするサービスインターフェース。
type VideoServiceInterface interface {
	// Recent は公開用の最新動画リストを返す。
	// 動画を返せない構成上の理由がある場合はmessageで伝える。
	Recent(ctx context.Context) (videos []model.Video, message string, err error)
}

// VideoHandler はYouTube動画一覧のHTTPハンドラー。
type VideoHandler struct {
	service VideoServiceInterface
	logger  *slog.Logger
}

// NewVideoHandler はVideoHandlerを生成する。
func NewVideoHandler(service VideoServiceInterface, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		service: service,
		logger:  logger,
	}
}

// videoListResponse は動画一覧のAPIレスポンス。
type videoListResponse struct {
	Videos  []model.Video `json:"videos"`
	Message string        `json:"message,omitempty"`
}

// List は最新動画の取得を処理する。
// GET /api/youtube/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	videos, message, err := h.service.Recent(r.Context())
	if err != nil {
		h.logger.Error("video fetch failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Failed to fetch videos")
		return
	}

	// videosは常に配列として返す
	if videos == nil {
		videos = []model.Video{}
	}

	writeJSON(w, http.StatusOK, videoListResponse{
		Videos:  videos,
		Message: message,
	})
}
