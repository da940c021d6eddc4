package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/czmma/czapi/internal/model"
)

// mockVideoService はRecentの挙動を差し替えられるモック。
type mockVideoService struct {
	recentFunc func(ctx context.Context) ([]model.Video, string, error)
}

func (m *mockVideoService) Recent(ctx context.Context) ([]model.Video, string, error) {
	return m.recentFunc(ctx)
}

func getVideos(t *testing.T, svc VideoServiceInterface) *httptest.ResponseRecorder {
	t.Helper()
	h := NewVideoHandler(svc, discardLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/youtube/videos", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	return w
}

func TestVideoHandler_ReturnsVideos(t *testing.T) {
	svc := &mockVideoService{
		recentFunc: func(ctx context.Context) ([]model.Video, string, error) {
			return []model.Video{
				{ID: "vid-1", Title: "Fight Night 12 Highlights"},
				{ID: "vid-2", Title: "Main Event Recap"},
			}, "", nil
		},
	}

	w := getVideos(t, svc)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Result().StatusCode)
	}

	var resp videoListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if len(resp.Videos) != 2 {
		t.Fatalf("videos = %d, want 2", len(resp.Videos))
	}
	if resp.Videos[0].ID != "vid-1" {
		t.Errorf("first video ID = %q, want %q", resp.Videos[0].ID, "vid-1")
	}
	if resp.Message != "" {
		t.Errorf("message = %q, want empty", resp.Message)
	}
}

func TestVideoHandler_NotConfiguredReturnsEmptyArrayWithMessage(t *testing.T) {
	svc := &mockVideoService{
		recentFunc: func(ctx context.Context) ([]model.Video, string, error) {
			return nil, "YouTube API not configured - visit channel directly", nil
		},
	}

	w := getVideos(t, svc)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Result().StatusCode)
	}

	// nilスライスでも空配列として直列化される
	if !strings.Contains(w.Body.String(), `"videos":[]`) {
		t.Errorf("expected empty videos array, body: %s", w.Body.String())
	}

	var resp videoListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if resp.Message != "YouTube API not configured - visit channel directly" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestVideoHandler_ProviderErrorReturns500(t *testing.T) {
	svc := &mockVideoService{
		recentFunc: func(ctx context.Context) ([]model.Video, string, error) {
			return nil, "", errors.New("youtube api: quota exceeded")
		},
	}

	w := getVideos(t, svc)

	if w.Result().StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Result().StatusCode)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if resp["error"] != "Failed to fetch videos" {
		t.Errorf("error = %q", resp["error"])
	}
}
