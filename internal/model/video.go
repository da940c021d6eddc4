package model

// Video は動画プラットフォーム上の動画1件の読み取り専用プロジェクション。
// 外部プロバイダが所有するデータであり、このシステムでは保持も変更もしない。
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	PublishedAt string `json:"publishedAt"`
	Description string `json:"description"`
}
