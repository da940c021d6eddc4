// Package model はドメインモデルを定義する。
package model

// 問い合わせ件名の列挙値。この集合以外はバリデーションで拒否される。
const (
	SubjectGeneral     = "general"
	SubjectFighter     = "fighter"
	SubjectSponsorship = "sponsorship"
	SubjectMedia       = "media"
)

// ContactSubmission は問い合わせフォームの送信内容を表す。
// リクエストごとに生成され、サニタイズ後にメール本文の構築に1回使われて破棄される。
// 永続化はしない。
type ContactSubmission struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=50"`
	LastName  string `json:"lastName" validate:"required,notblank,max=50"`
	Email     string `json:"email" validate:"required,contact_email,max=100"`
	Subject   string `json:"subject" validate:"required,oneof=general fighter sponsorship media"`
	Message   string `json:"message" validate:"required,trimmed_min=10,max=2000"`
}

// NewsletterSubscription はニュースレター登録リクエストを表す。
type NewsletterSubscription struct {
	Email string `json:"email" validate:"required,contact_email,max=100"`
}

// FieldError はバリデーション違反1件を表す。
// 全フィールドの違反をまとめて返すために使用する。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
