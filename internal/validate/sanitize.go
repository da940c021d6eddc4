package validate

import (
	"regexp"
	"strings"
)

// tagPattern はHTMLタグ状の部分文字列を検出するパターン。
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// angleReplacer はタグ除去後に残った山括弧を除去する。
var angleReplacer = strings.NewReplacer("<", "", ">", "")

// CleanText は自由記述テキストをサニタイズする。
// HTMLタグ状の部分文字列を除去し、残った山括弧を除去し、前後の空白を削る。
// タグの内側のテキストは保持する（"<script>hi</script> there" → "hi there"）。
// バリデーション通過後の自由記述フィールド（氏名・本文）にのみ適用する。
func CleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = angleReplacer.Replace(s)
	return strings.TrimSpace(s)
}

// CleanEmail はメールアドレスを正規化する。小文字化と前後空白の除去のみを行う。
func CleanEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
