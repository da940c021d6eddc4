package validate

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/czmma/czapi/internal/model"
)

// validSubmission は全フィールドが制約を満たす送信内容を返す。
func validSubmission() model.ContactSubmission {
	return model.ContactSubmission{
		FirstName: "Jon",
		LastName:  "Jones",
		Email:     "jon@example.com",
		Subject:   model.SubjectGeneral,
		Message:   "I would like to know more about your next event.",
	}
}

func TestCheck_ValidSubmission_ReturnsNil(t *testing.T) {
	if errs := Check(validSubmission()); errs != nil {
		t.Errorf("Check() = %v, want nil", errs)
	}
}

func TestCheck_CollectsAllViolatedFields(t *testing.T) {
	// 複数フィールドが同時に違反した場合、最初の1件だけでなく全件を返す
	sub := model.ContactSubmission{
		FirstName: "",
		LastName:  strings.Repeat("x", 51),
		Email:     "a@b",
		Subject:   "unknown-value",
		Message:   "too short",
	}

	errs := Check(sub)

	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	sort.Strings(fields)

	want := []string{"email", "firstName", "lastName", "message", "subject"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("violated fields mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck_FieldMessages(t *testing.T) {
	sub := model.ContactSubmission{
		FirstName: "   ",
		LastName:  strings.Repeat("x", 51),
		Email:     "not-an-email",
		Subject:   "unknown-value",
		Message:   strings.Repeat("y", 2001),
	}

	errs := Check(sub)

	got := make(map[string]string, len(errs))
	for _, e := range errs {
		got[e.Field] = e.Message
	}

	want := map[string]string{
		"firstName": "First name is required",
		"lastName":  "Last name too long",
		"email":     "Invalid email format",
		"subject":   "Please select a valid subject",
		"message":   "Message too long",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck_EmailFormat(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"jon.jones@sub.example.com", true},
		{"a@b", false},        // ドメイン部にドットがない
		{"a b@c.com", false},  // 空白を含む
		{"@example.com", false},
		{"a@", false},
	}

	for _, tt := range tests {
		sub := validSubmission()
		sub.Email = tt.email
		errs := Check(sub)

		if tt.valid && errs != nil {
			t.Errorf("email %q: got errors %v, want none", tt.email, errs)
		}
		if !tt.valid {
			found := false
			for _, e := range errs {
				if e.Field == "email" {
					found = true
				}
			}
			if !found {
				t.Errorf("email %q: expected an email field error", tt.email)
			}
		}
	}
}

func TestCheck_SubjectEnum_RejectedAtValidation(t *testing.T) {
	// 未知の件名はバリデーション段階で拒否される。
	// デフォルトへの読み替えは行わない（宛先フォールバックは検証通過後の話）。
	sub := validSubmission()
	sub.Subject = "unknown-value"

	errs := Check(sub)
	if len(errs) != 1 || errs[0].Field != "subject" {
		t.Fatalf("Check() = %v, want single subject error", errs)
	}
	if errs[0].Message != "Please select a valid subject" {
		t.Errorf("message = %q, want %q", errs[0].Message, "Please select a valid subject")
	}
}

func TestCheck_MessageLengthUsesTrimmedLength(t *testing.T) {
	sub := validSubmission()
	sub.Message = "         123456789" // 前後空白を除くと9文字

	errs := Check(sub)
	if len(errs) != 1 || errs[0].Field != "message" {
		t.Fatalf("Check() = %v, want single message error", errs)
	}
}

func TestCheck_NewsletterSubscription(t *testing.T) {
	if errs := Check(model.NewsletterSubscription{Email: "fan@example.com"}); errs != nil {
		t.Errorf("valid subscription: got %v, want nil", errs)
	}

	errs := Check(model.NewsletterSubscription{Email: "fan@example"})
	if len(errs) != 1 || errs[0].Field != "email" {
		t.Fatalf("Check() = %v, want single email error", errs)
	}
	if errs[0].Message != "Invalid email format" {
		t.Errorf("message = %q, want %q", errs[0].Message, "Invalid email format")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<script>hi</script> there", "hi there"},
		{"no tags at all", "no tags at all"},
		{"  padded  ", "padded"},
		{"a < b > c", "a  c"},       // タグ状部分 "< b >" の除去
		{"1 < 2", "1  2"},           // 残存山括弧の除去
		{"<b>bold</b><i>i</i>", "boldi"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanEmail(t *testing.T) {
	if got := CleanEmail("  Jon@Example.COM "); got != "jon@example.com" {
		t.Errorf("CleanEmail = %q, want %q", got, "jon@example.com")
	}
}

// 独自ルールがすべて登録済みで実際に判定に使われることを検証する。
// 未登録のルールはStruct呼び出し時にpanicするため、登録の成否を
// ここで固定しておく。
func TestCustomRulesRegistered(t *testing.T) {
	tests := []struct {
		tag     string
		value   string
		wantErr bool
	}{
		{"contact_email", "a@b.co", false},
		{"contact_email", "a@b", true},
		{"notblank", "x", false},
		{"notblank", "   ", true},
		{"trimmed_min=3", "abc", false},
		{"trimmed_min=3", "  ab  ", true},
	}
	for _, tt := range tests {
		err := validate.Var(tt.value, tt.tag)
		if gotErr := err != nil; gotErr != tt.wantErr {
			t.Errorf("Var(%q, %q) error = %v, wantErr %v", tt.value, tt.tag, err, tt.wantErr)
		}
	}
}
