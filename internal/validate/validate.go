// Package validate はリクエストボディの宣言的バリデーションとサニタイズを提供する。
//
// バリデーションはgo-playground/validatorのstructタグで宣言し、
// 違反はフィールド単位の {field, message} のリストとしてまとめて返す。
// 呼び出し側は全フィールドのエラーを一度に描画できる。
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/czmma/czapi/internal/model"
)

// emailPattern はメールアドレスの形式検証パターン。
// local-part@domain の形式で、ドメイン部にドットを必須とする。
// a@b.co は許可、a@b（ドットなし）と "a b@c.com"（空白含み）は拒否する。
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// エラー報告のフィールド名にはjsonタグ名を使用する
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 登録失敗はプログラミングエラーなので起動時に落とす
	rules := map[string]validator.Func{
		"contact_email": validateContactEmail,
		"notblank":      validateNotBlank,
		"trimmed_min":   validateTrimmedMin,
	}
	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validate: failed to register rule %q: %v", tag, err))
		}
	}
}

// validateContactEmail はメールアドレス形式を検証する。
// validator標準のemailタグはドメイン部のドットを必須としないため、
// 独自パターンで検証する。
func validateContactEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// validateNotBlank は空白のみの文字列を拒否する。
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateTrimmedMin は前後の空白を除いた文字数の下限を検証する。
func validateTrimmedMin(fl validator.FieldLevel) bool {
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(fl.Field().String())) >= min
}

// Check はstructタグに基づいてペイロードを検証し、違反のリストを返す。
// 違反がない場合はnilを返す。最初の違反で打ち切らず、
// 全フィールドを検証してから結果をまとめる。
func Check(payload any) []model.FieldError {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// structタグ定義の不備など、入力起因でないエラー
		return []model.FieldError{{Field: "", Message: "invalid payload"}}
	}

	var errs []model.FieldError
	for _, fe := range validationErrors {
		errs = append(errs, model.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}
	return errs
}

// messageFor はフィールドと違反タグの組に対するユーザー向けメッセージを返す。
func messageFor(field, tag string) string {
	switch field {
	case "firstName":
		if tag == "max" {
			return "First name too long"
		}
		return "First name is required"
	case "lastName":
		if tag == "max" {
			return "Last name too long"
		}
		return "Last name is required"
	case "email":
		switch tag {
		case "required":
			return "Email is required"
		case "max":
			return "Email too long"
		default:
			return "Invalid email format"
		}
	case "subject":
		return "Please select a valid subject"
	case "message":
		if tag == "max" {
			return "Message too long"
		}
		return "Message must be at least 10 characters"
	default:
		return field + " is invalid"
	}
}
