package contact

import (
	"html/template"

	"github.com/czmma/czapi/internal/model"
)

// emailData はメール本文テンプレートへの入力。
type emailData struct {
	Label      string
	Submission model.ContactSubmission
}

// emailBodyHTML は問い合わせメールの本文テンプレート。
// html/templateが式の値をエスケープするため、サニタイズ済みの値を
// さらに安全に埋め込める。
const emailBodyHTML = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: #dc2626; padding: 20px; text-align: center;">
    <h1 style="color: white; margin: 0; font-size: 24px;">Combat Zone MMA</h1>
  </div>
  <div style="padding: 30px; background: #f9f9f9;">
    <h2 style="color: #333; margin-top: 0;">New {{.Label}}</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr>
        <td style="padding: 10px 0; border-bottom: 1px solid #ddd; font-weight: bold; width: 120px;">Name:</td>
        <td style="padding: 10px 0; border-bottom: 1px solid #ddd;">{{.Submission.FirstName}} {{.Submission.LastName}}</td>
      </tr>
      <tr>
        <td style="padding: 10px 0; border-bottom: 1px solid #ddd; font-weight: bold;">Email:</td>
        <td style="padding: 10px 0; border-bottom: 1px solid #ddd;"><a href="mailto:{{.Submission.Email}}">{{.Submission.Email}}</a></td>
      </tr>
      <tr>
        <td style="padding: 10px 0; border-bottom: 1px solid #ddd; font-weight: bold;">Category:</td>
        <td style="padding: 10px 0; border-bottom: 1px solid #ddd;">{{.Label}}</td>
      </tr>
    </table>
    <div style="margin-top: 20px;">
      <h3 style="color: #333; margin-bottom: 10px;">Message:</h3>
      <div style="background: white; padding: 15px; border-left: 4px solid #dc2626; white-space: pre-wrap;">{{.Submission.Message}}</div>
    </div>
  </div>
  <div style="background: #333; padding: 15px; text-align: center;">
    <p style="color: #999; margin: 0; font-size: 12px;">This message was sent from the Combat Zone MMA website contact form.</p>
  </div>
</div>
`

var emailTemplate = template.Must(template.New("contact_email").Parse(emailBodyHTML))
