package email

import (
	"bytes"
	"html/template"
)

// Inline templates for every outbound notification. Kept in code rather
// than on disk so a binary deploy never misses assets.
var tmpl = template.Must(template.New("email").Parse(`
{{define "layout_top"}}
<div style="font-family:Arial,Helvetica,sans-serif;max-width:560px;margin:0 auto;padding:24px;color:#1f2933;">
  <h2 style="color:#2563eb;margin-bottom:4px;">HireFlow</h2>
  <hr style="border:none;border-top:1px solid #e5e7eb;margin:12px 0 20px;">
{{end}}

{{define "layout_bottom"}}
  <p style="color:#6b7280;font-size:12px;margin-top:28px;">
    This is an automated message from HireFlow. Please do not reply to this email.
  </p>
</div>
{{end}}

{{define "invite"}}
{{template "layout_top" .}}
  <p>Hello,</p>
  <p>You have been invited to join HireFlow as an HR team member by {{.InviterEmail}}.</p>
  <p>Click the link below to create your account. The invitation expires in 48 hours.</p>
  <p><a href="{{.Link}}" style="color:#2563eb;">Accept invitation</a></p>
{{template "layout_bottom" .}}
{{end}}

{{define "verify"}}
{{template "layout_top" .}}
  <p>Hello{{if .Name}} {{.Name}}{{end}},</p>
  <p>Thanks for signing up. Please confirm your email address to activate your account.</p>
  <p><a href="{{.Link}}" style="color:#2563eb;">Verify my email</a></p>
{{template "layout_bottom" .}}
{{end}}

{{define "reset"}}
{{template "layout_top" .}}
  <p>Hello{{if .Name}} {{.Name}}{{end}},</p>
  <p>We received a request to reset your password. The link below is valid for 15 minutes.</p>
  <p><a href="{{.Link}}" style="color:#2563eb;">Reset my password</a></p>
  <p>If you did not request this, you can safely ignore this email.</p>
{{template "layout_bottom" .}}
{{end}}

{{define "application_received"}}
{{template "layout_top" .}}
  <p>Hello {{.Name}},</p>
  <p>We received your application for <strong>{{.JobTitle}}</strong>.</p>
  <p>Your tracking code is <strong>{{.TrackingCode}}</strong>. Use it any time to check the status of your application:</p>
  <p><a href="{{.Link}}" style="color:#2563eb;">Track my application</a></p>
{{template "layout_bottom" .}}
{{end}}

{{define "status_changed"}}
{{template "layout_top" .}}
  <p>Hello {{.Name}},</p>
  <p>The status of your application for <strong>{{.JobTitle}}</strong> has been updated to <strong>{{.Status}}</strong>.</p>
  <p>Tracking code: {{.TrackingCode}}</p>
  <p><a href="{{.Link}}" style="color:#2563eb;">View details</a></p>
{{template "layout_bottom" .}}
{{end}}
`))

// TemplateData feeds all templates; unused fields stay zero.
type TemplateData struct {
	Name         string
	Link         string
	InviterEmail string
	JobTitle     string
	TrackingCode string
	Status       string
}

func render(name string, data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
