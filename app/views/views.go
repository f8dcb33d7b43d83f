// Package views holds the embedded HTML pages served by the password reset
// flow. Everything else in the API speaks JSON.
package views

import (
	"embed"
	"html/template"
	"io"
)

//go:embed *.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "*.html"))

// ResetPasswordForm renders the form where the user types a new password.
// The form submits to {{.BaseURL}}/api/auth/reset-password/{{.Token}}.
func ResetPasswordForm(w io.Writer, token, baseURL string) error {
	return templates.ExecuteTemplate(w, "reset_password_form.html", map[string]string{
		"Token":   token,
		"BaseURL": baseURL,
	})
}

// PasswordResetSuccess renders the confirmation page shown after a reset.
func PasswordResetSuccess(w io.Writer) error {
	return templates.ExecuteTemplate(w, "password_reset_success.html", nil)
}
