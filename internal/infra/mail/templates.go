package mail

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/pkg/errors"
)

// templateData carries the fields shared by every transactional message.
type templateData struct {
	Product   string
	Username  string
	ActionURL string
}

const verificationSubject = "Please verify your email"

const verificationText = `Hi {{.Username}},

Welcome to {{.Product}}! We're very excited to have you on board.

To verify your email please open the following link:

{{.ActionURL}}

This link expires shortly, so please use it soon.

Need help, or have questions? Just reply to this email, we'd love to help.
`

const verificationHTML = `<!doctype html>
<html>
  <body style="font-family: Helvetica, Arial, sans-serif; color: #24292e;">
    <p>Hi {{.Username}},</p>
    <p>Welcome to {{.Product}}! We're very excited to have you on board.</p>
    <p>To verify your email please click on the following button:</p>
    <p>
      <a href="{{.ActionURL}}"
         style="background-color: #22BC66; color: #ffffff; padding: 10px 18px; border-radius: 4px; text-decoration: none;">
        Verify your email
      </a>
    </p>
    <p>Or paste this link into your browser: <a href="{{.ActionURL}}">{{.ActionURL}}</a></p>
    <p>Need help, or have questions? Just reply to this email, we'd love to help.</p>
  </body>
</html>
`

const passwordResetSubject = "Password reset request"

const passwordResetText = `Hi {{.Username}},

We got a request to reset the password of your {{.Product}} account.

To reset your password open the following link:

{{.ActionURL}}

If you did not request a password reset you can safely ignore this email.

Need help, or have questions? Just reply to this email, we'd love to help.
`

const passwordResetHTML = `<!doctype html>
<html>
  <body style="font-family: Helvetica, Arial, sans-serif; color: #24292e;">
    <p>Hi {{.Username}},</p>
    <p>We got a request to reset the password of your {{.Product}} account.</p>
    <p>To reset your password click on the following button:</p>
    <p>
      <a href="{{.ActionURL}}"
         style="background-color: #DC4D2F; color: #ffffff; padding: 10px 18px; border-radius: 4px; text-decoration: none;">
        Reset your password
      </a>
    </p>
    <p>Or paste this link into your browser: <a href="{{.ActionURL}}">{{.ActionURL}}</a></p>
    <p>If you did not request a password reset you can safely ignore this email.</p>
  </body>
</html>
`

var (
	verificationTextTmpl  = texttemplate.Must(texttemplate.New("verification-text").Parse(verificationText))
	verificationHTMLTmpl  = htmltemplate.Must(htmltemplate.New("verification-html").Parse(verificationHTML))
	passwordResetTextTmpl = texttemplate.Must(texttemplate.New("reset-text").Parse(passwordResetText))
	passwordResetHTMLTmpl = htmltemplate.Must(htmltemplate.New("reset-html").Parse(passwordResetHTML))
)

func renderText(tmpl *texttemplate.Template, data templateData) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "render %s", tmpl.Name())
	}

	return buf.String(), nil
}

func renderHTML(tmpl *htmltemplate.Template, data templateData) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "render %s", tmpl.Name())
	}

	return buf.String(), nil
}
