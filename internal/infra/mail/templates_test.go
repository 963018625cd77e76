package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVerificationTemplates(t *testing.T) {
	data := templateData{
		Product:   "credo",
		Username:  "alice",
		ActionURL: "https://example.com/api/v1/auth/verify-email/abc123",
	}

	text, err := renderText(verificationTextTmpl, data)
	require.NoError(t, err)
	assert.Contains(t, text, "Hi alice")
	assert.Contains(t, text, "Welcome to credo")
	assert.Contains(t, text, data.ActionURL)

	html, err := renderHTML(verificationHTMLTmpl, data)
	require.NoError(t, err)
	assert.Contains(t, html, "Verify your email")
	assert.Contains(t, html, data.ActionURL)
}

func TestRenderPasswordResetTemplates(t *testing.T) {
	data := templateData{
		Product:   "credo",
		Username:  "bob",
		ActionURL: "https://example.com/api/v1/auth/reset-password/def456",
	}

	text, err := renderText(passwordResetTextTmpl, data)
	require.NoError(t, err)
	assert.Contains(t, text, "Hi bob")
	assert.Contains(t, text, "reset the password")
	assert.Contains(t, text, data.ActionURL)

	html, err := renderHTML(passwordResetHTMLTmpl, data)
	require.NoError(t, err)
	assert.Contains(t, html, "Reset your password")
	assert.Contains(t, html, data.ActionURL)
}

func TestRenderHTMLEscapesUsername(t *testing.T) {
	data := templateData{
		Product:   "credo",
		Username:  "<script>alert(1)</script>",
		ActionURL: "https://example.com/verify",
	}

	html, err := renderHTML(verificationHTMLTmpl, data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
