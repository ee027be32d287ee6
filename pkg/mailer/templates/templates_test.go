package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_VerifyEmail(t *testing.T) {
	link := BuildLink("https://app.example.com/", "auth/verify_email", "abc123")
	data := NewVerifyEmailData("Ada", "Lovelace", "ada@example.com", link, WithAppName("Accounts"))

	subject, html, err := Render(VerifyEmail, data)
	require.NoError(t, err)

	assert.Equal(t, "Verify your email for Accounts", subject)
	assert.Contains(t, html, "Hello Ada Lovelace")
	assert.Contains(t, html, `href="https://app.example.com/auth/verify_email/abc123"`)
}

func TestRender_ResetPassword(t *testing.T) {
	link := BuildLink("https://app.example.com", "/auth/reset_password/", "def456")
	data := NewResetPasswordData("Grace", "Hopper", "grace@example.com", link, WithTime(time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)))

	subject, html, err := Render(ResetPassword, data)
	require.NoError(t, err)

	assert.Equal(t, "Change your password", subject)
	assert.Contains(t, html, "https://app.example.com/auth/reset_password/def456")
	assert.Contains(t, html, "2030 User Accounts")
}

func TestRender_EscapesNames(t *testing.T) {
	data := NewVerifyEmailData("<script>", "x", "a@b.c", "https://x/y")

	_, html, err := Render(VerifyEmail, data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, err := Render("missing", EmailData{})
	assert.Error(t, err)
}

func TestBuildLink(t *testing.T) {
	assert.Equal(t, "http://localhost:5173/auth/verify_email/c", BuildLink("http://localhost:5173", "auth/verify_email", "c"))
	assert.Equal(t, "http://localhost:5173/auth/verify_email/c", BuildLink("http://localhost:5173//", "/auth/verify_email", "c"))
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "fb", defaultFn("fb", ""))
	assert.Equal(t, "fb", defaultFn("fb", nil))
	assert.Equal(t, "fb", defaultFn("fb", 0))
	assert.Equal(t, "x", defaultFn("fb", "x"))
	assert.Equal(t, 3, defaultFn("fb", 3))
}
