package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/udhekryqi/udhekryqi-backend/internal/models"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// Snippet strips HTML tags from rich-text content and returns the first 220
// characters, for use as an email teaser.
func Snippet(content string) string {
	text := htmlTagPattern.ReplaceAllString(content, "")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > 220 {
		return string(runes[:220])
	}
	return text
}

func unsubscribeURL(apiBaseURL, token string) string {
	return fmt.Sprintf("%s/api/subscriptions/unsubscribe?token=%s", strings.TrimRight(apiBaseURL, "/"), token)
}

// BuildWelcomeEmail is the confirmation sent right after subscribing.
func BuildWelcomeEmail(apiBaseURL, unsubscribeToken string) string {
	unsubURL := unsubscribeURL(apiBaseURL, unsubscribeToken)
	return fmt.Sprintf(`
    <p>Faleminderit që u abonuat në <strong>Revistën Udhëkryqi</strong>.</p>
    <p>Nga tani e tutje do të merrni njoftime sa herë të botojmë një artikull të ri.</p>
    <hr />
    <p>Nëse dëshironi të çabonoheni në çdo kohë, klikoni te linku i çabonimit që do të gjeni në fund të çdo email-i.</p>
    <p><a href="%s">Çabonohuni</a> nga lista e email-eve.</p>
  `, unsubURL)
}

// BuildNewPostEmail announces a freshly published article, with a personal
// unsubscribe link at the bottom.
func BuildNewPostEmail(clientURL, apiBaseURL string, post *models.Post, unsubscribeToken string) string {
	postURL := fmt.Sprintf("%s/posts/%s", strings.TrimRight(clientURL, "/"), post.ID.Hex())
	unsubURL := unsubscribeURL(apiBaseURL, unsubscribeToken)
	return fmt.Sprintf(`
    <p>Lexoni artikullin e ri në <strong>Udhekryqi.com</strong>:</p>
    <h2>%s</h2>
    <p>%s...</p>
    <p><a href="%s">Lexoni shkrimin e plotë këtu</a></p>
    <hr />
    <p><a href="%s">Çabonohuni</a> nga lista e email-eve.</p>
  `, post.Title, Snippet(post.Content), postURL, unsubURL)
}

// BuildVerifyEmail carries the account verification link.
func BuildVerifyEmail(name, verifyURL string) string {
	return fmt.Sprintf(`
      <p>Hi %s,</p>
      <p>Please verify your email by clicking the link below:</p>
      <a href="%s">%s</a>
    `, name, verifyURL, verifyURL)
}

// BuildResetEmail carries the password reset link.
func BuildResetEmail(name, resetURL string) string {
	return fmt.Sprintf(`
      <p>Hi %s,</p>
      <p>You requested a password reset. Click the link below to set a new password:</p>
      <a href="%s">%s</a>
    `, name, resetURL, resetURL)
}
