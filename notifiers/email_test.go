package notifiers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davorm/dailybrief/models"
)

func testEntries() []models.DigestEntry {
	return []models.DigestEntry{
		{Title: "AI Lab Opens", Summary: "A new lab opened. It studies models. Funding is secured.", URL: "https://example.com/lab"},
		{Title: "Chip Shortage Eases", Summary: "Supply recovered. Prices fell. Vendors restocked.", URL: "https://example.com/chips"},
		{Title: "Robots Learn Chess", Summary: "A robot won. It trained itself. Experts were surprised.", URL: "https://example.com/chess"},
	}
}

func TestDigestEmail_SubjectCountsEntries(t *testing.T) {
	mailer := NewMailer("smtp.example.com", 465, "from@example.com", "secret")

	email, err := mailer.DigestEmail("to@example.com", testEntries())

	assert.NoError(t, err)
	assert.Equal(t, "Your Daily AI News Update (3 stories)", email.Subject)
}

func TestDigestEmail_SingleEntrySubject(t *testing.T) {
	mailer := NewMailer("smtp.example.com", 465, "from@example.com", "secret")

	email, err := mailer.DigestEmail("to@example.com", testEntries()[:1])

	assert.NoError(t, err)
	assert.Equal(t, "Your Daily AI News Update (1 stories)", email.Subject)
}

func TestDigestEmail_BodiesContainEveryEntryExactlyOnce(t *testing.T) {
	mailer := NewMailer("smtp.example.com", 465, "from@example.com", "secret")
	entries := testEntries()

	email, err := mailer.DigestEmail("to@example.com", entries)

	assert.NoError(t, err)
	for _, entry := range entries {
		assert.Equal(t, 1, strings.Count(email.TextBody, entry.Title), "text body: %s", entry.Title)
		assert.Equal(t, 1, strings.Count(email.TextBody, entry.Summary), "text body: %s", entry.Summary)
		assert.Equal(t, 1, strings.Count(email.TextBody, entry.URL), "text body: %s", entry.URL)
		assert.Equal(t, 1, strings.Count(email.HTMLBody, entry.Title), "html body: %s", entry.Title)
		assert.Equal(t, 1, strings.Count(email.HTMLBody, entry.Summary), "html body: %s", entry.Summary)
		assert.Equal(t, 1, strings.Count(email.HTMLBody, entry.URL), "html body: %s", entry.URL)
	}
}

func TestDigestEmail_PreservesEntryOrder(t *testing.T) {
	mailer := NewMailer("smtp.example.com", 465, "from@example.com", "secret")
	entries := testEntries()

	email, err := mailer.DigestEmail("to@example.com", entries)

	assert.NoError(t, err)
	for _, body := range []string{email.TextBody, email.HTMLBody} {
		prev := -1
		for _, entry := range entries {
			pos := strings.Index(body, entry.Title)
			assert.Greater(t, pos, prev, "entry %q out of order", entry.Title)
			prev = pos
		}
	}
}

func TestDigestEmail_TextBodyShape(t *testing.T) {
	mailer := NewMailer("smtp.example.com", 465, "from@example.com", "secret")

	email, err := mailer.DigestEmail("to@example.com", testEntries()[:1])

	assert.NoError(t, err)
	assert.Contains(t, email.TextBody, "Here is your daily news summary:")
	assert.Contains(t, email.TextBody, "• AI Lab Opens")
	assert.Contains(t, email.TextBody, "Read more: https://example.com/lab")
}

func TestDigestEmail_HTMLBodyShape(t *testing.T) {
	mailer := NewMailer("smtp.example.com", 465, "from@example.com", "secret")

	email, err := mailer.DigestEmail("to@example.com", testEntries()[:1])

	assert.NoError(t, err)
	assert.Contains(t, email.HTMLBody, "<strong>AI Lab Opens</strong>")
	assert.Contains(t, email.HTMLBody, `<a href="https://example.com/lab">Read more</a>`)
	assert.Contains(t, email.HTMLBody, "<ul>")
}

func TestDigestEmail_EscapesHTMLInTitles(t *testing.T) {
	mailer := NewMailer("smtp.example.com", 465, "from@example.com", "secret")
	entries := []models.DigestEntry{
		{Title: "Tags <b>here</b>", Summary: "Safe summary.", URL: "https://example.com/x"},
	}

	email, err := mailer.DigestEmail("to@example.com", entries)

	assert.NoError(t, err)
	assert.NotContains(t, email.HTMLBody, "<b>here</b>")
	assert.Contains(t, email.HTMLBody, "&lt;b&gt;here&lt;/b&gt;")
}

func TestDigestEmail_NoEntries(t *testing.T) {
	mailer := NewMailer("smtp.example.com", 465, "from@example.com", "secret")

	_, err := mailer.DigestEmail("to@example.com", nil)

	assert.Error(t, err)
}

func TestDigestEmail_SetsRecipient(t *testing.T) {
	mailer := NewMailer("smtp.example.com", 465, "from@example.com", "secret")

	email, err := mailer.DigestEmail("someone@example.com", testEntries())

	assert.NoError(t, err)
	assert.Equal(t, "someone@example.com", email.To)
}
