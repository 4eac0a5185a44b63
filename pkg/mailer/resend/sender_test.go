package resend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/templatewing/pkg/mailer"
)

func TestBuildRequest(t *testing.T) {
	t.Parallel()

	s := New(Config{APIKey: "re_test", SenderEmail: "team@example.com", SenderName: "Team"})
	req := s.buildRequest(&mailer.Email{
		To:      []string{"a@example.com"},
		CC:      []string{"c@example.com"},
		BCC:     []string{"b@example.com"},
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
		Tags:    mailer.Tags{"template": "01ABC"},
		Attachments: []mailer.Attachment{
			{Filename: "a.txt", ContentType: "text/plain", Content: []byte("hi")},
		},
	})

	assert.Equal(t, "Team <team@example.com>", req.From)
	assert.Equal(t, []string{"a@example.com"}, req.To)
	assert.Equal(t, []string{"c@example.com"}, req.Cc)
	assert.Equal(t, []string{"b@example.com"}, req.Bcc)
	require.Len(t, req.Attachments, 1)
	assert.Equal(t, "a.txt", req.Attachments[0].Filename)
	assert.Equal(t, []byte("hi"), req.Attachments[0].Content)
	require.Len(t, req.Tags, 1)
	assert.Equal(t, "01ABC", req.Tags[0].Value)
}

func TestBuildRequest_ExplicitFrom(t *testing.T) {
	t.Parallel()

	s := New(Config{SenderEmail: "team@example.com"})
	req := s.buildRequest(&mailer.Email{From: "ann@example.com", To: []string{"a@example.com"}})

	assert.Equal(t, "ann@example.com", req.From)
	assert.Nil(t, req.Attachments)
	assert.Nil(t, req.Tags)
}

func TestTagValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "true", tagValue(struct{}{}))
	assert.Equal(t, "true", tagValue(nil))
	assert.Equal(t, "x", tagValue("x"))
	assert.Equal(t, "false", tagValue(false))
	assert.Equal(t, "42", tagValue(42))
	assert.Equal(t, "7", tagValue(int64(7)))
	assert.Equal(t, "1.5", tagValue(1.5))
}

func TestConfig(t *testing.T) {
	t.Parallel()

	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{APIKey: "re_x"}.Enabled())
	assert.Empty(t, Config{SenderName: "Team"}.From())
	assert.Equal(t, "team@example.com", Config{SenderEmail: "team@example.com"}.From())
}
