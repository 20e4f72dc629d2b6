package templates

import (
	"registrar/internal/core/domain/mail"
	"registrar/internal/core/domain/user"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/suite"
)

type testTemplatesSuite struct {
	suite.Suite
	Renderer *Pongo2
}

func (suite *testTemplatesSuite) SetupTest() {
	renderer, err := New()
	suite.Require().Nil(err)
	suite.Renderer = renderer
}

func TestTemplates(t *testing.T) {
	suite.Run(t, new(testTemplatesSuite))
}

func (suite *testTemplatesSuite) TestAllEmailTemplatesExist() {
	names := []string{
		"emails/activation_email_subject.txt",
		"emails/activation_email_message.txt",
		"emails/activation_email_message.html",
		"emails/activation_notify_email_subject.txt",
		"emails/activation_notify_email_message.txt",
		"emails/activation_notify_email_message.html",
		"emails/confirmation_email_subject_old.txt",
		"emails/confirmation_email_message_old.txt",
		"emails/confirmation_email_message_old.html",
		"emails/confirmation_email_subject_new.txt",
		"emails/confirmation_email_message_new.txt",
		"emails/confirmation_email_message_new.html",
	}
	for _, name := range names {
		suite.Require().True(suite.Renderer.Exists(name), name)
	}
}

func (suite *testTemplatesSuite) TestRenderActivationMessage() {
	text, err := suite.Renderer.Render("emails/activation_email_message.txt", map[string]interface{}{
		"user":              user.User{Username: "alice"},
		"without_usernames": false,
		"protocol":          "https",
		"site":              mail.Site{Domain: "example.com", Name: "Example"},
		"activation_days":   7,
		"activation_key":    "0123456789abcdef0123456789abcdef01234567",
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Contains(text, "Dear alice,")
	assert.Contains(text, "https://example.com/accounts/activate/0123456789abcdef0123456789abcdef01234567/")
	assert.Contains(text, "valid for 7 days")
}

func (suite *testTemplatesSuite) TestWithoutUsernames() {
	text, err := suite.Renderer.Render("emails/activation_email_message.txt", map[string]interface{}{
		"user":              user.User{Username: "alice"},
		"without_usernames": true,
		"site":              mail.Site{Domain: "example.com", Name: "Example"},
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.NotContains(text, "alice")
}

func (suite *testTemplatesSuite) TestPlainTextIsNotEscaped() {
	text, err := suite.Renderer.Render("emails/activation_email_subject.txt", map[string]interface{}{
		"site": mail.Site{Name: "Tom & Jerry"},
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("Your signup at Tom & Jerry.", strings.TrimSpace(text))
}

func (suite *testTemplatesSuite) TestHTMLIsEscaped() {
	html, err := suite.Renderer.Render("emails/confirmation_email_message_old.html", map[string]interface{}{
		"user":      user.User{Username: "<b>alice</b>"},
		"new_email": "new@x.com",
		"site":      mail.Site{Name: "Example"},
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Contains(html, "&lt;b&gt;alice&lt;/b&gt;")
}

func (suite *testTemplatesSuite) TestUnknownTemplate() {
	_, err := suite.Renderer.Render("emails/unknown.txt", nil)

	suite.Require().ErrorIs(err, mail.ErrTemplateDoesNotExist)
}

func (suite *testTemplatesSuite) TestInvalidTemplateSource() {
	_, err := NewFromFS(fstest.MapFS{
		"emails/broken.txt": &fstest.MapFile{Data: []byte("{% if %}")},
	})

	suite.Require().NotNil(err)
}
