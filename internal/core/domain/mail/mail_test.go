package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainMessageBytes(t *testing.T) {
	m := Message{
		ID:      "42",
		From:    "noreply@example.com",
		To:      []string{"alice@example.com"},
		Subject: "Activate",
		Text:    "Thank you for signing up",
	}
	raw, err := m.Bytes()

	assert := require.New(t)
	assert.Nil(err)
	assert.False(m.IsMultipart())
	assert.NotContains(string(raw), "multipart/alternative")
	assert.Contains(string(raw), "text/plain")
}

func TestHTMLMessageBytes(t *testing.T) {
	m := Message{
		ID:      "42",
		From:    "noreply@example.com",
		To:      []string{"alice@example.com"},
		Subject: "Activate",
		Text:    "Thank you for signing up",
		HTML:    "<html><p>Thank you for signing up</p></html>",
	}
	raw, err := m.Bytes()

	assert := require.New(t)
	assert.Nil(err)
	assert.True(m.IsMultipart())
	content := string(raw)
	assert.Contains(content, "multipart/alternative")
	assert.Contains(content, "text/plain")
	assert.Contains(content, "text/html")
	assert.True(strings.Index(content, "text/plain") < strings.Index(content, "text/html"))
}

func TestProtocol(t *testing.T) {
	require.Equal(t, "http", Protocol(false))
	require.Equal(t, "https", Protocol(true))
}
