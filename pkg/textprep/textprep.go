// Package textprep turns raw RFC 5322 e-mail into the plain-text form the
// external text classifier consumes, plus the sender metadata the URL and
// domain checks want.
package textprep

import (
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/jaytaylor/html2text"
	"github.com/jhillyerd/enmime"
	"github.com/rs/zerolog/log"
)

// Message is the distilled view of one e-mail.
type Message struct {
	Subject string `json:"subject"`
	From    string `json:"from"`
	Domain  string `json:"domain,omitempty"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

// FromEML parses a raw message. HTML-only mail is converted to plain text
// so classifier input never depends on which MIME parts the sender chose.
func FromEML(r io.Reader) (Message, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return Message{}, fmt.Errorf("parsing envelope: %w", err)
	}

	msg := Message{
		Subject: env.GetHeader("Subject"),
		From:    env.GetHeader("From"),
		Text:    strings.TrimSpace(env.Text),
		HTML:    env.HTML,
	}

	if msg.Text == "" && msg.HTML != "" {
		plain, err := html2text.FromString(msg.HTML, html2text.Options{TextOnly: true})
		if err != nil {
			log.Warn().Str("component", "textprep").Err(err).Msg("HTML body could not be converted to text")
		} else {
			msg.Text = strings.TrimSpace(plain)
		}
	}

	// A malformed From header is common in spam; the rest of the message is
	// still worth analyzing.
	if addr, err := mail.ParseAddress(msg.From); err == nil {
		_, msg.Domain, _ = strings.Cut(strings.ToLower(addr.Address), "@")
	}

	return msg, nil
}

// ClassifierInput is the single string handed to the text classifier:
// subject and body, newline-separated, subject first.
func (m Message) ClassifierInput() string {
	if m.Subject == "" {
		return m.Text
	}
	return m.Subject + "\n" + m.Text
}
