// Package compose builds the outgoing farewell messages: a two-part
// (plain text + HTML) mail with the content hash embedded in both parts
// and a Message-ID under the sender's domain.
package compose

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

// ErrInvalidSender is returned when the sender address carries no domain
// part. Callers are expected to validate addresses before composing.
var ErrInvalidSender = errors.New("compose: sender address has no domain part")

// footerURL is the attribution link appended to every message.
const footerURL = "https://www.iampedro.com/farewell"

// Request carries everything needed to compose one message for one
// recipient. The content hash must already be 0x-normalized.
type Request struct {
	SenderAddr    string
	SenderName    string
	RecipientAddr string
	Subject       string
	Body          string
	ContentHash   string
}

// Message is a composed two-part mail, ready to render into RFC 5322 bytes.
type Message struct {
	From      mail.Address
	To        mail.Address
	Subject   string
	Date      time.Time
	MessageID string
	TextBody  string
	HTMLBody  string
}

// New composes a message from the request. The Message-ID nonce is fresh
// on every call; everything else is a pure function of the request and
// the current time.
func New(req Request) (*Message, error) {
	domain, err := senderDomain(req.SenderAddr)
	if err != nil {
		return nil, err
	}

	return &Message{
		From:      mail.Address{Name: req.SenderName, Address: req.SenderAddr},
		To:        mail.Address{Address: req.RecipientAddr},
		Subject:   req.Subject,
		Date:      time.Now(),
		MessageID: uuid.New().String() + "@" + domain,
		TextBody:  textBody(req.Body, req.ContentHash),
		HTMLBody:  htmlBody(req.Body, req.ContentHash),
	}, nil
}

// Render serializes the message as a multipart/alternative RFC 5322
// message with text/plain and text/html inline parts.
func (m *Message) Render() ([]byte, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(m.Date)
	h.SetAddressList("From", []*mail.Address{&m.From})
	h.SetAddressList("To", []*mail.Address{&m.To})
	h.SetSubject(m.Subject)
	h.SetMessageID(m.MessageID)

	w, err := mail.CreateInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("creating message writer: %w", err)
	}

	if err := writeInlinePart(w, "text/plain", m.TextBody); err != nil {
		return nil, err
	}
	if err := writeInlinePart(w, "text/html", m.HTMLBody); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing message writer: %w", err)
	}

	return buf.Bytes(), nil
}

func writeInlinePart(w *mail.InlineWriter, contentType, body string) error {
	var h mail.InlineHeader
	h.SetContentType(contentType, map[string]string{"charset": "utf-8"})

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("creating %s part: %w", contentType, err)
	}
	if _, err := io.WriteString(part, body); err != nil {
		return fmt.Errorf("writing %s part: %w", contentType, err)
	}
	if err := part.Close(); err != nil {
		return fmt.Errorf("closing %s part: %w", contentType, err)
	}
	return nil
}

// senderDomain extracts the domain portion after the last '@'.
func senderDomain(addr string) (string, error) {
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidSender, addr)
	}
	return addr[at+1:], nil
}

// textBody appends the hash marker block and the attribution footer to
// the message body.
func textBody(body, contentHash string) string {
	return fmt.Sprintf(`%s

---
Farewell-Hash: %s
---

This message was sent via Farewell Protocol (%s)
A zk-email proof may be generated to verify delivery of this message.
`, body, contentHash, footerURL)
}

// htmlBody renders the same content as textBody with the hash in a
// visually distinct block and the footer as a hyperlink.
func htmlBody(body, contentHash string) string {
	escaped := strings.ReplaceAll(html.EscapeString(body), "\n", "<br>\n")

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto;">
    %s

    <hr style="margin: 30px 0; border: none; border-top: 1px solid #ddd;">

    <div style="background: #f5f5f5; padding: 15px; border-radius: 8px; font-family: monospace;">
      <strong>Farewell-Hash:</strong><br>
      <code style="word-break: break-all;">%s</code>
    </div>

    <p style="color: #666; font-size: 12px; margin-top: 20px;">
      This message was sent via <a href="%s">Farewell Protocol</a>.<br>
      A zk-email proof may be generated to verify delivery of this message.
    </p>
  </div>
</body>
</html>
`, escaped, contentHash, footerURL)
}
