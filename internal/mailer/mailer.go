// Package mailer dispatches bill documents by email. The transport is an
// external collaborator: services depend on the Mailer interface and never
// on SMTP details.
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"

	"github.com/sirupsen/logrus"
)

// Message is one outgoing mail with a single binary attachment
type Message struct {
	To             string // Recipient address
	Subject        string
	Body           string // Plain-text body
	Attachment     []byte // Raw attachment bytes, optional
	AttachmentName string // File name shown to the recipient
}

// Mailer sends a message; a nil error means the relay accepted it
type Mailer interface {
	Send(msg *Message) error
}

// SMTPMailer sends mail through a plain SMTP relay
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// encode builds the MIME multipart wire form of a message
func (m *SMTPMailer) encode(msg *Message) []byte {
	const boundary = "----=_billing_part"
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.From)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	buf.WriteString(msg.Body)
	buf.WriteString("\r\n")

	if len(msg.Attachment) > 0 {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		buf.WriteString("Content-Type: application/pdf\r\n")
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", msg.AttachmentName)
		encoded := base64.StdEncoding.EncodeToString(msg.Attachment)
		// RFC 2045 line-length limit
		for len(encoded) > 76 {
			buf.WriteString(encoded[:76])
			buf.WriteString("\r\n")
			encoded = encoded[76:]
		}
		buf.WriteString(encoded)
		buf.WriteString("\r\n")
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

// Send hands the encoded message to the relay
func (m *SMTPMailer) Send(msg *Message) error {
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.From, []string{msg.To}, m.encode(msg)); err != nil {
		logrus.WithFields(logrus.Fields{
			"to":    msg.To,
			"relay": addr,
			"error": err.Error(),
		}).Error("Email dispatch failed")
		return err
	}
	return nil
}
