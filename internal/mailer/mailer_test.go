package mailer

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	m := &SMTPMailer{From: "billing@election.gov.th"}

	t.Run("thai subject is q-encoded", func(t *testing.T) {
		wire := string(m.encode(&Message{
			To:      "recipient@example.com",
			Subject: "ใบเรียกเก็บเงิน - เลือกตั้งซ่อม",
			Body:    "เรียน ผู้รับ",
		}))
		assert.Contains(t, wire, "From: billing@election.gov.th\r\n")
		assert.Contains(t, wire, "To: recipient@example.com\r\n")
		assert.Contains(t, wire, "Subject: =?utf-8?q?")
		assert.Contains(t, wire, "เรียน ผู้รับ")
		assert.NotContains(t, wire, "Content-Disposition") // No attachment part
	})

	t.Run("attachment rides base64 with bounded lines", func(t *testing.T) {
		payload := make([]byte, 300)
		for i := range payload {
			payload[i] = byte(i)
		}
		wire := string(m.encode(&Message{
			To:             "recipient@example.com",
			Subject:        "invoice",
			Body:           "see attachment",
			Attachment:     payload,
			AttachmentName: "BILL-20260829-0001.pdf",
		}))
		assert.Contains(t, wire, `Content-Disposition: attachment; filename="BILL-20260829-0001.pdf"`)
		assert.Contains(t, wire, "Content-Transfer-Encoding: base64")

		// The base64 block must decode back to the original payload
		_, after, found := strings.Cut(wire, "Content-Disposition: attachment;")
		require.True(t, found)
		_, after, found = strings.Cut(after, "\r\n\r\n")
		require.True(t, found)
		block, _, found := strings.Cut(after, "\r\n--")
		require.True(t, found)
		for _, line := range strings.Split(block, "\r\n") {
			assert.LessOrEqual(t, len(line), 76)
		}
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(block, "\r\n", ""))
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
	})
}

func TestStubMailer(t *testing.T) {
	stub := &StubMailer{}
	require.NoError(t, stub.Send(&Message{To: "a@example.com"}))
	require.Len(t, stub.Sent, 1)
	assert.Equal(t, "a@example.com", stub.Sent[0].To)

	stub.Fail = true
	assert.ErrorIs(t, stub.Send(&Message{To: "b@example.com"}), ErrSendFailed)
	assert.Len(t, stub.Sent, 1)
}
