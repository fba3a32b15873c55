package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsers(t *testing.T) {
	t.Run("roles", func(t *testing.T) {
		for _, valid := range []string{"admin", "manager", "officer", "staff", "viewer"} {
			role, err := ParseRole(valid)
			assert.NoError(t, err)
			assert.EqualValues(t, valid, role)
		}
		_, err := ParseRole("root")
		assert.Error(t, err)
	})

	t.Run("election types", func(t *testing.T) {
		for _, valid := range []string{"by-election", "project-election"} {
			_, err := ParseElectionType(valid)
			assert.NoError(t, err)
		}
		_, err := ParseElectionType("general")
		assert.Error(t, err)
	})

	t.Run("statuses", func(t *testing.T) {
		for _, valid := range []string{"created", "sent", "delivered", "paid", "cancelled"} {
			_, err := ParseDocumentStatus(valid)
			assert.NoError(t, err)
		}
		_, err := ParseDocumentStatus("lost")
		assert.Error(t, err)
	})

	t.Run("delivery methods", func(t *testing.T) {
		for _, valid := range []string{"email", "sms", "post", "hand_delivery"} {
			_, err := ParseDeliveryMethod(valid)
			assert.NoError(t, err)
		}
		_, err := ParseDeliveryMethod("pigeon")
		assert.Error(t, err)
	})
}
