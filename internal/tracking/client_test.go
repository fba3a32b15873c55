package tracking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDeliveryStatus(t *testing.T) {
	t.Run("decodes a known delivery", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/deliveries/TRK-20260829-0001", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"delivered","delivered_at":"2026-08-20T09:30:00Z"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		update, err := client.CheckDeliveryStatus(context.Background(), "TRK-20260829-0001")
		require.NoError(t, err)
		require.NotNil(t, update)
		assert.Equal(t, "delivered", update.Status)
		require.NotNil(t, update.DeliveredAt)
		assert.Equal(t, time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC), update.DeliveredAt.UTC())
	})

	t.Run("unknown delivery is nil, not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		update, err := NewClient(server.URL, "").CheckDeliveryStatus(context.Background(), "TRK-20260829-0002")
		require.NoError(t, err)
		assert.Nil(t, update)
	})

	t.Run("empty status payload is treated as no data", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		update, err := NewClient(server.URL, "").CheckDeliveryStatus(context.Background(), "TRK-20260829-0003")
		require.NoError(t, err)
		assert.Nil(t, update)
	})

	t.Run("server failure is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "").CheckDeliveryStatus(context.Background(), "TRK-20260829-0004")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("malformed delivered_at is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"delivered","delivered_at":"yesterday"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "").CheckDeliveryStatus(context.Background(), "TRK-20260829-0005")
		require.Error(t, err)
	})
}

func TestPushStatus(t *testing.T) {
	t.Run("puts the status upstream", func(t *testing.T) {
		var gotPath, gotBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			gotPath = r.URL.Path
			buf := make([]byte, 256)
			n, _ := r.Body.Read(buf)
			gotBody = string(buf[:n])
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		err := NewClient(server.URL, "").PushStatus(context.Background(), "TRK-20260829-0001", "sent")
		require.NoError(t, err)
		assert.Equal(t, "/v1/deliveries/TRK-20260829-0001", gotPath)
		assert.JSONEq(t, `{"status":"sent"}`, gotBody)
	})

	t.Run("rejection is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		err := NewClient(server.URL, "").PushStatus(context.Background(), "TRK-20260829-0001", "sent")
		require.Error(t, err)
	})
}
