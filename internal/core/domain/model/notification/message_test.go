package notification_test

import (
	"testing"

	"tailoring/internal/core/domain/model/notification"
	"tailoring/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_RoundTrip(t *testing.T) {
	original, err := notification.NewMessage(
		"priya@example.test",
		"Order Confirmed",
		"Your order is confirmed. OrderId=ef5bb391-dcd7-4480-8351-750c1628994a\n\nThanks, \"Atelier\"",
	)
	require.NoError(t, err)

	payload, err := original.Encode()
	require.NoError(t, err)

	decoded, err := notification.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestMessage_WireFormat(t *testing.T) {
	m, err := notification.NewMessage("a@b.test", "Quality Check", "done")
	require.NoError(t, err)

	payload, err := m.Encode()

	require.NoError(t, err)
	assert.JSONEq(t, `{"subject":"Quality Check","messageBody":"done","to":"a@b.test"}`, string(payload))
	assert.Equal(t, `{"subject":"Quality Check","messageBody":"done","to":"a@b.test"}`, string(payload),
		"field order is part of the contract")
}

func TestNewMessage_RequiresAllFields(t *testing.T) {
	_, err := notification.NewMessage(" ", "", "")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "to")
	assert.Contains(t, err.Error(), "subject")
	assert.Contains(t, err.Error(), "messageBody")
}

func TestDecode_Rejects(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		_, err := notification.Decode([]byte(`{"subject":`))
		require.Error(t, err)
	})

	t.Run("missing recipient", func(t *testing.T) {
		_, err := notification.Decode([]byte(`{"subject":"s","messageBody":"b"}`))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
