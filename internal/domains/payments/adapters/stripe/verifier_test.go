package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/storefront-api/internal/domains/payments/domain"
	"github.com/Apurer/storefront-api/internal/domains/payments/ports"
)

const eventPayload = `{
	"id": "evt_1",
	"type": "payment_intent.succeeded",
	"data": {"object": {"id": "pi_123"}}
}`

func signPayload(secret string, payload []byte, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerify_SignedPayload(t *testing.T) {
	const secret = "whsec_test"
	verifier := NewVerifier(secret, false)

	header := signPayload(secret, []byte(eventPayload), time.Now())
	event, err := verifier.Verify([]byte(eventPayload), header)
	require.NoError(t, err)
	require.Equal(t, "evt_1", event.ID)
	require.Equal(t, domain.EventIntentSucceeded, event.Type)
	require.Equal(t, "pi_123", event.PaymentIntentID)
}

func TestVerify_RejectsBadSignature(t *testing.T) {
	verifier := NewVerifier("whsec_test", false)

	_, err := verifier.Verify([]byte(eventPayload), signPayload("whsec_other", []byte(eventPayload), time.Now()))
	require.ErrorIs(t, err, ports.ErrInvalidSignature)

	_, err = verifier.Verify([]byte(eventPayload), "")
	require.ErrorIs(t, err, ports.ErrInvalidSignature)
}

func TestVerify_NoSecretStrictModeRejects(t *testing.T) {
	verifier := NewVerifier("", false)

	_, err := verifier.Verify([]byte(eventPayload), "t=1,v1=abc")
	require.ErrorIs(t, err, ports.ErrInvalidSignature)
}

func TestVerify_NoSecretPermissiveModeParses(t *testing.T) {
	verifier := NewVerifier("", true)

	event, err := verifier.Verify([]byte(eventPayload), "")
	require.NoError(t, err)
	require.Equal(t, "evt_1", event.ID)
	require.Equal(t, "pi_123", event.PaymentIntentID)

	_, err = verifier.Verify([]byte("not json"), "")
	require.ErrorIs(t, err, ports.ErrInvalidSignature)
}
