package session

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/AleksL04/SmartKitBud/internal/logger"
)

func newTestCodec(t *testing.T, ttl time.Duration) *Codec {
	t.Helper()
	c, err := NewCodec("test-secret-key-12345", ttl, logger.NewWithWriter(io.Discard))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	payload := Payload{
		UserID:        "user-123",
		Email:         "test@example.com",
		UpstreamToken: "pb-token-abc",
	}

	token, err := codec.Issue(payload)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got := codec.Verify(token)
	if got == nil {
		t.Fatal("Verify returned nil for a valid token")
	}
	if *got != payload {
		t.Fatalf("round trip mismatch: got %+v, want %+v", *got, payload)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	// Build an already-expired codec with the same secret.
	expired := &Codec{secret: codec.secret, ttl: -time.Minute, log: codec.log}

	token, err := expired.Issue(Payload{UserID: "user-123"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if got := codec.Verify(token); got != nil {
		t.Fatalf("expected nil for expired token, got %+v", *got)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	token, err := codec.Issue(Payload{UserID: "user-123", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a character in the signature segment.
	dot := strings.LastIndex(token, ".")
	sig := []byte(token[dot+1:])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := token[:dot+1] + string(sig)

	if got := codec.Verify(tampered); got != nil {
		t.Fatalf("expected nil for tampered token, got %+v", *got)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	other, _ := NewCodec("a-completely-different-secret", time.Hour, codec.log)

	token, err := other.Issue(Payload{UserID: "user-123"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if got := codec.Verify(token); got != nil {
		t.Fatalf("expected nil for token signed with another secret, got %+v", *got)
	}
}

func TestVerifyGarbage(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if got := codec.Verify(token); got != nil {
			t.Fatalf("expected nil for %q, got %+v", token, *got)
		}
	}
}
