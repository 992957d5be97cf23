package token

import (
	"strings"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager("test-secret", "taskdeck", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("", "taskdeck", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := newTestManager(t)

	raw, issued, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if issued.TokenID == "" {
		t.Fatalf("expected a token id to be assigned")
	}

	claims, err := m.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("expected subject 'user-123', got %q", claims.UserID)
	}
	if claims.TokenID != issued.TokenID {
		t.Fatalf("token id mismatch: issued %q, verified %q", issued.TokenID, claims.TokenID)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %v", claims.ExpiresAt)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := newTestManager(t)

	raw, _, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip one byte in each segment of the token.
	for _, pos := range []int{2, len(raw) / 2, len(raw) - 2} {
		mutated := []byte(raw)
		if mutated[pos] == 'A' {
			mutated[pos] = 'B'
		} else {
			mutated[pos] = 'A'
		}
		if _, err := m.Verify(string(mutated)); err == nil {
			t.Fatalf("expected tampered token (byte %d) to fail verification", pos)
		}
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager("another-secret", "taskdeck", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	raw, _, err := other.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(raw); err == nil {
		t.Fatalf("expected token signed with a different secret to fail")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := newTestManager(t)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, _, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = time.Now
	if _, err := m.Verify(raw); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestManager(t)
	for _, raw := range []string{"", "not-a-token", strings.Repeat("x", 200)} {
		if _, err := m.Verify(raw); err == nil {
			t.Fatalf("expected %q to fail verification", raw)
		}
	}
}

func TestTokensAreBoundToTheirSubject(t *testing.T) {
	m := newTestManager(t)

	rawA, _, err := m.Issue("user-a")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rawB, _, err := m.Issue("user-b")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claimsA, err := m.Verify(rawA)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	claimsB, err := m.Verify(rawB)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claimsA.UserID == claimsB.UserID {
		t.Fatalf("tokens for different users resolved to the same subject")
	}
	if claimsA.UserID != "user-a" || claimsB.UserID != "user-b" {
		t.Fatalf("subjects swapped: %q / %q", claimsA.UserID, claimsB.UserID)
	}
}
