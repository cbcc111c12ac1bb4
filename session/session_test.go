package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/hackhub/models"
)

func testSecret() []byte {
	secret := make([]byte, 32)
	for i := range secret {
		secret[i] = byte(i)
	}
	return secret
}

func TestCodec_SealOpenRoundtrip(t *testing.T) {
	codec, err := NewCodec(testSecret())
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	original := Session{
		Token:               "tok-abc",
		UserID:              17,
		Role:                models.RoleJudge,
		SelectedHackathonID: 5,
		ExpiresAt:           time.Now().Add(time.Hour).Truncate(time.Second),
	}

	sealed, err := codec.Seal(original)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	opened, err := codec.Open(sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if opened.Token != original.Token || opened.UserID != original.UserID ||
		opened.Role != original.Role || opened.SelectedHackathonID != original.SelectedHackathonID {
		t.Fatalf("roundtrip mismatch: %+v", opened)
	}
	if !opened.ExpiresAt.Equal(original.ExpiresAt) {
		t.Fatalf("expiry mismatch: %v != %v", opened.ExpiresAt, original.ExpiresAt)
	}
}

func TestCodec_RejectsTamperedValue(t *testing.T) {
	codec, _ := NewCodec(testSecret())

	sealed, err := codec.Seal(Session{Token: "tok", UserID: 1, Role: models.RoleParticipant})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	tampered := []byte(sealed)
	tampered[len(tampered)-1] ^= 0x01
	if _, err := codec.Open(string(tampered)); !errors.Is(err, ErrBadCookie) {
		t.Fatalf("expected ErrBadCookie for tampered cookie, got %v", err)
	}

	if _, err := codec.Open("not base64 at all!"); !errors.Is(err, ErrBadCookie) {
		t.Fatalf("expected ErrBadCookie for garbage, got %v", err)
	}
	if _, err := codec.Open(""); !errors.Is(err, ErrBadCookie) {
		t.Fatalf("expected ErrBadCookie for empty value, got %v", err)
	}
}

func TestCodec_RejectsWrongKey(t *testing.T) {
	codec, _ := NewCodec(testSecret())
	other := testSecret()
	other[0] ^= 0xFF
	otherCodec, _ := NewCodec(other)

	sealed, _ := codec.Seal(Session{Token: "tok", UserID: 1, Role: models.RoleParticipant})
	if _, err := otherCodec.Open(sealed); !errors.Is(err, ErrBadCookie) {
		t.Fatalf("expected ErrBadCookie under a different key, got %v", err)
	}
}

func TestNewCodec_InvalidSecret(t *testing.T) {
	if _, err := NewCodec([]byte("short")); !errors.Is(err, ErrInvalidSecret) {
		t.Fatalf("expected ErrInvalidSecret, got %v", err)
	}
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("irrelevant-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestFromToken(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	raw := signedToken(t, jwt.MapClaims{
		"user_id": 42,
		"role":    "judge",
		"exp":     exp.Unix(),
	})

	s, err := FromToken(raw)
	if err != nil {
		t.Fatalf("FromToken: %v", err)
	}
	if s.UserID != 42 {
		t.Errorf("UserID = %d, want 42", s.UserID)
	}
	if s.Role != models.RoleJudge {
		t.Errorf("Role = %s, want judge", s.Role)
	}
	if s.Token != raw {
		t.Error("session must carry the original bearer token")
	}
	if s.ExpiresAt.Unix() != exp.Unix() {
		t.Errorf("ExpiresAt = %v, want %v", s.ExpiresAt, exp)
	}
}

func TestFromToken_StringUserID(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{
		"user_id": "42",
		"role":    "participant",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	s, err := FromToken(raw)
	if err != nil {
		t.Fatalf("FromToken: %v", err)
	}
	if s.UserID != 42 {
		t.Errorf("UserID = %d, want 42", s.UserID)
	}
}

func TestFromToken_Expired(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{
		"user_id": 42,
		"role":    "participant",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})

	if _, err := FromToken(raw); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestFromToken_BadClaims(t *testing.T) {
	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing user_id", jwt.MapClaims{"role": "judge"}},
		{"missing role", jwt.MapClaims{"user_id": 1}},
		{"unknown role", jwt.MapClaims{"user_id": 1, "role": "superuser"}},
		{"zero user_id", jwt.MapClaims{"user_id": 0, "role": "judge"}},
	}
	for _, tc := range cases {
		if _, err := FromToken(signedToken(t, tc.claims)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}

	if _, err := FromToken("definitely.not.a-jwt"); err == nil {
		t.Error("malformed token: expected error")
	}
}

func TestGuard_SingleInvalidation(t *testing.T) {
	guard := NewGuard()

	if !guard.Invalidate("tok") {
		t.Fatal("first Invalidate must return true")
	}
	if guard.Invalidate("tok") {
		t.Fatal("second Invalidate must return false")
	}
	if !guard.Revoked("tok") {
		t.Fatal("token must read as revoked")
	}
	if guard.Revoked("other") {
		t.Fatal("unrelated token must not be revoked")
	}
	if guard.Invalidate("") {
		t.Fatal("empty token must never win the invalidation")
	}
}

func TestGuard_ConcurrentInvalidation(t *testing.T) {
	guard := NewGuard()

	const workers = 64
	var wins atomic.Int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if guard.Invalidate("shared-token") {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := wins.Load(); got != 1 {
		t.Fatalf("exactly one goroutine must win the invalidation, got %d", got)
	}
}

func TestSession_Expired(t *testing.T) {
	if (Session{}).Expired() {
		t.Error("zero expiry must mean no expiry")
	}
	if (Session{ExpiresAt: time.Now().Add(time.Minute)}).Expired() {
		t.Error("future expiry must not be expired")
	}
	if !(Session{ExpiresAt: time.Now().Add(-time.Minute)}).Expired() {
		t.Error("past expiry must be expired")
	}
}
