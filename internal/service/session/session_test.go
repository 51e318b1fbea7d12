package session_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"math-academy/internal/config"
	"math-academy/internal/service/session"
)

func newManager(maxAge time.Duration) *session.Manager {
	return session.NewManager(&config.Config{
		SessionSecret:        "test-secret",
		StudentSessionMaxAge: maxAge,
	})
}

func TestSessionManager_RoundTrip(t *testing.T) {
	mgr := newManager(30 * 24 * time.Hour)
	studentID := uuid.New()

	token := mgr.CreateToken(studentID)

	parts := strings.Split(token, ":")
	assert.Len(t, parts, 3)
	assert.Equal(t, studentID.String(), parts[0])

	got, ok := mgr.VerifyToken(token)
	assert.True(t, ok)
	assert.Equal(t, studentID, got)
}

func TestSessionManager_RejectsTamperedToken(t *testing.T) {
	mgr := newManager(30 * 24 * time.Hour)
	token := mgr.CreateToken(uuid.New())

	t.Run("Swapped Student ID", func(t *testing.T) {
		parts := strings.Split(token, ":")
		forged := fmt.Sprintf("%s:%s:%s", uuid.New(), parts[1], parts[2])

		got, ok := mgr.VerifyToken(forged)
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, got)
	})

	t.Run("Altered Signature", func(t *testing.T) {
		_, ok := mgr.VerifyToken(token[:len(token)-1] + "0")
		assert.False(t, ok)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := session.NewManager(&config.Config{
			SessionSecret:        "another-secret",
			StudentSessionMaxAge: 30 * 24 * time.Hour,
		})
		_, ok := other.VerifyToken(token)
		assert.False(t, ok)
	})
}

func TestSessionManager_RejectsExpiredToken(t *testing.T) {
	mgr := newManager(-time.Minute)
	token := mgr.CreateToken(uuid.New())

	_, ok := mgr.VerifyToken(token)
	assert.False(t, ok)
}

func TestSessionManager_RejectsMalformedToken(t *testing.T) {
	mgr := newManager(30 * 24 * time.Hour)

	cases := []string{
		"",
		"not-a-token",
		"onlyone:part",
		"a:b:c:d",
		uuid.New().String() + ":notanumber:deadbeef",
	}
	for _, token := range cases {
		got, ok := mgr.VerifyToken(token)
		assert.False(t, ok, "token %q should not verify", token)
		assert.Equal(t, uuid.Nil, got)
	}
}
