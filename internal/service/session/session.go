package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"math-academy/internal/config"
)

// Manager issues and verifies HMAC-signed student session tokens of the form
// studentId:timestampMillis:hexHmac. These are deliberately lighter than full
// account auth; a broken token is treated the same as no token.
type Manager struct {
	secret []byte
	maxAge time.Duration
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret: []byte(cfg.SessionSecret),
		maxAge: cfg.StudentSessionMaxAge,
	}
}

func (m *Manager) CreateToken(studentID uuid.UUID) string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	data := fmt.Sprintf("%s:%s", studentID, timestamp)
	return fmt.Sprintf("%s:%s", data, m.sign(data))
}

// VerifyToken returns the student id carried by a valid, unexpired token.
// Any malformed, tampered or expired token yields (Nil, false); never an
// error.
func (m *Manager) VerifyToken(token string) (uuid.UUID, bool) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return uuid.Nil, false
	}

	data := parts[0] + ":" + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(m.sign(data))) {
		return uuid.Nil, false
	}

	issuedMillis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return uuid.Nil, false
	}
	if time.Since(time.UnixMilli(issuedMillis)) > m.maxAge {
		return uuid.Nil, false
	}

	studentID, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, false
	}
	return studentID, true
}

func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

func (m *Manager) sign(data string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
