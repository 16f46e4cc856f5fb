package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Длина токена сессии в байтах (256 бит энтропии)
const tokenLength = 32

// Session представляет выданную сессию
type Session struct {
	// ID - стабильный идентификатор для логов. Сам токен в логи не попадает.
	ID        uuid.UUID
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoked   bool
}

// valid сообщает, действительна ли сессия в момент now
func (s *Session) valid(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}

// SessionManager владеет таблицей сессий: выдает, проверяет и
// отзывает токены. Никакой другой компонент таблицу не изменяет.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	sliding  bool
	logger   *zap.Logger
}

// NewSessionManager создает менеджер сессий.
// При sliding=true каждая успешная проверка продлевает срок жизни сессии.
func NewSessionManager(ttl time.Duration, sliding bool, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		sliding:  sliding,
		logger:   logger,
	}
}

// Create генерирует криптографически случайный токен и регистрирует
// новую сессию. Проверка коллизий и вставка идут под одной блокировкой.
func (m *SessionManager) Create() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var token string
	for {
		buf := make([]byte, tokenLength)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate session token: %w", err)
		}
		token = base64.RawURLEncoding.EncodeToString(buf)

		if _, exists := m.sessions[token]; !exists {
			break
		}
	}

	now := time.Now()
	session := &Session{
		ID:        uuid.New(),
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	m.sessions[token] = session

	m.logger.Info("Session created",
		zap.String("session_id", session.ID.String()),
		zap.Time("expires_at", session.ExpiresAt))

	return token, nil
}

// Validate сообщает, действительна ли сессия с данным токеном.
// Неизвестный, истекший и отозванный токены неразличимы для вызывающего.
func (m *SessionManager) Validate(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return false
	}

	now := time.Now()
	if !session.valid(now) {
		return false
	}

	if m.sliding {
		session.ExpiresAt = now.Add(m.ttl)
	}

	return true
}

// Revoke отзывает сессию. Идемпотентна: отзыв неизвестного
// или уже отозванного токена - no-op.
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok || session.Revoked {
		return
	}

	session.Revoked = true

	m.logger.Info("Session revoked",
		zap.String("session_id", session.ID.String()))
}

// Count возвращает число сессий в таблице, включая истекшие,
// которые еще не собраны уборщиком
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// StartReaper запускает фоновую уборку истекших и отозванных сессий.
// Останавливается по отмене контекста.
func (m *SessionManager) StartReaper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.reap()
			}
		}
	}()
}

// reap удаляет из таблицы сессии, которые уже не могут стать валидными
func (m *SessionManager) reap() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, session := range m.sessions {
		if session.Revoked || !now.Before(session.ExpiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}

	if removed > 0 {
		m.logger.Debug("Expired sessions reaped",
			zap.Int("removed", removed),
			zap.Int("remaining", len(m.sessions)))
	}
}
