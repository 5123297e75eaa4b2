package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
	"github.com/HuiyanRoy/GomokuMaster/pkg/auth"
	"github.com/HuiyanRoy/GomokuMaster/pkg/uid"
)

const sessionKeyPrefix = "session:"
const blockedSessionKeyPrefix = "blocked_session:"

type UserRepository interface {
	CreateUser(username, passwordHash string) (int64, error)
	GetUserByUsername(username string) (*domain.User, error)
	GetUserByID(userID int64) (*domain.User, error)
}

type SessionRepository interface {
	CreateSession(session *domain.UserSession) error
	GetSessionByID(sessionID string) (*domain.UserSession, error)
	DeactivateSession(sessionID string) error
	UpdateSessionActivity(sessionID string) error
}

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// AuthService handles accounts and login sessions
type AuthService struct {
	users UserRepository
	repo  SessionRepository
	cache CacheRepository // Optional, can be nil
}

func NewAuthService(users UserRepository, repo SessionRepository, cache CacheRepository) *AuthService {
	return &AuthService{
		users: users,
		repo:  repo,
		cache: cache,
	}
}

// Client identifies where a login came from.
type Client struct {
	DeviceInfo string
	IPAddress  string
}

type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(username, password string, client Client) (*LoginResult, error) {
	username, err := auth.ValidateCredentials(username, password)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.users.CreateUser(username, hash)
	if err != nil {
		return nil, err
	}
	log.Printf("[AUTH] Registered user %s (ID: %d)", username, userID)

	user := &domain.User{ID: userID, Username: username, CreatedAt: time.Now()}
	return s.startSession(user, client)
}

func (s *AuthService) Login(username, password string, client Client) (*LoginResult, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.startSession(user, client)
}

func (s *AuthService) startSession(user *domain.User, client Client) (*LoginResult, error) {
	sessionID, err := uid.GenerateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	token, expiresAt, err := auth.GenerateAccessToken(user.ID, user.Username, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := time.Now()
	session := &domain.UserSession{
		UserID:       user.ID,
		SessionID:    sessionID,
		DeviceInfo:   client.DeviceInfo,
		IPAddress:    client.IPAddress,
		CreatedAt:    now,
		ExpiresAt:    expiresAt,
		LastActivity: now,
		IsActive:     true,
	}
	if err := s.SetSession(session); err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) GetUser(userID int64) (*domain.User, error) {
	return s.users.GetUserByID(userID)
}

// BlocklistSession adds a session ID to the Redis blocklist with a TTL.
func (s *AuthService) BlocklistSession(sessionID string, ttl time.Duration) error {
	if s.cache == nil || ttl <= 0 {
		return nil
	}
	ctx := context.Background()
	key := blockedSessionKeyPrefix + sessionID
	return s.cache.Set(ctx, key, "1", ttl)
}

// IsSessionBlocked checks if a session ID is in the blocklist.
func (s *AuthService) IsSessionBlocked(sessionID string) bool {
	if s.cache == nil {
		return false
	}
	ctx := context.Background()
	key := blockedSessionKeyPrefix + sessionID
	val, err := s.cache.Get(ctx, key)
	return err == nil && val != ""
}

func (s *AuthService) SetSession(session *domain.UserSession) error {
	if err := s.repo.CreateSession(session); err != nil {
		return fmt.Errorf("failed to store session in database: %w", err)
	}
	if s.cache != nil {
		if err := s.setSessionInCache(session); err != nil {
			log.Printf("[SESSION] Warning: Failed to store session in cache: %v", err)
		}
	}
	return nil
}

func (s *AuthService) setSessionInCache(session *domain.UserSession) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	ctx := context.Background()
	key := sessionKeyPrefix + session.SessionID
	sessionData, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, sessionData, ttl)
}

func (s *AuthService) GetSession(sessionID string) (*domain.UserSession, error) {
	if s.cache != nil {
		session, err := s.getSessionFromCache(sessionID)
		if err == nil && session != nil {
			return session, nil
		}
	}
	session, err := s.repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session != nil && s.cache != nil {
		if err := s.setSessionInCache(session); err != nil {
			log.Printf("[SESSION] Warning: Failed to populate cache: %v", err)
		}
	}
	return session, nil
}

func (s *AuthService) getSessionFromCache(sessionID string) (*domain.UserSession, error) {
	ctx := context.Background()
	key := sessionKeyPrefix + sessionID
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var session domain.UserSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout marks the session inactive and blocklists it for the rest of the
// token's lifetime.
func (s *AuthService) Logout(claims *auth.Claims) error {
	if err := s.repo.DeactivateSession(claims.SessionID); err != nil {
		return fmt.Errorf("failed to deactivate session in database: %w", err)
	}
	if s.cache != nil {
		ctx := context.Background()
		if err := s.cache.Del(ctx, sessionKeyPrefix+claims.SessionID); err != nil {
			log.Printf("[SESSION] Warning: Failed to drop cached session: %v", err)
		}
	}
	if err := s.BlocklistSession(claims.SessionID, claims.Remaining()); err != nil {
		log.Printf("[SESSION] Warning: Failed to blocklist session: %v", err)
	}
	log.Printf("[AUTH] User %d logged out", claims.UserID)
	return nil
}

func (s *AuthService) UpdateSessionActivity(sessionID string) error {
	return s.repo.UpdateSessionActivity(sessionID)
}

// ValidateToken checks the signature, the blocklist and the stored session.
func (s *AuthService) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := auth.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}
	if s.IsSessionBlocked(claims.SessionID) {
		return nil, domain.ErrSessionRevoked
	}
	session, err := s.GetSession(claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if session == nil || !session.IsActive || session.UserID != claims.UserID {
		return nil, domain.ErrSessionRevoked
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, domain.ErrSessionRevoked
	}
	return claims, nil
}
