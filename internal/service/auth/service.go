package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	sessionRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-BarberBooking/internal/service/auth/models"
)

// Credentials учетная запись администратора из конфигурации
type Credentials struct {
	Username     string
	PasswordHash string // bcrypt
}

// Service аутентификация администратора.
// Пароль хранится только в виде bcrypt-хэша, токен сессии хранится в виде SHA-256.
type Service struct {
	credentials  Credentials
	sessionTTL   time.Duration
	sessionRepo  SessionRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(credentials Credentials, sessionTTL time.Duration, sessionRepo SessionRepository, logger Logger) *Service {
	return &Service{
		credentials:  credentials,
		sessionTTL:   sessionTTL,
		sessionRepo:  sessionRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Login проверяет учетные данные и открывает сессию
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	// bcrypt выполняется всегда, чтобы время ответа не зависело от имени пользователя
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.credentials.PasswordHash), []byte(req.Password))
	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.credentials.Username)) == 1

	if !usernameOK || passwordErr != nil {
		s.logger.Warn("Login: rejected login attempt for username=%q", req.Username)
		return nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	now := s.timeProvider.Now().UTC()

	session, err := s.sessionRepo.Create(ctx, &domain.AdminSession{
		TokenHash: HashToken(token),
		Username:  s.credentials.Username,
		ExpiresAt: now.Add(s.sessionTTL),
	})
	if err != nil {
		s.logger.Error("Login: failed to create session: %v", err)
		return nil, fmt.Errorf("%w: Login - create session: %v", ErrInternal, err)
	}

	s.logger.Info("Login: session id=%d opened for %s", session.ID, session.Username)
	return &models.LoginResponse{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Authenticate возвращает сессию по токену из заголовка Authorization
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.AdminSession, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		s.logger.Error("Authenticate: repository error: %v", err)
		return nil, fmt.Errorf("%w: Authenticate - repository error: %v", ErrInternal, err)
	}

	if session.IsExpired(s.timeProvider.Now()) {
		return nil, ErrUnauthorized
	}

	return session, nil
}

// Logout закрывает сессию
func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.sessionRepo.DeleteByTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return ErrUnauthorized
		}
		s.logger.Error("Logout: repository error: %v", err)
		return fmt.Errorf("%w: Logout - repository error: %v", ErrInternal, err)
	}
	return nil
}

// PurgeExpired удаляет истекшие сессии
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := s.sessionRepo.DeleteExpired(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("PurgeExpired: repository error: %v", err)
		return 0, fmt.Errorf("%w: PurgeExpired - repository error: %v", ErrInternal, err)
	}
	if purged > 0 {
		s.logger.Info("PurgeExpired: removed %d expired session(s)", purged)
	}
	return purged, nil
}

// HashToken SHA-256 токена в hex
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
