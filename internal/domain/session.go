package domain

import "time"

// AdminSession выданный администратору токен (хранится только его хэш)
type AdminSession struct {
	ID        int64
	TokenHash string
	Username  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired returns true if the session is no longer valid at now
func (s *AdminSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
