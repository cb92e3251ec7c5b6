package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

// AdvisorAudience is the audience claim expected by the card advisor service.
const AdvisorAudience = "mendikot-card-advisor"

var ErrAdvisorDisabled = errors.New("card advisor secret is not configured")

// AdvisorTokenService signs bearer tokens for calls to the external card
// advisor. Each token names the match and seat it was issued for.
type AdvisorTokenService struct {
	secret string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewAdvisorTokenService(secret, issuer string) *AdvisorTokenService {
	return &AdvisorTokenService{
		secret: secret,
		issuer: issuer,
		ttl:    AdvisorTokenTTL,
		now:    time.Now,
	}
}

// Enabled reports whether tokens can be issued.
func (s *AdvisorTokenService) Enabled() bool {
	return s != nil && s.secret != ""
}

func (s *AdvisorTokenService) GenerateToken(matchID string, seat int) (string, error) {
	if !s.Enabled() {
		return "", ErrAdvisorDisabled
	}
	if matchID == "" {
		return "", fmt.Errorf("match id is required")
	}
	if seat < 0 || seat > 3 {
		return "", fmt.Errorf("seat %d out of range", seat)
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss":  s.issuer,
		"sub":  matchID,
		"aud":  AdvisorAudience,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
		"jti":  uuid.NewString(),
		"seat": seat,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
