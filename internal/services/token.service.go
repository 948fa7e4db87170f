package services

import (
	"fmt"
	"time"

	"reefclean/config"
	"reefclean/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 12 * time.Hour

// TokenService verifies the HS256 bearer tokens issued by the identity
// provider. The subject claim carries the user ID; the role is never read
// from the token.
type TokenService struct {
	secret []byte
	issuer string
	log    logger.Logger
}

func NewTokenService(config config.Config) *TokenService {
	return &TokenService{
		secret: []byte(config.JWTSecret),
		issuer: config.JWTIssuer,
		log:    logger.New("tokenService"),
	}
}

// Issue signs a token for userID. Used by tests and local tooling.
func (s *TokenService) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", s.log.Function("Issue").Err("failed to sign token", err, "userID", userID)
	}
	return signed, nil
}

// Validate checks signature, expiry, and issuer and returns the subject.
func (s *TokenService) Validate(raw string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, options...)
	if err != nil || !token.Valid {
		return uuid.Nil, types.NewUnauthenticatedError(fmt.Sprintf("invalid token: %v", err))
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, types.NewUnauthenticatedError("token subject is not a user id")
	}

	return userID, nil
}
