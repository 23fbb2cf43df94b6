package auth

import (
	"strconv"
	"time"

	"keepup/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by every issued bearer token. The subject is the user id
// in decimal form; role is the single role name from registration.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken mints an HS256 token for the given user.
func IssueToken(user *domain.User, role string, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry and recovers the identity
// encoded in the token. Any failure maps to domain.ErrInvalidToken.
func ParseToken(tokenString string, secret []byte) (*domain.AuthUser, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return &domain.AuthUser{ID: userID, Role: claims.Role}, nil
}
