package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/errors"
)

const issuer = "npchat"

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	UserID uint32 `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a specific user.
func GenerateToken(secret []byte, userID domain.UserID, authTokenDuration time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: uint32(userID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(uint32(userID)),
			ExpiresAt: jwt.NewNumericDate(now.Add(authTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	// HS256 (HMAC with SHA256)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates the signature and expiration of a JWT string.
// Every failure is reported as ErrInvalidToken.
func ValidateToken(secret []byte, tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}
