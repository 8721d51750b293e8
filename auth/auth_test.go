package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nikitapn/npchat/domain"
	"github.com/nikitapn/npchat/errors"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test_secret_long_enough_for_hmac")

func TestGenerateAndValidateToken(t *testing.T) {
	req := require.New(t)

	token, err := GenerateToken(secret, domain.UserID(42), time.Hour)
	req.NoError(err)

	claims, err := ValidateToken(secret, token)
	req.NoError(err)
	req.Equal(uint32(42), claims.UserID)
	req.Equal(issuer, claims.Issuer)
}

func TestValidateToken_Rejections(t *testing.T) {
	valid, err := GenerateToken(secret, 42, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(secret, 42, -time.Minute)
	require.NoError(t, err)
	anonymous, err := GenerateToken(secret, 0, time.Hour)
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &CustomClaims{UserID: 42}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret []byte
		token  string
	}{
		{"Wrong secret", []byte("another_secret_entirely_different"), valid},
		{"Expired", secret, expired},
		{"No user", secret, anonymous},
		{"Unsigned", secret, unsigned},
		{"Garbage", secret, "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			_, err := ValidateToken(tt.secret, tt.token)
			req.ErrorIs(err, errors.ErrInvalidToken)
		})
	}
}
