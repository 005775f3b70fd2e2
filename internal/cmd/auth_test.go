package cmd

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenExpiryFromJWT(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": expires.Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	assert.True(t, tokenExpiry(signed).Equal(expires))
}

func TestTokenExpiryOpaqueToken(t *testing.T) {
	assert.True(t, tokenExpiry("not-a-jwt").IsZero())
}

func TestTokenExpiryJWTWithoutExp(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	assert.True(t, tokenExpiry(signed).IsZero())
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"login", "logout", "status", "register", "users", "dashboard", "commissions", "console"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}
