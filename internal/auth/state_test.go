package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundtrip(t *testing.T) {
	require.NoError(t, InitStateSecret("state-test-secret"))

	state, err := GenerateState()
	require.NoError(t, err)
	assert.NotEmpty(t, state)

	assert.NoError(t, VerifyState(state))
}

func TestStateExpired(t *testing.T) {
	require.NoError(t, InitStateSecret("state-test-secret"))

	claims := jwt.MapClaims{
		"nonce": "n",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(stateSecret))
	require.NoError(t, err)

	assert.Error(t, VerifyState(expired))
}

func TestStateTampered(t *testing.T) {
	require.NoError(t, InitStateSecret("state-test-secret"))

	state, err := GenerateState()
	require.NoError(t, err)

	assert.Error(t, VerifyState(state+"x"))
}

func TestStateWrongSecret(t *testing.T) {
	require.NoError(t, InitStateSecret("state-test-secret"))

	claims := jwt.MapClaims{
		"nonce": "n",
		"exp":   time.Now().Add(time.Minute).Unix(),
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	assert.Error(t, VerifyState(foreign))
}

func TestInitStateSecretEmpty(t *testing.T) {
	assert.Error(t, InitStateSecret(""))
}
