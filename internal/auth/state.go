package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var stateSecret string

const stateTTL = 10 * time.Minute

func InitStateSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("state secret is not set")
	}
	stateSecret = secret
	return nil
}

// GenerateState mints the signed OAuth state parameter, good for one
// handshake window.
func GenerateState() (string, error) {
	claims := jwt.MapClaims{
		"nonce": uuid.NewString(),
		"exp":   time.Now().Add(stateTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(stateSecret))
}

// VerifyState rejects expired, tampered or foreign state values.
func VerifyState(state string) error {
	token, err := jwt.Parse(state, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(stateSecret), nil
	})

	if err != nil || !token.Valid {
		return fmt.Errorf("invalid or expired state")
	}

	return nil
}
