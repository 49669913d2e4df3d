package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

type Config struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`
}

const minSecretLen = 32

// New returns the HS256 signer of admin tokens.
func New(c *Config) (*jwtauth.JWTAuth, error) {
	if len(c.JWTSecret) < minSecretLen {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretLen)
	}
	return jwtauth.New("HS256", []byte(c.JWTSecret), nil), nil
}

func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (string, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return "", err
	}
	return t.Subject(), nil
}

// NewToken creates a JWT for subject. Subject is the operator name logged with
// administrative actions.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	claims := map[string]interface{}{
		"exp": time.Now().Add(ttl).Unix(),
		"sub": subject,
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return ts, nil
}

// Subject returns the subject of the verified token in ctx, or "" when there is none.
func Subject(ctx context.Context) string {
	t, _, err := jwtauth.FromContext(ctx)
	if err != nil || t == nil {
		return ""
	}
	return t.Subject()
}
