package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mindease/mindease-backend/internal/db"
	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/requestdata"
	"github.com/mindease/mindease-backend/internal/utils"
)

// TokenVerifier turns a bearer token into the request identity. Verification
// failures are reported as-is; the middleware maps them all to unauthorized.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*requestdata.RequestData, error)
}

// NewTokenVerifier picks the verifier from AUTH_MODE: "firebase" (default)
// validates Firebase ID tokens, "local" validates HS256 tokens signed with
// AUTH_LOCAL_SECRET for development and tests.
func NewTokenVerifier(ctx context.Context, fs *db.FirestoreService, baseLog *logger.Logger) (TokenVerifier, error) {
	mode := strings.ToLower(utils.GetEnv("AUTH_MODE", "firebase", baseLog))
	switch mode {
	case "local":
		secret := os.Getenv("AUTH_LOCAL_SECRET")
		if secret == "" {
			return nil, fmt.Errorf("AUTH_LOCAL_SECRET is required when AUTH_MODE=local")
		}
		return &localVerifier{secret: []byte(secret)}, nil
	case "firebase":
		client, err := fs.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to init firebase auth: %w", err)
		}
		return &firebaseVerifier{client: client, log: baseLog.With("service", "auth")}, nil
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", mode)
	}
}

// NewDenyAllVerifier rejects every token. Used as the fallback when the real
// verifier cannot initialize, so the process can keep serving public content.
func NewDenyAllVerifier() TokenVerifier {
	return denyAllVerifier{}
}

type denyAllVerifier struct{}

func (denyAllVerifier) Verify(context.Context, string) (*requestdata.RequestData, error) {
	return nil, fmt.Errorf("authentication is unavailable")
}

type firebaseVerifier struct {
	client *fbauth.Client
	log    *logger.Logger
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*requestdata.RequestData, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("invalid id token: %w", err)
	}
	rd := &requestdata.RequestData{UserID: decoded.UID, TokenString: token}
	if email, ok := decoded.Claims["email"].(string); ok {
		rd.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		rd.DisplayName = name
	}
	return rd, nil
}

// localVerifier validates HS256 tokens with sub/email/name claims. Meant for
// development without a Firebase project.
type localVerifier struct {
	secret []byte
}

func (v *localVerifier) Verify(_ context.Context, token string) (*requestdata.RequestData, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	rd := &requestdata.RequestData{UserID: sub, TokenString: token}
	if email, ok := claims["email"].(string); ok {
		rd.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		rd.DisplayName = name
	}
	return rd, nil
}
