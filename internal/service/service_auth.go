package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/utils"
)

// authService verifies bearer tokens issued by the identity provider.
// Credential issuance happens elsewhere; the server only checks the HMAC
// signature, the expiry and, when configured, the issuer.
type authService struct {
	// tokenSignKey is the HMAC secret used to verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the expected "iss" claim. Empty disables the check.
	tokenIssuer string

	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the App configuration.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
}

// Verify validates a raw JWT string and returns its subject.
//
// Any validation failure (expired, wrong issuer, bad signature, missing
// subject) is normalised to ErrUnauthorized so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) Verify(ctx context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("%w: empty token", ErrUnauthorized)
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.Verify").Msg("token rejected")
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	return token.UserID, nil
}
