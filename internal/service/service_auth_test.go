package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/utils"
)

func TestAuthService_Verify(t *testing.T) {
	const key = "test-sign-key"

	valid, err := utils.GenerateJWTToken("idp", "user-42", time.Hour, key)
	require.NoError(t, err)
	expired, err := utils.GenerateJWTToken("idp", "user-42", -time.Hour, key)
	require.NoError(t, err)
	foreign, err := utils.GenerateJWTToken("idp", "user-42", time.Hour, "other-key")
	require.NoError(t, err)
	otherIssuer, err := utils.GenerateJWTToken("elsewhere", "user-42", time.Hour, key)
	require.NoError(t, err)

	tests := []struct {
		name     string
		issuer   string
		token    string
		wantUser string
		wantErr  bool
	}{
		{name: "valid token", token: valid.SignedString, wantUser: "user-42"},
		{name: "issuer checked", issuer: "idp", token: valid.SignedString, wantUser: "user-42"},
		{name: "wrong issuer", issuer: "idp", token: otherIssuer.SignedString, wantErr: true},
		{name: "expired", token: expired.SignedString, wantErr: true},
		{name: "wrong key", token: foreign.SignedString, wantErr: true},
		{name: "empty", token: "", wantErr: true},
		{name: "garbage", token: "a.b.c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(config.App{TokenSignKey: key, TokenIssuer: tt.issuer}, logger.Nop())

			userID, err := svc.Verify(context.Background(), tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, userID)
		})
	}
}
