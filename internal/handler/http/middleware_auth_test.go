package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/service"
	"github.com/MKhiriev/repertoire-sync/internal/utils"
)

func TestAuth_Middleware_TableTest(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		verifyUser  string
		verifyErr   error
		expectCall  bool
		wantStatus  int
		wantMessage string
		wantUserID  string
	}{
		{
			name:        "no header",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: ErrEmptyAuthorizationHeader.Error(),
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing token",
			header:     "Bearer",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			header:     "Bearer expired",
			verifyErr:  service.ErrUnauthorized,
			expectCall: true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			header:     "Bearer good",
			verifyUser: "user-7",
			expectCall: true,
			wantStatus: http.StatusOK,
			wantUserID: "user-7",
		},
		{
			name:       "scheme is case insensitive",
			header:     "bearer good",
			verifyUser: "user-7",
			expectCall: true,
			wantStatus: http.StatusOK,
			wantUserID: "user-7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := NewMockAuthService(ctrl)
			if tt.expectCall {
				auth.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(tt.verifyUser, tt.verifyErr)
			}
			h := &Handler{services: &service.Services{AuthService: auth}, logger: logger.Nop()}

			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = utils.GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/sync/basic/pull", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, errorBody(t, rr))
			}
		})
	}
}
