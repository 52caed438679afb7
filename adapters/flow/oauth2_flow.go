package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/layer-3/keyring/core"
	"github.com/layer-3/keyring/ports"
	"golang.org/x/oauth2"
)

// DeviceFlow implements the login flow using the OAuth 2.0 device
// authorization grant. The verification URI and user code are surfaced
// through the logger; DeviceAccessToken then polls the token endpoint
// until the user completes sign-in or ctx is cancelled.
type DeviceFlow struct {
	config *oauth2.Config
	logger watermill.LoggerAdapter
}

// NewDeviceFlow creates a new device authorization login flow.
func NewDeviceFlow(config *oauth2.Config, logger watermill.LoggerAdapter) ports.LoginFlow {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &DeviceFlow{config: config, logger: logger}
}

// Login runs the device grant and returns the obtained credential.
func (f *DeviceFlow) Login(ctx context.Context) (*core.Credential, error) {
	response, err := f.config.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device authorization request failed: %w", err)
	}

	f.logger.Info("complete sign-in in your browser", watermill.LogFields{
		"verification_uri": response.VerificationURI,
		"user_code":        response.UserCode,
	})

	token, err := f.config.DeviceAccessToken(ctx, response)
	if err != nil {
		return nil, fmt.Errorf("device token exchange failed: %w", err)
	}

	return credentialFromToken(token), nil
}

// TokenRefresher implements the refresh flow by exchanging the current
// refresh token at the token endpoint.
type TokenRefresher struct {
	config *oauth2.Config
}

// NewTokenRefresher creates a new refresh flow.
func NewTokenRefresher(config *oauth2.Config) ports.RefreshFlow {
	return &TokenRefresher{config: config}
}

// Refresh exchanges the refresh token for a renewed credential.
func (r *TokenRefresher) Refresh(ctx context.Context, current core.Credential) (*core.Credential, error) {
	if strings.TrimSpace(current.RefreshToken) == "" {
		return nil, core.ErrNoRefreshToken
	}

	source := r.config.TokenSource(ctx, &oauth2.Token{RefreshToken: current.RefreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token exchange failed: %w", err)
	}

	renewed := credentialFromToken(token)
	if renewed.RefreshToken == "" {
		// Token endpoints that do not rotate refresh tokens omit the field.
		renewed.RefreshToken = current.RefreshToken
	}
	return renewed, nil
}

// credentialFromToken maps an oauth2 token onto the domain credential.
// When the endpoint omits expires_in, a JWT access token's exp claim is
// used as a fallback.
func credentialFromToken(token *oauth2.Token) *core.Credential {
	credential := &core.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		credential.ExpiresAt = &expiry
	} else {
		credential.ExpiresAt = core.ExpiryFromToken(token.AccessToken)
	}
	return credential
}
