package flow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/layer-3/keyring/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenRefresherExchangesRefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "ref1", r.Form.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok2","refresh_token":"ref2","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	refresher := NewTokenRefresher(&oauth2.Config{
		ClientID: "client",
		Endpoint: oauth2.Endpoint{TokenURL: server.URL},
	})

	renewed, err := refresher.Refresh(context.Background(), core.Credential{
		AccessToken:  "tok1",
		RefreshToken: "ref1",
	})
	require.NoError(t, err)
	require.NotNil(t, renewed)
	assert.Equal(t, "tok2", renewed.AccessToken)
	assert.Equal(t, "ref2", renewed.RefreshToken)
	require.NotNil(t, renewed.ExpiresAt)
	assert.True(t, renewed.ExpiresAt.After(time.Now()))
}

func TestTokenRefresherKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok2","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	refresher := NewTokenRefresher(&oauth2.Config{
		ClientID: "client",
		Endpoint: oauth2.Endpoint{TokenURL: server.URL},
	})

	renewed, err := refresher.Refresh(context.Background(), core.Credential{
		AccessToken:  "tok1",
		RefreshToken: "ref1",
	})
	require.NoError(t, err)
	require.NotNil(t, renewed)
	assert.Equal(t, "tok2", renewed.AccessToken)
	assert.Equal(t, "ref1", renewed.RefreshToken)
}

func TestTokenRefresherRequiresRefreshToken(t *testing.T) {
	refresher := NewTokenRefresher(&oauth2.Config{})

	renewed, err := refresher.Refresh(context.Background(), core.Credential{AccessToken: "tok1"})
	assert.Nil(t, renewed)
	assert.True(t, errors.Is(err, core.ErrNoRefreshToken))
}

func TestTokenRefresherEndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	refresher := NewTokenRefresher(&oauth2.Config{
		ClientID: "client",
		Endpoint: oauth2.Endpoint{TokenURL: server.URL},
	})

	renewed, err := refresher.Refresh(context.Background(), core.Credential{RefreshToken: "revoked"})
	assert.Nil(t, renewed)
	assert.Error(t, err)
}

func TestDeviceFlowLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/device", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"device_code":"dev1","user_code":"ABCD-EFGH","verification_uri":"https://example.com/activate","expires_in":300,"interval":1}`))
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "dev1", r.Form.Get("device_code"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok1","refresh_token":"ref1","token_type":"Bearer","expires_in":3600}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	login := NewDeviceFlow(&oauth2.Config{
		ClientID: "client",
		Endpoint: oauth2.Endpoint{
			TokenURL:      server.URL + "/token",
			DeviceAuthURL: server.URL + "/device",
		},
	}, nil)

	credential, err := login.Login(context.Background())
	require.NoError(t, err)
	require.NotNil(t, credential)
	assert.Equal(t, "tok1", credential.AccessToken)
	assert.Equal(t, "ref1", credential.RefreshToken)
}

func TestDeviceFlowAuthorizationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	login := NewDeviceFlow(&oauth2.Config{
		ClientID: "client",
		Endpoint: oauth2.Endpoint{DeviceAuthURL: server.URL},
	}, nil)

	credential, err := login.Login(context.Background())
	assert.Nil(t, credential)
	assert.Error(t, err)
}

func TestCredentialFromTokenJWTExpiryFallback(t *testing.T) {
	expiry := time.Now().Add(45 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiry),
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)

	credential := credentialFromToken(&oauth2.Token{AccessToken: signed})
	require.NotNil(t, credential.ExpiresAt)
	assert.True(t, credential.ExpiresAt.Equal(expiry))
}

func TestCredentialFromTokenOpaqueWithoutExpiry(t *testing.T) {
	credential := credentialFromToken(&oauth2.Token{AccessToken: "opaque"})
	assert.Nil(t, credential.ExpiresAt)
}
