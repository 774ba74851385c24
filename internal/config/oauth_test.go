package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOAuthInstalled() OAuthInstalled {
	return OAuthInstalled{
		ClientID:                "test-client-id.apps.googleusercontent.com",
		ProjectID:               "test-project",
		AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
		TokenURI:                "https://oauth2.googleapis.com/token",
		AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientSecret:            "test-secret",
		RedirectURIs:            []string{"http://localhost"},
	}
}

func TestValidateOAuthClient(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(i *OAuthInstalled)
		wantErr bool
	}{
		{"valid", func(i *OAuthInstalled) {}, false},
		{"missing client id", func(i *OAuthInstalled) { i.ClientID = "" }, true},
		{"invalid auth url", func(i *OAuthInstalled) { i.AuthURI = "not-a-valid-url" }, true},
		{"no redirect uris", func(i *OAuthInstalled) { i.RedirectURIs = []string{} }, true},
		{"invalid redirect uri", func(i *OAuthInstalled) { i.RedirectURIs = []string{"not a valid uri"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installed := validOAuthInstalled()
			tt.mutate(&installed)

			err := ValidateOAuthClient(&OAuthClientConfig{Installed: installed})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "validation failed")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadOAuthClientFromPath(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "oauthClient.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{
  "installed": {
    "client_id": "test-client-id",
    "project_id": "test-project",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
    "client_secret": "test-secret",
    "redirect_uris": ["http://localhost:8080", "urn:ietf:wg:oauth:2.0:oob"]
  }
}`), 0644))

	cfg, err := LoadOAuthClientFromPath(valid)
	require.NoError(t, err)
	assert.Equal(t, "test-client-id", cfg.Installed.ClientID)
	assert.Equal(t, []string{"http://localhost:8080", "urn:ietf:wg:oauth:2.0:oob"}, cfg.Installed.RedirectURIs)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"installed": {"client_id": "x" "project_id": "y"}}`), 0644))
	_, err = LoadOAuthClientFromPath(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse oauth client file")

	_, err = LoadOAuthClientFromPath(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read oauth client file")
}
