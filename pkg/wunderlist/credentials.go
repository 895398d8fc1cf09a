package wunderlist

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mholzen/wunderlist-backup/pkg/client"
)

const (
	AccessTokenEnv = "WUNDERLIST_ACCESS_TOKEN"
	ClientIDEnv    = "WUNDERLIST_CLIENT_ID"
)

// Credentials identify the caller to the service. Either field may be
// empty; the service decides whether what was sent is sufficient.
type Credentials struct {
	AccessToken string `toml:"access_token"`
	ClientID    string `toml:"client_id"`
}

// ConfigurationError reports credentials that cannot be used at all
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing environment variables: %s", strings.Join(e.Missing, ", "))
}

// CredentialsFromEnv reads credentials through lookup, normally os.LookupEnv
func CredentialsFromEnv(lookup func(string) (string, bool)) Credentials {
	token, _ := lookup(AccessTokenEnv)
	clientID, _ := lookup(ClientIDEnv)
	return Credentials{
		AccessToken: strings.TrimSpace(token),
		ClientID:    strings.TrimSpace(clientID),
	}
}

// LoadCredentialsFile reads credentials from a TOML file.
// A missing file yields empty credentials and no error.
func LoadCredentialsFile(path string) (Credentials, error) {
	var creds Credentials
	if path == "" {
		return creds, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("credentials file does not exist", "path", path)
		return creds, nil
	}

	md, err := toml.DecodeFile(path, &creds)
	if err != nil {
		return Credentials{}, fmt.Errorf("cannot parse credentials file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		slog.Warn("ignoring unknown keys in credentials file", "path", path, "keys", undecoded)
	}
	creds.AccessToken = strings.TrimSpace(creds.AccessToken)
	creds.ClientID = strings.TrimSpace(creds.ClientID)
	slog.Debug("credentials file read", "path", path)
	return creds, nil
}

// Or fills each empty field from fallback
func (c Credentials) Or(fallback Credentials) Credentials {
	if c.AccessToken == "" {
		c.AccessToken = fallback.AccessToken
	}
	if c.ClientID == "" {
		c.ClientID = fallback.ClientID
	}
	return c
}

// Validate fails only when both fields are empty
func (c Credentials) Validate() (Credentials, error) {
	if c.AccessToken == "" && c.ClientID == "" {
		return c, &ConfigurationError{Missing: []string{AccessTokenEnv, ClientIDEnv}}
	}
	return c, nil
}

// WithCredentials sets the X-Access-Token and X-Client-ID headers
func WithCredentials(creds Credentials) client.Option {
	return func(c *client.Client) {
		c.SetAuth(func(r *http.Request) {
			if creds.AccessToken != "" {
				r.Header.Set("X-Access-Token", creds.AccessToken)
			}
			if creds.ClientID != "" {
				r.Header.Set("X-Client-ID", creds.ClientID)
			}
		})
	}
}
