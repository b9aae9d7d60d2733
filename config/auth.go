package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOIDC verifies bearer/cookie ID tokens against an OIDC issuer.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses a static dev identity (for development and tests only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, mock)", v)
	}
}

// OIDCConfig contains OIDC token verification configuration.
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"      envDefault:"pagekeep"`
	IssuerURL    string `env:"ISSUER_URL"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls the static dev identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID string `env:"USER_ID" envDefault:"dev-user"`
	Email  string `env:"EMAIL"   envDefault:"dev@example.com"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which token verifier to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oidc"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// CookieName is the cookie consulted when no Authorization header is present.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"auth"`
}
