package oidc

// Package oidc verifies caller ID tokens against an OIDC issuer.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/pagekeep/digest-api/internal/domain/auth"
)

// VerifierConfig holds configuration for the OIDC token verifier.
type VerifierConfig struct {
	ClientID     string
	IssuerURL    string
	DiscoveryURL string       // Optional alternative to IssuerURL
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// Verifier resolves bearer/cookie ID tokens into domain claims using the
// issuer's published JWKS. Signature, expiry, and audience checks are
// delegated to go-oidc.
type Verifier struct {
	verifier *gooidc.IDTokenVerifier
}

// NewVerifier discovers the issuer configuration and builds a verifier.
func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}

	issuer := strings.TrimSpace(cfg.IssuerURL)
	if issuer == "" {
		issuer = cfg.DiscoveryURL
	}
	if issuer == "" {
		return nil, errors.New("issuer URL is required")
	}
	issuer = strings.TrimSuffix(issuer, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	// Single discovery fetch at startup
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Verifier{
		verifier: provider.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// Verify validates the raw token and maps its claims.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (domainauth.Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return domainauth.Claims{}, errors.New("token is empty")
	}

	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return domainauth.Claims{}, fmt.Errorf("verify id token: %w", err)
	}

	var extra struct {
		Email string `json:"email"`
	}
	if claimsErr := idToken.Claims(&extra); claimsErr != nil {
		return domainauth.Claims{}, fmt.Errorf("decode token claims: %w", claimsErr)
	}

	if idToken.Subject == "" {
		return domainauth.Claims{}, errors.New("token has no subject")
	}

	return domainauth.Claims{
		UserID: idToken.Subject,
		Email:  extra.Email,
	}, nil
}
