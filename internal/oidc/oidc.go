package oidc

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/espd/espd-web/backend/go-services/pkg/middleware"
)

// Verifier checks Keycloak-issued ID tokens.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// IssuerURL builds the realm issuer from a Keycloak base URL. An empty realm
// means the URL already points at the realm.
func IssuerURL(base, realm string) string {
	base = strings.TrimRight(base, "/")
	if realm == "" {
		return base
	}
	return base + "/realms/" + realm
}

// NewVerifier discovers the provider at issuer and verifies tokens for clientID.
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	return &Verifier{verifier: provider.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}
