package oidc

import (
	"github.com/aws/constructs-go/constructs/v10"
)

// RealConstruct distinguishes genuine construct-tree members from the
// detached stand-ins returned by legacy import factories. Both satisfy
// constructs.IConstruct structurally; only genuine members report true here.
//
// Every adapter and wrapper type in this library implements RealConstruct
// explicitly. Code that needs to tell the two apart must consult
// IsRealConstruct rather than relying on interface satisfaction.
type RealConstruct interface {
	// IsRealConstruct reports whether the value is a genuine member of a
	// construct tree.
	IsRealConstruct() bool
}

// IOpenIdConnectProvider is the custom-resource era provider shape.
//
// Both provider forms and imported providers satisfy it, so downstream code
// (EKS cluster wiring, service account roles) can stay agnostic about how
// the provider resource is realized.
type IOpenIdConnectProvider interface {
	constructs.IConstruct
	RealConstruct

	// OpenIdConnectProviderArn returns the ARN of the provider resource.
	OpenIdConnectProviderArn() *string

	// OpenIdConnectProviderIssuer returns the issuer host path of the
	// provider, the URL without its https:// prefix.
	OpenIdConnectProviderIssuer() *string
}

// IOidcProvider is the native AWS::IAM::OIDCProvider resource shape.
type IOidcProvider interface {
	constructs.IConstruct
	RealConstruct

	// OidcProviderArn returns the ARN of the provider resource.
	OidcProviderArn() *string

	// OidcProviderIssuer returns the issuer host path of the provider.
	OidcProviderIssuer() *string

	// OidcProviderThumbprints returns the server certificate thumbprints
	// configured on the provider.
	OidcProviderThumbprints() *[]*string
}

// IsRealConstruct reports whether v is a genuine construct-tree member.
// Values implementing RealConstruct answer for themselves; anything else
// counts as genuine exactly when it satisfies constructs.IConstruct.
func IsRealConstruct(v interface{}) bool {
	if m, ok := v.(RealConstruct); ok {
		return m.IsRealConstruct()
	}
	_, ok := v.(constructs.IConstruct)
	return ok
}
