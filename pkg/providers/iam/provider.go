// Package iam provides the IAM OpenID Connect provider constructs.
//
// The provider resource exists in two forms: OpenIdConnectProvider, backed
// by a custom resource and kept for compatibility with stacks that already
// deployed it, and OidcProviderNative, backed by the native
// AWS::IAM::OIDCProvider type. Both fix the client ID list to the token
// service audience EKS federation requires and satisfy the capability
// interfaces in pkg/oidc, so downstream cluster code does not care which
// form a stack uses. FromOpenIdConnectProviderArn imports an existing
// provider without attaching it to any tree.
package iam

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/anirudhbiyani/cdk-oidc/pkg/oidc"
)

// OpenIdConnectProvider is the custom-resource backed provider form.
//
// Construction allocates one custom resource plus its supporting execution
// role when the stack synthesizes; the provider primitive owns both. The
// URL is forwarded as given, any further validation happens inside the
// primitive and at deploy time.
//
// Deprecated: use OidcProviderNative. The native form realizes the same
// logical resource without the custom-resource shim and exposes the same
// accessor names.
type OpenIdConnectProvider struct {
	construct   constructs.Construct
	provider    awsiam.OpenIdConnectProvider
	thumbprints *[]*string
}

// NewOpenIdConnectProvider creates the custom-resource backed provider. The
// client ID list is fixed to oidc.StsAudience regardless of input, so
// callers never need to know the audience value cluster federation expects.
func NewOpenIdConnectProvider(scope constructs.Construct, id *string, props *oidc.ProviderProps) *OpenIdConnectProvider {
	construct := constructs.NewConstruct(scope, id)

	provider := awsiam.NewOpenIdConnectProvider(construct, jsii.String("Resource"), &awsiam.OpenIdConnectProviderProps{
		Url:       props.Url,
		ClientIds: jsii.Strings(oidc.StsAudience),
	})
	provider.ApplyRemovalPolicy(props.EffectiveRemovalPolicy())

	oidc.RecordConstructTelemetry(construct, props)

	return &OpenIdConnectProvider{
		construct:   construct,
		provider:    provider,
		thumbprints: &[]*string{},
	}
}

// Node implements constructs.IConstruct.
func (p *OpenIdConnectProvider) Node() constructs.Node {
	return p.construct.Node()
}

// IsRealConstruct implements oidc.RealConstruct.
func (p *OpenIdConnectProvider) IsRealConstruct() bool {
	return true
}

// OpenIdConnectProviderArn returns the ARN of the provider resource.
func (p *OpenIdConnectProvider) OpenIdConnectProviderArn() *string {
	return p.provider.OpenIdConnectProviderArn()
}

// OpenIdConnectProviderIssuer returns the issuer host path of the provider.
func (p *OpenIdConnectProvider) OpenIdConnectProviderIssuer() *string {
	return p.provider.OpenIdConnectProviderIssuer()
}

// OpenIdConnectProviderthumbprints returns the configured thumbprint list.
// The custom-resource handler manages thumbprints server-side, so the list
// is empty for this form. The lowercase t preserves the original property
// spelling callers depend on.
func (p *OpenIdConnectProvider) OpenIdConnectProviderthumbprints() *[]*string {
	return p.thumbprints
}

var (
	_ constructs.IConstruct       = (*OpenIdConnectProvider)(nil)
	_ oidc.IOpenIdConnectProvider = (*OpenIdConnectProvider)(nil)
)
