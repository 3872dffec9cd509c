package iam

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/anirudhbiyani/cdk-oidc/pkg/oidc"
)

// OidcProviderNative realizes the provider through the native
// AWS::IAM::OIDCProvider resource type.
//
// One concrete type satisfies both capability shapes: the native accessors
// (OidcProviderArn and friends) and their legacy-named aliases
// (OpenIdConnectProviderArn and friends) read the same underlying
// attributes, so EKS cluster code written against the custom-resource form
// keeps compiling when a stack switches to the native form. The aliasing is
// identity, not transformation.
type OidcProviderNative struct {
	construct   constructs.Construct
	resource    awsiam.CfnOIDCProvider
	arn         *string
	issuer      *string
	thumbprints *[]*string
}

// NewOidcProviderNative creates the native provider form. The client ID
// list is fixed to oidc.StsAudience; the URL is validated unless it is an
// unresolved token. Panics with *oidc.Error on invalid props, the CDK Go
// convention for construct-time failures.
func NewOidcProviderNative(scope constructs.Construct, id *string, props *oidc.ProviderProps) *OidcProviderNative {
	if err := props.Validate(); err != nil {
		panic(err)
	}

	construct := constructs.NewConstruct(scope, id)

	resource := awsiam.NewCfnOIDCProvider(construct, jsii.String("Resource"), &awsiam.CfnOIDCProviderProps{
		Url:          props.Url,
		ClientIdList: jsii.Strings(oidc.StsAudience),
	})
	resource.ApplyRemovalPolicy(props.EffectiveRemovalPolicy(), nil)

	oidc.RecordConstructTelemetry(construct, props)

	arn := resource.AttrArn()
	return &OidcProviderNative{
		construct:   construct,
		resource:    resource,
		arn:         arn,
		issuer:      awscdk.Arn_ExtractResourceName(arn, jsii.String("oidc-provider")),
		thumbprints: &[]*string{},
	}
}

// Node implements constructs.IConstruct.
func (p *OidcProviderNative) Node() constructs.Node {
	return p.construct.Node()
}

// IsRealConstruct implements oidc.RealConstruct.
func (p *OidcProviderNative) IsRealConstruct() bool {
	return true
}

// OidcProviderArn returns the ARN attribute of the native resource.
func (p *OidcProviderNative) OidcProviderArn() *string {
	return p.arn
}

// OidcProviderIssuer returns the issuer host path, the ARN's resource name.
func (p *OidcProviderNative) OidcProviderIssuer() *string {
	return p.issuer
}

// OidcProviderThumbprints returns the configured thumbprint list. IAM
// secures the provider trust itself, so no thumbprints are registered.
func (p *OidcProviderNative) OidcProviderThumbprints() *[]*string {
	return p.thumbprints
}

// Legacy-named aliases over the same attributes.

// OpenIdConnectProviderArn aliases OidcProviderArn.
func (p *OidcProviderNative) OpenIdConnectProviderArn() *string {
	return p.arn
}

// OpenIdConnectProviderIssuer aliases OidcProviderIssuer.
func (p *OidcProviderNative) OpenIdConnectProviderIssuer() *string {
	return p.issuer
}

// OpenIdConnectProviderthumbprints aliases OidcProviderThumbprints. The
// lowercase t preserves the original property spelling callers depend on.
func (p *OidcProviderNative) OpenIdConnectProviderthumbprints() *[]*string {
	return p.thumbprints
}

var (
	_ constructs.IConstruct       = (*OidcProviderNative)(nil)
	_ oidc.IOpenIdConnectProvider = (*OidcProviderNative)(nil)
	_ oidc.IOidcProvider          = (*OidcProviderNative)(nil)
)
