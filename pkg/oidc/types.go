package oidc

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
)

// StsAudience is the client ID registered on every provider this library
// creates. EKS service account tokens are issued for the AWS token service,
// so the audience list always contains exactly this value.
const StsAudience = "sts.amazonaws.com"

// Resource type identifiers emitted into stack templates.
const (
	// NativeResourceType is the CloudFormation type of the native provider form.
	NativeResourceType = "AWS::IAM::OIDCProvider"

	// CustomResourceType is the custom-resource type backing the deprecated
	// provider form. The handler in pkg/handler serves events of this type.
	CustomResourceType = "Custom::AWSCDKOpenIdConnectProvider"
)

// IAM service limits for OpenID Connect providers.
const (
	// MaxURLLength is the maximum length IAM accepts for a provider URL.
	MaxURLLength = 255

	// MaxClientIDLength is the maximum length of a single client ID entry.
	MaxClientIDLength = 255

	// MaxThumbprints is the maximum number of server certificate thumbprints.
	MaxThumbprints = 5

	// ThumbprintLength is the exact hex length of a SHA-1 certificate thumbprint.
	ThumbprintLength = 40
)

// ProviderProps configures either provider form.
//
// ProviderProps is plain data: constructed by the caller, consumed once at
// construct instantiation, never mutated afterwards.
type ProviderProps struct {
	// Url is the issuer URL of the identity provider. Must begin with
	// "https://" and carry no query parameters unless the value is an
	// unresolved token (for example a cluster's issuer URL attribute).
	Url *string `json:"url" yaml:"url"`

	// RemovalPolicy controls what happens to the provider resource when its
	// construct is removed from the stack. Defaults to DESTROY.
	RemovalPolicy awscdk.RemovalPolicy `json:"removal_policy,omitempty" yaml:"removal_policy,omitempty"`
}

// Validate validates the props fields. Unresolved token URLs are accepted
// as-is; they only take a concrete value during deployment.
func (p *ProviderProps) Validate() error {
	if p == nil {
		return ErrValidation("provider props are required")
	}
	return ValidateProviderURL(p.Url)
}

// EffectiveRemovalPolicy returns the configured removal policy, or DESTROY
// when none was set.
func (p *ProviderProps) EffectiveRemovalPolicy() awscdk.RemovalPolicy {
	if p.RemovalPolicy == "" {
		return awscdk.RemovalPolicy_DESTROY
	}
	return p.RemovalPolicy
}
