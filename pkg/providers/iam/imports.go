package iam

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/anirudhbiyani/cdk-oidc/pkg/detached"
	"github.com/anirudhbiyani/cdk-oidc/pkg/oidc"
)

// importSourceAPI names the factory in diagnostics raised by the stand-in.
const importSourceAPI = "OpenIdConnectProvider.FromOpenIdConnectProviderArn"

// importedProvider carries the attributes derivable from an ARN alone and
// fails on everything that needs a tree or an environment.
type importedProvider struct {
	*detached.Resource
	arn    *string
	issuer *string
}

// FromOpenIdConnectProviderArn imports an existing provider by ARN.
//
// The factory takes no scope, so the returned value never joins a construct
// tree: it is a detached stand-in whose ARN and issuer read normally, while
// tree and environment access panics with *oidc.ScopeError naming this
// factory. Panics with *oidc.Error when the ARN is malformed.
func FromOpenIdConnectProviderArn(arn *string) oidc.IOpenIdConnectProvider {
	if err := oidc.ValidateProviderARN(arn); err != nil {
		panic(err)
	}
	return &importedProvider{
		Resource: detached.NewResource(importSourceAPI),
		arn:      arn,
		issuer:   awscdk.Arn_ExtractResourceName(arn, jsii.String("oidc-provider")),
	}
}

// OpenIdConnectProviderArn returns the imported provider's ARN.
func (p *importedProvider) OpenIdConnectProviderArn() *string {
	return p.arn
}

// OpenIdConnectProviderIssuer returns the issuer host path parsed from the ARN.
func (p *importedProvider) OpenIdConnectProviderIssuer() *string {
	return p.issuer
}

var _ oidc.IOpenIdConnectProvider = (*importedProvider)(nil)
