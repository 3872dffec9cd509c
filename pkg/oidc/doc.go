// Package oidc provides the shared core for the cdk-oidc construct library.
//
// # Overview
//
// cdk-oidc packages IAM OpenID Connect provider constructs for CDK Go
// applications, aimed at EKS cluster trust federation (IRSA). The library
// offers the provider resource in two forms plus the compatibility machinery
// that lets both forms (and imported providers) flow through the same typed
// surface.
//
// # Core Concepts
//
// ## Capability interfaces
//
// A provider is consumed through one of two capability interfaces:
//   - IOpenIdConnectProvider: the custom-resource era shape
//     (OpenIdConnectProviderArn / OpenIdConnectProviderIssuer)
//   - IOidcProvider: the native AWS::IAM::OIDCProvider shape
//     (OidcProviderArn / OidcProviderIssuer / OidcProviderThumbprints)
//
// The native construct satisfies both at once by aliasing the same
// underlying attributes, so code written against the older shape keeps
// compiling when a stack switches resource forms.
//
// ## Genuine vs. detached constructs
//
// Everything in this module that looks like a construct also implements
// RealConstruct. Genuine tree members report true; the stand-ins produced by
// legacy import factories (package detached) report false even though they
// satisfy constructs.IConstruct structurally. IsRealConstruct is the single
// discrimination check; there is no hidden marker registry.
//
// ## Errors
//
// Configuration problems surface as *Error with a category (validation,
// not_found, internal). Illegal access to a detached stand-in surfaces as
// *ScopeError, a validation failure raised independent of any construct
// scope. Construct entry points follow the CDK Go convention and panic with
// the typed error value; everything else returns errors explicitly.
//
// # Usage
//
// ## Creating a provider for a cluster issuer
//
//	provider := iam.NewOidcProviderNative(stack, jsii.String("OidcProvider"), &oidc.ProviderProps{
//	    Url: cluster.ClusterOpenIdConnectIssuerUrl(),
//	})
//
//	fmt.Println(*provider.OpenIdConnectProviderArn())
//
// ## Importing an existing provider
//
//	imported := iam.FromOpenIdConnectProviderArn(jsii.String(
//	    "arn:aws:iam::123456789012:oidc-provider/oidc.eks.us-east-1.amazonaws.com/id/ABCDEF"))
//
//	// Attribute reads work; tree and environment access panics with *ScopeError.
//	fmt.Println(*imported.OpenIdConnectProviderIssuer())
package oidc
