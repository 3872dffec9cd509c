// Package eksoidc defines the EKS trust-federation scenario: a cluster stack
// whose OIDC issuer is federated with IAM through either the native
// AWS::IAM::OIDCProvider wrapper or the deprecated custom-resource form.
package eksoidc

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseks"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/anirudhbiyani/cdk-oidc/pkg/oidc"
	"github.com/anirudhbiyani/cdk-oidc/pkg/providers/iam"
)

// DefaultKubernetesVersion is used when no version is configured.
const DefaultKubernetesVersion = "1.32"

// ClusterStackProps configure a ClusterStack.
type ClusterStackProps struct {
	awscdk.StackProps

	// Version is the Kubernetes version for the cluster. Defaults to
	// DefaultKubernetesVersion.
	Version *string

	// NativeOidcProvider selects the AWS::IAM::OIDCProvider-backed wrapper
	// for trust federation instead of the custom-resource form.
	NativeOidcProvider *bool
}

// ClusterStack is a stack with an EKS cluster and a lazily created OpenID
// Connect provider federating the cluster's issuer with IAM.
type ClusterStack struct {
	awscdk.Stack

	cluster  awseks.Cluster
	native   bool
	provider oidc.IOpenIdConnectProvider
}

// NewClusterStack creates the cluster stack. The OIDC provider is not
// created until OpenIdConnectProvider is first read.
func NewClusterStack(scope constructs.Construct, id *string, props *ClusterStackProps) *ClusterStack {
	if props == nil {
		props = &ClusterStackProps{}
	}
	stack := awscdk.NewStack(scope, id, &props.StackProps)

	version := props.Version
	if version == nil || *version == "" {
		version = jsii.String(DefaultKubernetesVersion)
	}

	cluster := awseks.NewCluster(stack, jsii.String("Cluster"), &awseks.ClusterProps{
		Version:         awseks.KubernetesVersion_Of(version),
		DefaultCapacity: jsii.Number(0),
	})

	return &ClusterStack{
		Stack:   stack,
		cluster: cluster,
		native:  props.NativeOidcProvider != nil && *props.NativeOidcProvider,
	}
}

// Cluster returns the EKS cluster.
func (s *ClusterStack) Cluster() awseks.Cluster {
	return s.cluster
}

// OpenIdConnectProvider returns the provider that federates the cluster's
// OIDC issuer with IAM, creating it on first read. Repeated reads return the
// same provider.
func (s *ClusterStack) OpenIdConnectProvider() oidc.IOpenIdConnectProvider {
	if s.provider == nil {
		props := &oidc.ProviderProps{Url: s.cluster.ClusterOpenIdConnectIssuerUrl()}
		if s.native {
			s.provider = iam.NewOidcProviderNative(s.Stack, jsii.String("OidcProvider"), props)
		} else {
			s.provider = iam.NewOpenIdConnectProvider(s.Stack, jsii.String("OidcProvider"), props)
		}
	}
	return s.provider
}
