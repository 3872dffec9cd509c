package iam

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/anirudhbiyani/cdk-oidc/pkg/oidc"
)

// ProviderFunctionProps configures a self-hosted provider handler function.
type ProviderFunctionProps struct {
	// Code is the packaged handler binary built from
	// cmd/oidc-provider-handler (a provided.al2023 bootstrap archive).
	Code awslambda.Code

	// Timeout bounds a single lifecycle event. Thumbprint fetching dials
	// the issuer, so allow for slow TLS handshakes. Defaults to 5 minutes.
	Timeout awscdk.Duration

	// LogLevel sets the handler's LOG_LEVEL environment variable.
	LogLevel *string
}

// ProviderFunction deploys the Go custom-resource handler together with its
// execution role, for accounts that pin a provider function they control
// instead of the framework-bundled one. The function ARN is the service
// token to point custom resources at.
type ProviderFunction struct {
	construct constructs.Construct
	function  awslambda.Function
	role      awsiam.Role
}

// NewProviderFunction creates the handler function and its role. Panics
// with *oidc.Error when no handler code is supplied.
func NewProviderFunction(scope constructs.Construct, id *string, props *ProviderFunctionProps) *ProviderFunction {
	if props == nil || props.Code == nil {
		panic(oidc.ErrValidation("handler code is required"))
	}

	construct := constructs.NewConstruct(scope, id)

	role := awsiam.NewRole(construct, jsii.String("Role"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("lambda.amazonaws.com"), nil),
		ManagedPolicies: &[]awsiam.IManagedPolicy{
			awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("service-role/AWSLambdaBasicExecutionRole")),
		},
	})
	role.AddToPolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions: jsii.Strings(
			"iam:CreateOpenIDConnectProvider",
			"iam:DeleteOpenIDConnectProvider",
			"iam:GetOpenIDConnectProvider",
			"iam:UpdateOpenIDConnectProviderThumbprint",
			"iam:AddClientIDToOpenIDConnectProvider",
			"iam:RemoveClientIDFromOpenIDConnectProvider",
		),
		Resources: jsii.Strings("*"),
	}))

	timeout := props.Timeout
	if timeout == nil {
		timeout = awscdk.Duration_Minutes(jsii.Number(5))
	}
	var environment *map[string]*string
	if props.LogLevel != nil {
		environment = &map[string]*string{"LOG_LEVEL": props.LogLevel}
	}

	function := awslambda.NewFunction(construct, jsii.String("Handler"), &awslambda.FunctionProps{
		Runtime:     awslambda.Runtime_PROVIDED_AL2023(),
		Handler:     jsii.String("bootstrap"),
		Code:        props.Code,
		Role:        role,
		Timeout:     timeout,
		Environment: environment,
		Description: jsii.String("IAM OIDC provider custom-resource handler"),
	})

	return &ProviderFunction{
		construct: construct,
		function:  function,
		role:      role,
	}
}

// Node implements constructs.IConstruct.
func (p *ProviderFunction) Node() constructs.Node {
	return p.construct.Node()
}

// IsRealConstruct implements oidc.RealConstruct.
func (p *ProviderFunction) IsRealConstruct() bool {
	return true
}

// Function returns the handler function.
func (p *ProviderFunction) Function() awslambda.Function {
	return p.function
}

// Role returns the execution role.
func (p *ProviderFunction) Role() awsiam.Role {
	return p.role
}

// ServiceToken returns the value to set as a custom resource's service token.
func (p *ProviderFunction) ServiceToken() *string {
	return p.function.FunctionArn()
}

var (
	_ constructs.IConstruct = (*ProviderFunction)(nil)
	_ oidc.RealConstruct    = (*ProviderFunction)(nil)
)
