package iam_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudhbiyani/cdk-oidc/pkg/oidc"
	"github.com/anirudhbiyani/cdk-oidc/pkg/providers/iam"
)

func testHandlerCode(stack awscdk.Stack) awslambda.Code {
	bucket := awss3.Bucket_FromBucketName(stack, jsii.String("HandlerCodeBucket"), jsii.String("handler-code"))
	return awslambda.Code_FromBucket(bucket, jsii.String("oidc-provider-handler.zip"), nil)
}

func TestProviderFunctionSynthesizes(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	fn := iam.NewProviderFunction(stack, jsii.String("Provider"), &iam.ProviderFunctionProps{
		Code: testHandlerCode(stack),
	})
	require.NotNil(t, fn)

	template := assertions.Template_FromStack(stack, nil)
	template.ResourceCountIs(jsii.String("AWS::Lambda::Function"), jsii.Number(1))
	template.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
		"Handler": "bootstrap",
		"Runtime": "provided.al2023",
		"Timeout": 300,
	})
}

func TestProviderFunctionRolePermissions(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	iam.NewProviderFunction(stack, jsii.String("Provider"), &iam.ProviderFunctionProps{
		Code: testHandlerCode(stack),
	})

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String("AWS::IAM::Role"), map[string]interface{}{
		"AssumeRolePolicyDocument": assertions.Match_ObjectLike(&map[string]interface{}{
			"Statement": assertions.Match_ArrayWith(&[]interface{}{
				assertions.Match_ObjectLike(&map[string]interface{}{
					"Principal": map[string]interface{}{"Service": "lambda.amazonaws.com"},
				}),
			}),
		}),
	})
	template.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]interface{}{
		"PolicyDocument": assertions.Match_ObjectLike(&map[string]interface{}{
			"Statement": assertions.Match_ArrayWith(&[]interface{}{
				assertions.Match_ObjectLike(&map[string]interface{}{
					"Action": assertions.Match_ArrayWith(&[]interface{}{
						"iam:CreateOpenIDConnectProvider",
						"iam:DeleteOpenIDConnectProvider",
					}),
					"Resource": "*",
				}),
			}),
		}),
	})
}

func TestProviderFunctionLogLevel(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	iam.NewProviderFunction(stack, jsii.String("Provider"), &iam.ProviderFunctionProps{
		Code:     testHandlerCode(stack),
		LogLevel: jsii.String("debug"),
	})

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
		"Environment": map[string]interface{}{
			"Variables": map[string]interface{}{"LOG_LEVEL": "debug"},
		},
	})
}

func TestProviderFunctionServiceToken(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	fn := iam.NewProviderFunction(stack, jsii.String("Provider"), &iam.ProviderFunctionProps{
		Code: testHandlerCode(stack),
	})

	token := fn.ServiceToken()
	require.NotNil(t, token)
	assert.True(t, *awscdk.Token_IsUnresolved(*token))
	assert.NotNil(t, fn.Function())
	assert.NotNil(t, fn.Role())
	assert.True(t, oidc.IsRealConstruct(fn))
}

func TestProviderFunctionRequiresCode(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	for _, props := range []*iam.ProviderFunctionProps{nil, {}} {
		err := catchError(t, func() {
			iam.NewProviderFunction(stack, jsii.String("Provider"), props)
		})
		assert.True(t, oidc.IsCategory(err, oidc.ErrCategoryValidation))
	}
}
