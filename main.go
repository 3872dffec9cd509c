// CDK app exercising the EKS OIDC trust-federation scenario in both
// provider modes. Each stack creates its provider through the lazy stack
// property, so the app also proves the property forces creation before
// synthesis.
package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdkintegtestsalpha/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/anirudhbiyani/cdk-oidc/stacks/eksoidc"
)

func main() {
	defer jsii.Close()

	app := awscdk.NewApp(nil)

	native := eksoidc.NewClusterStack(app, jsii.String("eks-oidc-provider-native"), &eksoidc.ClusterStackProps{
		StackProps:         awscdk.StackProps{Env: env()},
		Version:            jsii.String("1.32"),
		NativeOidcProvider: jsii.Bool(true),
	})
	legacy := eksoidc.NewClusterStack(app, jsii.String("eks-oidc-provider-legacy"), &eksoidc.ClusterStackProps{
		StackProps:         awscdk.StackProps{Env: env()},
		Version:            jsii.String("1.32"),
		NativeOidcProvider: jsii.Bool(false),
	})

	// Read the lazy property so the providers land in the templates.
	native.OpenIdConnectProvider()
	legacy.OpenIdConnectProvider()

	awscdkintegtestsalpha.NewIntegTest(app, jsii.String("EksOidcProviderInteg"), &awscdkintegtestsalpha.IntegTestProps{
		TestCases: &[]awscdk.Stack{native.Stack, legacy.Stack},
	})

	app.Synth(nil)
}

func env() *awscdk.Environment {
	account := os.Getenv("CDK_DEFAULT_ACCOUNT")
	region := os.Getenv("CDK_DEFAULT_REGION")
	if account == "" || region == "" {
		return nil
	}
	return &awscdk.Environment{
		Account: jsii.String(account),
		Region:  jsii.String(region),
	}
}
