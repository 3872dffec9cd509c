// Lambda entrypoint for the OpenID Connect provider custom resource.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/charmbracelet/log"

	"github.com/anirudhbiyani/cdk-oidc/pkg/handler"
)

func main() {
	if lvl, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	client, err := handler.NewIAMClient(context.Background())
	if err != nil {
		log.Fatal("failed to initialize IAM client", "error", err)
	}

	h := handler.New(handler.WithIAMClient(client))
	lambda.Start(cfn.LambdaWrap(h.Handle))
}
