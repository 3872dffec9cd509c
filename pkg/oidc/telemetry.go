package oidc

import (
	"encoding/json"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// constructMetadataType is the node metadata key read by template analytics.
const constructMetadataType = "aws:cdk:analytics:construct"

// RecordConstructTelemetry attaches a construct's construction properties as
// node metadata so synthesized templates carry usage analytics. Props are
// round-tripped through JSON to strip unexported state; recording is
// best-effort and never fails construction.
func RecordConstructTelemetry(scope constructs.Construct, props interface{}) {
	if scope == nil || props == nil {
		return
	}
	data, err := json.Marshal(props)
	if err != nil {
		return
	}
	var sanitized map[string]interface{}
	if err := json.Unmarshal(data, &sanitized); err != nil {
		return
	}
	scope.Node().AddMetadata(jsii.String(constructMetadataType), sanitized, nil)
}
