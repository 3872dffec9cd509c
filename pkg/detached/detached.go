// Package detached provides construct-shaped stand-ins for objects that
// never join a construct tree.
//
// Legacy factory functions sometimes have to return a value that type-checks
// against a live-construct capability interface without having any scope to
// attach to. The adapters here satisfy that structural shape while
// guaranteeing that tree- and environment-dependent access fails loudly with
// an *oidc.ScopeError instead of silently misbehaving: a detached object is
// a deliberate dead end, useful only for the attribute values its factory
// placed on it.
package detached

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/anirudhbiyani/cdk-oidc/pkg/oidc"
)

// MessageKind selects how a Construct's diagnostic message is built.
type MessageKind string

const (
	// MessageFull uses the supplied message verbatim.
	MessageFull MessageKind = "full"

	// MessageSource treats the supplied message as the name of the
	// originating API and expands it through the standard template.
	MessageSource MessageKind = "source"
)

// envSuffix extends a source-derived message for the resource variant, so
// environment access and generic tree access fail with distinct wording.
const envSuffix = " or an 'env'"

// sourceMessage expands an originating API name into the standard sentence.
func sourceMessage(source string) string {
	return fmt.Sprintf("Objects returned by %s cannot be used in this API: "+
		"they are not real constructs and do not have a construct tree 'node'", source)
}

// Construct satisfies constructs.IConstruct without belonging to any tree.
//
// It exposes a synthetic root node so generic code that merely inspects
// identity does not crash on a nil node; the node has no parent and must
// never be traversed upward. Every other accessor fails with a ScopeError
// carrying the constructed message, identically on every call.
type Construct struct {
	message string
	phantom constructs.Construct
}

// NewConstruct creates a detached construct. With MessageSource the message
// argument is the name of the originating API; with MessageFull it is the
// complete diagnostic text.
func NewConstruct(message string, kind MessageKind) *Construct {
	if kind == MessageSource {
		message = sourceMessage(message)
	}
	return &Construct{message: message}
}

// Message returns the diagnostic carried by every failing accessor.
func (c *Construct) Message() string {
	return c.message
}

// Node returns the synthetic root node. Safe for identity and name
// inspection only; the node is created on first access and is never
// attached to a real hierarchy.
func (c *Construct) Node() constructs.Node {
	if c.phantom == nil {
		c.phantom = constructs.NewRootConstruct(jsii.String(""))
	}
	return c.phantom.Node()
}

// IsRealConstruct implements oidc.RealConstruct. Detached constructs are
// never genuine tree members.
func (c *Construct) IsRealConstruct() bool {
	return false
}

// Env always fails: a detached construct belongs to no deployment
// environment. Panics with *oidc.ScopeError, matching how the framework
// surfaces construct-time throws.
func (c *Construct) Env() *awscdk.ResourceEnvironment {
	panic(oidc.NewScopeError(c.message))
}

var (
	_ constructs.IConstruct = (*Construct)(nil)
	_ oidc.RealConstruct    = (*Construct)(nil)
)

// Resource is the variant for resource-shaped interfaces. Its message is
// derived from the originating API name plus a fixed suffix naming the
// missing env accessor, and the resource-level accessors fail the same way
// the environment accessor does.
type Resource struct {
	Construct
}

// NewResource creates a detached resource naming the originating API.
func NewResource(sourceAPI string) *Resource {
	return &Resource{Construct{message: sourceMessage(sourceAPI) + envSuffix}}
}

// Stack always fails: a detached resource is part of no stack.
func (r *Resource) Stack() awscdk.Stack {
	panic(oidc.NewScopeError(r.message))
}

// ApplyRemovalPolicy always fails: there is no underlying resource to
// configure.
func (r *Resource) ApplyRemovalPolicy(policy awscdk.RemovalPolicy) {
	panic(oidc.NewScopeError(r.message))
}

var (
	_ constructs.IConstruct = (*Resource)(nil)
	_ oidc.RealConstruct    = (*Resource)(nil)
)
