// Package handler implements the CloudFormation custom-resource lifecycle
// behind Custom::AWSCDKOpenIdConnectProvider resources.
//
// Create provisions an IAM OpenID Connect provider, deriving the issuer
// thumbprint from the live TLS chain when the caller pins none. Update
// replaces the provider when the issuer URL changes and otherwise reconciles
// thumbprints and client IDs against the live provider state. Delete removes
// the provider and treats an already-missing provider as success, so
// rollbacks of failed creates converge.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/anirudhbiyani/cdk-oidc/pkg/oidc"
)

// failedCreateIDPrefix marks placeholder physical IDs for creates that never
// produced a provider. CloudFormation still issues a Delete for the failed
// resource, and delete skips IDs that are not ARNs.
const failedCreateIDPrefix = "oidc-provider-create-failed-"

// ResourceProperties are the properties the provider constructs set on the
// custom resource. Field names follow the IAM API.
type ResourceProperties struct {
	Url            string   `json:"Url"`
	ClientIDList   []string `json:"ClientIDList"`
	ThumbprintList []string `json:"ThumbprintList"`
}

// Handler processes custom-resource lifecycle events for IAM OpenID Connect
// providers.
type Handler struct {
	client  IAMAPI
	fetcher ThumbprintFetcher
	logger  *log.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithIAMClient sets the IAM client.
func WithIAMClient(client IAMAPI) Option {
	return func(h *Handler) {
		h.client = client
	}
}

// WithThumbprintFetcher sets the thumbprint fetcher.
func WithThumbprintFetcher(fetcher ThumbprintFetcher) Option {
	return func(h *Handler) {
		h.fetcher = fetcher
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// New creates a Handler. Without options it fetches thumbprints over TLS and
// logs through the default logger; an IAM client must be supplied before any
// event is handled.
func New(opts ...Option) *Handler {
	h := &Handler{
		fetcher: &TLSFetcher{},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle dispatches one lifecycle event and returns the physical resource ID
// plus response data, per the custom-resource protocol.
func (h *Handler) Handle(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
	h.logger.Info("processing custom resource event",
		"request_type", event.RequestType,
		"logical_id", event.LogicalResourceID,
		"physical_id", event.PhysicalResourceID)

	if h.client == nil {
		return event.PhysicalResourceID, nil, oidc.ErrInternal("IAM client not configured")
	}

	switch event.RequestType {
	case cfn.RequestCreate:
		props, err := parseProperties(event.ResourceProperties)
		if err != nil {
			return failedCreateID(), nil, err
		}
		return h.create(ctx, props)
	case cfn.RequestUpdate:
		props, err := parseProperties(event.ResourceProperties)
		if err != nil {
			return event.PhysicalResourceID, nil, err
		}
		return h.update(ctx, event.PhysicalResourceID, props)
	case cfn.RequestDelete:
		return h.delete(ctx, event.PhysicalResourceID)
	default:
		return event.PhysicalResourceID, nil, oidc.ErrValidation(
			fmt.Sprintf("unsupported request type %q", event.RequestType))
	}
}

func (h *Handler) create(ctx context.Context, props *ResourceProperties) (string, map[string]interface{}, error) {
	thumbprints := props.ThumbprintList
	if len(thumbprints) == 0 {
		fetched, err := h.fetcher.Fetch(ctx, props.Url)
		if err != nil {
			return failedCreateID(), nil, err
		}
		thumbprints = fetched
	}

	h.logger.Info("creating OpenID Connect provider",
		"url", props.Url,
		"client_ids", strings.Join(props.ClientIDList, ","))

	out, err := h.client.CreateOpenIDConnectProvider(ctx, &iam.CreateOpenIDConnectProviderInput{
		Url:            aws.String(props.Url),
		ClientIDList:   props.ClientIDList,
		ThumbprintList: thumbprints,
	})
	if err != nil {
		return failedCreateID(), nil, oidc.ErrInternal("failed to create OpenID Connect provider").
			WithOperation("create").
			WithDetail("url", props.Url).
			WithCause(err)
	}

	arn := aws.ToString(out.OpenIDConnectProviderArn)
	h.logger.Info("created OpenID Connect provider", "arn", arn)
	return arn, responseData(thumbprints), nil
}

func (h *Handler) update(ctx context.Context, physicalID string, props *ResourceProperties) (string, map[string]interface{}, error) {
	current, err := h.client.GetOpenIDConnectProvider(ctx, &iam.GetOpenIDConnectProviderInput{
		OpenIDConnectProviderArn: aws.String(physicalID),
	})
	if err != nil {
		if isNotFoundError(err) {
			// The provider was removed out of band; recreate it.
			h.logger.Warn("provider missing during update, recreating", "arn", physicalID)
			return h.create(ctx, props)
		}
		return physicalID, nil, oidc.ErrInternal("failed to read OpenID Connect provider").
			WithOperation("update").
			WithDetail("arn", physicalID).
			WithCause(err)
	}

	// A URL change replaces the provider. Returning a new physical ID makes
	// CloudFormation delete the old provider after stabilization.
	if !urlsEqual(aws.ToString(current.Url), props.Url) {
		h.logger.Info("issuer URL changed, replacing provider",
			"old_url", aws.ToString(current.Url),
			"new_url", props.Url)
		return h.create(ctx, props)
	}

	data := responseData(current.ThumbprintList)

	// Step 1: reconcile thumbprints when the caller pins them explicitly.
	// An empty list leaves server-managed thumbprints untouched.
	if len(props.ThumbprintList) > 0 && !equalStringSets(props.ThumbprintList, current.ThumbprintList) {
		h.logger.Info("updating provider thumbprints", "arn", physicalID)
		if _, err := h.client.UpdateOpenIDConnectProviderThumbprint(ctx, &iam.UpdateOpenIDConnectProviderThumbprintInput{
			OpenIDConnectProviderArn: aws.String(physicalID),
			ThumbprintList:           props.ThumbprintList,
		}); err != nil {
			return physicalID, nil, oidc.ErrInternal("failed to update provider thumbprints").
				WithOperation("update").
				WithDetail("arn", physicalID).
				WithCause(err)
		}
		data = responseData(props.ThumbprintList)
	}

	// Step 2: reconcile client IDs against the live provider state.
	toAdd, toRemove := clientIDDiff(current.ClientIDList, props.ClientIDList)
	for _, id := range toAdd {
		h.logger.Info("adding client ID", "arn", physicalID, "client_id", id)
		if _, err := h.client.AddClientIDToOpenIDConnectProvider(ctx, &iam.AddClientIDToOpenIDConnectProviderInput{
			OpenIDConnectProviderArn: aws.String(physicalID),
			ClientID:                 aws.String(id),
		}); err != nil {
			return physicalID, nil, oidc.ErrInternal("failed to add client ID").
				WithOperation("update").
				WithDetail("client_id", id).
				WithCause(err)
		}
	}
	for _, id := range toRemove {
		h.logger.Info("removing client ID", "arn", physicalID, "client_id", id)
		if _, err := h.client.RemoveClientIDFromOpenIDConnectProvider(ctx, &iam.RemoveClientIDFromOpenIDConnectProviderInput{
			OpenIDConnectProviderArn: aws.String(physicalID),
			ClientID:                 aws.String(id),
		}); err != nil {
			return physicalID, nil, oidc.ErrInternal("failed to remove client ID").
				WithOperation("update").
				WithDetail("client_id", id).
				WithCause(err)
		}
	}

	return physicalID, data, nil
}

func (h *Handler) delete(ctx context.Context, physicalID string) (string, map[string]interface{}, error) {
	// Creates that failed before provisioning return placeholder IDs;
	// there is nothing to clean up for those.
	if !strings.HasPrefix(physicalID, "arn:") {
		h.logger.Warn("skipping delete of non-provider physical ID", "physical_id", physicalID)
		return physicalID, nil, nil
	}

	h.logger.Info("deleting OpenID Connect provider", "arn", physicalID)
	_, err := h.client.DeleteOpenIDConnectProvider(ctx, &iam.DeleteOpenIDConnectProviderInput{
		OpenIDConnectProviderArn: aws.String(physicalID),
	})
	if err != nil {
		if isNotFoundError(err) {
			h.logger.Warn("provider already deleted", "arn", physicalID)
			return physicalID, nil, nil
		}
		return physicalID, nil, oidc.ErrInternal("failed to delete OpenID Connect provider").
			WithOperation("delete").
			WithDetail("arn", physicalID).
			WithCause(err)
	}
	return physicalID, nil, nil
}

// parseProperties decodes and validates the custom-resource properties.
func parseProperties(raw map[string]interface{}) (*ResourceProperties, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, oidc.ErrValidation("malformed resource properties").WithCause(err)
	}
	var props ResourceProperties
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, oidc.ErrValidation("malformed resource properties").WithCause(err)
	}
	if err := oidc.ValidateIssuerURL(props.Url); err != nil {
		return nil, err
	}
	if err := oidc.ValidateClientIDs(props.ClientIDList); err != nil {
		return nil, err
	}
	if err := oidc.ValidateThumbprints(props.ThumbprintList); err != nil {
		return nil, err
	}
	return &props, nil
}

func failedCreateID() string {
	return failedCreateIDPrefix + uuid.NewString()
}

func responseData(thumbprints []string) map[string]interface{} {
	return map[string]interface{}{
		"Thumbprints": strings.Join(thumbprints, ","),
	}
}

// isNotFoundError reports whether err means the provider does not exist.
// Deletes treat that as success so stack rollbacks converge.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound *iamtypes.NoSuchEntityException
	if errors.As(err, &notFound) {
		return true
	}
	if oidc.IsCategory(err, oidc.ErrCategoryNotFound) {
		return true
	}
	return strings.Contains(err.Error(), "NoSuchEntity")
}

// urlsEqual compares issuer URLs the way IAM stores them: scheme stripped
// and no trailing slash.
func urlsEqual(a, b string) bool {
	return normalizeIssuerURL(a) == normalizeIssuerURL(b)
}

func normalizeIssuerURL(u string) string {
	u = strings.TrimPrefix(u, "https://")
	return strings.TrimSuffix(u, "/")
}

// equalStringSets compares two slices ignoring order.
func equalStringSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// clientIDDiff computes the client IDs to add to and remove from the
// provider so it converges on the desired list. Duplicates in the desired
// list collapse to a single add.
func clientIDDiff(current, desired []string) (toAdd, toRemove []string) {
	have := make(map[string]bool, len(current))
	for _, id := range current {
		have[id] = true
	}
	want := make(map[string]bool, len(desired))
	for _, id := range desired {
		if want[id] {
			continue
		}
		want[id] = true
		if !have[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if !want[id] {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
