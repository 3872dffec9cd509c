package oidc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
)

// Validation rules for provider configuration fields.

var (
	thumbprintRegex = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)
	arnRegex        = regexp.MustCompile(`^arn:[a-zA-Z-]+:iam::\d{12}:oidc-provider\/.+$`)
)

// isUnresolved reports whether a string is a deploy-time token.
func isUnresolved(value string) bool {
	u := awscdk.Token_IsUnresolved(value)
	return u != nil && *u
}

// ValidateProviderURL validates an issuer URL at construct time: https
// scheme, no query parameters, within the IAM length limit. Unresolved
// tokens pass; their value is only known at deploy time.
func ValidateProviderURL(url *string) error {
	if url == nil || *url == "" {
		return ErrValidation("provider URL is required")
	}
	if isUnresolved(*url) {
		return nil
	}
	return ValidateIssuerURL(*url)
}

// ValidateIssuerURL validates a concrete issuer URL string. Unlike
// ValidateProviderURL it never consults the token system, so it is safe in
// runtime contexts such as the custom-resource handler.
func ValidateIssuerURL(url string) error {
	if !strings.HasPrefix(url, "https://") {
		return ErrValidation(fmt.Sprintf("provider URL must begin with https://: %s", url)).
			WithDetail("url", url)
	}
	if strings.Contains(url, "?") {
		return ErrValidation(fmt.Sprintf("provider URL must not contain query parameters: %s", url)).
			WithDetail("url", url)
	}
	if len(url) > MaxURLLength {
		return ErrValidation(fmt.Sprintf("provider URL exceeds %d characters", MaxURLLength)).
			WithDetail("length", len(url))
	}
	return nil
}

// ValidateProviderARN validates the shape of an IAM OIDC provider ARN.
func ValidateProviderARN(arn *string) error {
	if arn == nil || *arn == "" {
		return ErrValidation("provider ARN is required")
	}
	if isUnresolved(*arn) {
		return nil
	}
	if !arnRegex.MatchString(*arn) {
		return ErrValidation(fmt.Sprintf("invalid OIDC provider ARN format: %s", *arn)).
			WithDetail("arn", *arn)
	}
	return nil
}

// ValidateThumbprints validates a server certificate thumbprint list.
func ValidateThumbprints(thumbprints []string) error {
	if len(thumbprints) > MaxThumbprints {
		return ErrValidation(fmt.Sprintf("at most %d thumbprints are allowed, got %d", MaxThumbprints, len(thumbprints)))
	}
	for _, tp := range thumbprints {
		if !thumbprintRegex.MatchString(tp) {
			return ErrValidation(fmt.Sprintf("thumbprint must be %d hex characters: %q", ThumbprintLength, tp)).
				WithDetail("thumbprint", tp)
		}
	}
	return nil
}

// ValidateClientIDs validates a client ID (audience) list.
func ValidateClientIDs(clientIDs []string) error {
	for _, id := range clientIDs {
		if id == "" {
			return ErrValidation("client IDs must not be empty")
		}
		if len(id) > MaxClientIDLength {
			return ErrValidation(fmt.Sprintf("client ID exceeds %d characters: %s", MaxClientIDLength, id)).
				WithDetail("client_id", id)
		}
	}
	return nil
}
