package oidc

import (
	"strings"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProviderURL(t *testing.T) {
	tests := []struct {
		name    string
		url     *string
		wantErr bool
	}{
		{
			name: "valid issuer URL",
			url:  jsii.String("https://oidc.eks.us-east-1.amazonaws.com/id/EXAMPLED539D4633E53DE1B71EXAMPLE"),
		},
		{
			name:    "nil URL",
			url:     nil,
			wantErr: true,
		},
		{
			name:    "empty URL",
			url:     jsii.String(""),
			wantErr: true,
		},
		{
			name:    "http scheme",
			url:     jsii.String("http://oidc.example.com"),
			wantErr: true,
		},
		{
			name:    "missing scheme",
			url:     jsii.String("oidc.example.com"),
			wantErr: true,
		},
		{
			name:    "query parameters",
			url:     jsii.String("https://oidc.example.com/path?audience=sts"),
			wantErr: true,
		},
		{
			name:    "over length limit",
			url:     jsii.String("https://" + strings.Repeat("a", MaxURLLength)),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProviderURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsCategory(err, ErrCategoryValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateProviderURLPassesTokens(t *testing.T) {
	// Deploy-time tokens have no inspectable value, so the rules cannot
	// apply until deployment.
	token := awscdk.Aws_ACCOUNT_ID()
	require.NotNil(t, token)

	assert.NoError(t, ValidateProviderURL(token))
}

func TestValidateIssuerURL(t *testing.T) {
	assert.NoError(t, ValidateIssuerURL("https://token.actions.githubusercontent.com"))
	assert.Error(t, ValidateIssuerURL("ftp://example.com"))
	assert.Error(t, ValidateIssuerURL("https://example.com?q=1"))
}

func TestValidateProviderARN(t *testing.T) {
	tests := []struct {
		name    string
		arn     *string
		wantErr bool
	}{
		{
			name: "valid ARN",
			arn:  jsii.String("arn:aws:iam::123456789012:oidc-provider/oidc.eks.us-east-1.amazonaws.com/id/EXAMPLE"),
		},
		{
			name: "china partition",
			arn:  jsii.String("arn:aws-cn:iam::123456789012:oidc-provider/oidc.example.com"),
		},
		{
			name:    "nil ARN",
			arn:     nil,
			wantErr: true,
		},
		{
			name:    "not an ARN",
			arn:     jsii.String("oidc.example.com"),
			wantErr: true,
		},
		{
			name:    "wrong service",
			arn:     jsii.String("arn:aws:s3::123456789012:oidc-provider/oidc.example.com"),
			wantErr: true,
		},
		{
			name:    "missing account",
			arn:     jsii.String("arn:aws:iam:::oidc-provider/oidc.example.com"),
			wantErr: true,
		},
		{
			name:    "missing provider path",
			arn:     jsii.String("arn:aws:iam::123456789012:oidc-provider/"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProviderARN(tt.arn)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsCategory(err, ErrCategoryValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateThumbprints(t *testing.T) {
	valid := "a9d53002e97e00e043244f3d170d6f4c414104fd"

	tests := []struct {
		name        string
		thumbprints []string
		wantErr     bool
	}{
		{
			name:        "empty list",
			thumbprints: nil,
		},
		{
			name:        "single valid thumbprint",
			thumbprints: []string{valid},
		},
		{
			name:        "uppercase hex",
			thumbprints: []string{strings.ToUpper(valid)},
		},
		{
			name:        "too short",
			thumbprints: []string{"abc123"},
			wantErr:     true,
		},
		{
			name:        "non-hex characters",
			thumbprints: []string{strings.Repeat("z", ThumbprintLength)},
			wantErr:     true,
		},
		{
			name:        "too many thumbprints",
			thumbprints: []string{valid, valid, valid, valid, valid, valid},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThumbprints(tt.thumbprints)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsCategory(err, ErrCategoryValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateClientIDs(t *testing.T) {
	assert.NoError(t, ValidateClientIDs(nil))
	assert.NoError(t, ValidateClientIDs([]string{StsAudience}))
	assert.Error(t, ValidateClientIDs([]string{""}))
	assert.Error(t, ValidateClientIDs([]string{strings.Repeat("a", MaxClientIDLength+1)}))
}
