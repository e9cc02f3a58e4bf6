package secrets

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// Prefix marks a config value that names a Secret Manager secret instead of
// holding the secret itself.
const Prefix = "sm://"

type versionAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// Resolver replaces sm:// references with the latest secret version.
type Resolver struct {
	client    versionAccessor
	projectID string
	closeFn   func() error
}

// NewResolver creates a Secret Manager backed resolver for projectID.
func NewResolver(ctx context.Context, projectID string, opts ...option.ClientOption) (*Resolver, error) {
	if projectID == "" {
		return nil, fmt.Errorf("GCP project ID is required to resolve secrets")
	}
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &Resolver{client: client, projectID: projectID, closeFn: client.Close}, nil
}

// IsReference reports whether value is an sm:// reference.
func IsReference(value string) bool {
	return strings.HasPrefix(value, Prefix)
}

// Resolve returns value unchanged unless it is an sm:// reference, in which
// case the latest version of the named secret is returned.
func (r *Resolver) Resolve(ctx context.Context, value string) (string, error) {
	if !IsReference(value) {
		return value, nil
	}
	name := strings.TrimPrefix(value, Prefix)
	if name == "" {
		return "", fmt.Errorf("empty secret reference")
	}
	path := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", r.projectID, name)
	resp, err := r.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: path})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", name, err)
	}
	return string(resp.GetPayload().GetData()), nil
}

// ResolveAll resolves every pointer in place, stopping at the first failure.
func (r *Resolver) ResolveAll(ctx context.Context, values ...*string) error {
	for _, v := range values {
		resolved, err := r.Resolve(ctx, *v)
		if err != nil {
			return err
		}
		*v = resolved
	}
	return nil
}

func (r *Resolver) Close() error {
	if r.closeFn == nil {
		return nil
	}
	return r.closeFn()
}
