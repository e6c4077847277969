package domain

import "context"

// PropertyClient is the read side of the listings backend.
type PropertyClient interface {
	// ListProperties returns the current user's properties. A response with
	// no "properties" field yields an empty slice and no error.
	ListProperties(ctx context.Context) ([]PropertyRecord, error)
	GetProperty(ctx context.Context, id PropertyID) (PropertyRecord, error)
}

// CredentialProvider yields the bearer token attached to backend requests.
// An empty token with a nil error means "send no Authorization header".
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// PropertyRepository backs the reference backend.
type PropertyRepository interface {
	UpsertProperty(ctx context.Context, owner string, p PropertyRecord) error
	PutSession(ctx context.Context, token, owner string) error

	OwnerForToken(ctx context.Context, token string) (string, error)
	ListByOwner(ctx context.Context, owner string) ([]PropertyRecord, error)
	// GetProperty reports ErrNotFound for ids that owner does not hold.
	GetProperty(ctx context.Context, owner string, id PropertyID) (PropertyRecord, error)
}
