package domain

import "context"

// ManifestRepository defines the persistence interface for manifests
type ManifestRepository interface {
	Save(ctx context.Context, manifest *Manifest) error
	FindByID(ctx context.Context, manifestID string) (*Manifest, error)
	FindByCenter(ctx context.Context, centerName string, limit int) ([]*Manifest, error)
	Delete(ctx context.Context, manifestID string) error
}
