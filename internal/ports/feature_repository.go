package ports

import (
	"context"

	"arbor/internal/domain"
)

// FeatureReader reads feature records
type FeatureReader interface {
	Get(ctx context.Context, name string) (*domain.Feature, error)
	List(ctx context.Context) ([]domain.Feature, error)
}

// FeatureWriter creates, updates, and deletes feature records
type FeatureWriter interface {
	Add(ctx context.Context, feature domain.Feature) error
	UpdateStatus(ctx context.Context, name, status string) error
	Delete(ctx context.Context, name string) error
}

// FeatureRepository is the composite interface
type FeatureRepository interface {
	FeatureReader
	FeatureWriter
	Close() error
}
