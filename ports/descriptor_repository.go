package ports

import (
	"context"

	"github.com/yvensrabelo/entropia-site-2-sub000/models"

	"github.com/google/uuid"
)

// DescriptorRepository defines the interface for lesson descriptor operations
type DescriptorRepository interface {
	// UpsertDescriptor inserts or replaces the descriptor for a
	// (horario, data) pair
	UpsertDescriptor(ctx context.Context, d *models.Descriptor) error

	// GetDescriptorByID retrieves a descriptor by ID
	GetDescriptorByID(ctx context.Context, id uuid.UUID) (*models.Descriptor, error)

	// ListDescriptors returns descriptors matching the filter with joined
	// teacher, subject and class group names
	ListDescriptors(ctx context.Context, filter models.DescriptorFilter) ([]*models.Descriptor, error)

	// DeleteDescriptor removes a descriptor permanently
	DeleteDescriptor(ctx context.Context, id uuid.UUID) error

	// CreateTopic inserts a syllabus topic for a subject
	CreateTopic(ctx context.Context, topic *models.Topic) error

	// ListTopics returns the syllabus topics for a subject
	ListTopics(ctx context.Context, materiaID uuid.UUID) ([]*models.Topic, error)
}
