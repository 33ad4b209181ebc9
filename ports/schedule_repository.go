package ports

import (
	"context"

	"github.com/yvensrabelo/entropia-site-2-sub000/models"

	"github.com/google/uuid"
)

// ClassGroupRepository defines the interface for class group data operations
type ClassGroupRepository interface {
	// CreateClassGroup inserts a new class group
	CreateClassGroup(ctx context.Context, turma *models.ClassGroup) error

	// GetClassGroupByID retrieves a class group by ID
	GetClassGroupByID(ctx context.Context, id uuid.UUID) (*models.ClassGroup, error)

	// GetClassGroupByName retrieves a class group by exact name
	GetClassGroupByName(ctx context.Context, nome string) (*models.ClassGroup, error)

	// ListClassGroups returns all class groups
	ListClassGroups(ctx context.Context, onlyActive bool) ([]*models.ClassGroup, error)

	// UpdateClassGroup updates all mutable fields of a class group
	UpdateClassGroup(ctx context.Context, turma *models.ClassGroup) error

	// DeleteClassGroup removes a class group permanently
	DeleteClassGroup(ctx context.Context, id uuid.UUID) error
}

// ScheduleRepository defines the interface for schedule slot operations
type ScheduleRepository interface {
	// CreateSlot inserts a new schedule slot
	CreateSlot(ctx context.Context, slot *models.ScheduleSlot) error

	// GetSlotByID retrieves a slot by ID
	GetSlotByID(ctx context.Context, id uuid.UUID) (*models.ScheduleSlot, error)

	// ListSlots returns slots matching the filter with joined names
	ListSlots(ctx context.Context, filter models.ScheduleFilter) ([]*models.ScheduleSlot, error)

	// UpdateSlot updates all mutable fields of a slot
	UpdateSlot(ctx context.Context, slot *models.ScheduleSlot) error

	// DeleteSlot removes a slot permanently
	DeleteSlot(ctx context.Context, id uuid.UUID) error

	// ReplaceClassGroupSlots atomically swaps a class group's week for the
	// given slots, as the schedule importer requires
	ReplaceClassGroupSlots(ctx context.Context, turmaID uuid.UUID, slots []*models.ScheduleSlot) error

	// GetOrCreateSubject returns the materias row for a name, creating it
	// on first sight
	GetOrCreateSubject(ctx context.Context, nome string) (*models.Subject, error)
}
