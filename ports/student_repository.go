package ports

import (
	"context"

	"github.com/yvensrabelo/entropia-site-2-sub000/models"

	"github.com/google/uuid"
)

// StudentRepository defines the interface for student data operations
type StudentRepository interface {
	// CreateStudent inserts a new student
	CreateStudent(ctx context.Context, student *models.Student) error

	// GetStudentByID retrieves a student by ID
	GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error)

	// GetStudentByCPF retrieves a student by bare-digit CPF
	GetStudentByCPF(ctx context.Context, cpf string) (*models.Student, error)

	// ListStudents returns students matching the filter
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error)

	// UpdateStudent updates all mutable fields of a student
	UpdateStudent(ctx context.Context, student *models.Student) error

	// DeleteStudent removes a student permanently
	DeleteStudent(ctx context.Context, id uuid.UUID) error

	// ExistingCPFs returns which of the given CPFs are already registered
	ExistingCPFs(ctx context.Context, cpfs []string) (map[string]bool, error)
}
