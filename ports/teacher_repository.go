package ports

import (
	"context"

	"github.com/yvensrabelo/entropia-site-2-sub000/models"

	"github.com/google/uuid"
)

// TeacherRepository defines the interface for teacher data operations
type TeacherRepository interface {
	// CreateTeacher inserts a new teacher
	CreateTeacher(ctx context.Context, teacher *models.Teacher) error

	// GetTeacherByID retrieves a teacher by ID
	GetTeacherByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error)

	// GetTeacherByCPF retrieves a teacher by bare-digit CPF
	GetTeacherByCPF(ctx context.Context, cpf string) (*models.Teacher, error)

	// GetTeacherByNumero retrieves a teacher by staff code
	GetTeacherByNumero(ctx context.Context, numero int) (*models.Teacher, error)

	// ListTeachers returns all teachers, active first
	ListTeachers(ctx context.Context) ([]*models.Teacher, error)

	// UpdateTeacher updates all mutable fields of a teacher
	UpdateTeacher(ctx context.Context, teacher *models.Teacher) error

	// DeleteTeacher removes a teacher permanently
	DeleteTeacher(ctx context.Context, id uuid.UUID) error
}
