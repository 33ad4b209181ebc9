package postgres

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
	"github.com/yvensrabelo/entropia-site-2-sub000/models"
	"github.com/yvensrabelo/entropia-site-2-sub000/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TeacherRepositoryImpl implements TeacherRepository for PostgreSQL
type TeacherRepositoryImpl struct {
	db *sqlx.DB
}

// NewTeacherRepository creates a new PostgreSQL teacher repository
func NewTeacherRepository(db *sqlx.DB) ports.TeacherRepository {
	return &TeacherRepositoryImpl{db: db}
}

// CreateTeacher inserts a new teacher. Numero is assigned by the sequence
// when left zero.
func (r *TeacherRepositoryImpl) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == uuid.Nil {
		teacher.ID = uuid.New()
	}
	var err error
	if teacher.Numero == 0 {
		err = r.db.GetContext(ctx, &teacher.Numero, `
			INSERT INTO professores (id, numero, nome, cpf, telefone, email, valor_hora, ativo, created_at, updated_at)
			VALUES ($1, (SELECT COALESCE(MAX(numero), 0) + 1 FROM professores), $2, $3, $4, $5, $6, $7, NOW(), NOW())
			RETURNING numero
		`, teacher.ID, teacher.Nome, teacher.CPF, teacher.Telefone, teacher.Email, teacher.ValorHora, teacher.Ativo)
	} else {
		_, err = r.db.NamedExecContext(ctx, `
			INSERT INTO professores (id, numero, nome, cpf, telefone, email, valor_hora, ativo, created_at, updated_at)
			VALUES (:id, :numero, :nome, :cpf, :telefone, :email, :valor_hora, :ativo, NOW(), NOW())
		`, teacher)
	}
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	return nil
}

// GetTeacherByID retrieves a teacher by ID
func (r *TeacherRepositoryImpl) GetTeacherByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.GetContext(ctx, &teacher, `
		SELECT id, numero, nome, cpf, telefone, email, valor_hora, ativo, created_at, updated_at
		FROM professores WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("professor")
	}
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// GetTeacherByNumero retrieves a teacher by staff code
func (r *TeacherRepositoryImpl) GetTeacherByCPF(ctx context.Context, cpf string) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.GetContext(ctx, &teacher, `
		SELECT id, numero, nome, cpf, telefone, email, valor_hora, ativo, created_at, updated_at
		FROM professores WHERE cpf = $1
	`, cpf)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("professor")
	}
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *TeacherRepositoryImpl) GetTeacherByNumero(ctx context.Context, numero int) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.GetContext(ctx, &teacher, `
		SELECT id, numero, nome, cpf, telefone, email, valor_hora, ativo, created_at, updated_at
		FROM professores WHERE numero = $1
	`, numero)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("professor")
	}
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ListTeachers returns all teachers, active first
func (r *TeacherRepositoryImpl) ListTeachers(ctx context.Context) ([]*models.Teacher, error) {
	var teachers []*models.Teacher
	err := r.db.SelectContext(ctx, &teachers, `
		SELECT id, numero, nome, cpf, telefone, email, valor_hora, ativo, created_at, updated_at
		FROM professores ORDER BY ativo DESC, nome
	`)
	if err != nil {
		return nil, err
	}
	return teachers, nil
}

// UpdateTeacher updates all mutable fields of a teacher
func (r *TeacherRepositoryImpl) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE professores SET
			numero = :numero, nome = :nome, cpf = :cpf, telefone = :telefone,
			email = :email, valor_hora = :valor_hora, ativo = :ativo, updated_at = NOW()
		WHERE id = :id
	`, teacher)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("professor")
	}
	return nil
}

// DeleteTeacher removes a teacher permanently
func (r *TeacherRepositoryImpl) DeleteTeacher(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM professores WHERE id = $1`, id)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("professor")
	}
	return nil
}
