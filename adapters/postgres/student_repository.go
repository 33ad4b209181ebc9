package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
	"github.com/yvensrabelo/entropia-site-2-sub000/models"
	"github.com/yvensrabelo/entropia-site-2-sub000/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// StudentRepositoryImpl implements StudentRepository for PostgreSQL
type StudentRepositoryImpl struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new PostgreSQL student repository
func NewStudentRepository(db *sqlx.DB) ports.StudentRepository {
	return &StudentRepositoryImpl{db: db}
}

const studentColumns = `id, nome, cpf, data_nascimento, telefone, email, endereco, bairro,
	cidade, estado, cep, nome_responsavel, telefone_responsavel, turma_id, ativo,
	created_at, updated_at`

// CreateStudent inserts a new student
func (r *StudentRepositoryImpl) CreateStudent(ctx context.Context, student *models.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO alunos (id, nome, cpf, data_nascimento, telefone, email, endereco,
			bairro, cidade, estado, cep, nome_responsavel, telefone_responsavel,
			turma_id, ativo, created_at, updated_at)
		VALUES (:id, :nome, :cpf, :data_nascimento, :telefone, :email, :endereco,
			:bairro, :cidade, :estado, :cep, :nome_responsavel, :telefone_responsavel,
			:turma_id, :ativo, NOW(), NOW())
	`, student)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	return nil
}

// GetStudentByID retrieves a student by ID
func (r *StudentRepositoryImpl) GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	var student models.Student
	err := r.db.GetContext(ctx, &student,
		fmt.Sprintf(`SELECT %s FROM alunos WHERE id = $1`, studentColumns), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("aluno")
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetStudentByCPF retrieves a student by bare-digit CPF
func (r *StudentRepositoryImpl) GetStudentByCPF(ctx context.Context, cpf string) (*models.Student, error) {
	var student models.Student
	err := r.db.GetContext(ctx, &student,
		fmt.Sprintf(`SELECT %s FROM alunos WHERE cpf = $1`, studentColumns), cpf)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("aluno")
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// ListStudents returns students matching the filter
func (r *StudentRepositoryImpl) ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM alunos WHERE 1=1`, studentColumns)
	args := []interface{}{}

	if filter.Busca != "" {
		args = append(args, "%"+strings.ToLower(filter.Busca)+"%")
		query += fmt.Sprintf(` AND (LOWER(nome) LIKE $%d OR cpf LIKE $%d)`, len(args), len(args))
	}
	if filter.TurmaID != nil {
		args = append(args, *filter.TurmaID)
		query += fmt.Sprintf(` AND turma_id = $%d`, len(args))
	}
	if filter.Ativo != nil {
		args = append(args, *filter.Ativo)
		query += fmt.Sprintf(` AND ativo = $%d`, len(args))
	}
	query += ` ORDER BY nome`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	var students []*models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, err
	}
	return students, nil
}

// UpdateStudent updates all mutable fields of a student
func (r *StudentRepositoryImpl) UpdateStudent(ctx context.Context, student *models.Student) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE alunos SET
			nome = :nome, cpf = :cpf, data_nascimento = :data_nascimento,
			telefone = :telefone, email = :email, endereco = :endereco,
			bairro = :bairro, cidade = :cidade, estado = :estado, cep = :cep,
			nome_responsavel = :nome_responsavel,
			telefone_responsavel = :telefone_responsavel,
			turma_id = :turma_id, ativo = :ativo, updated_at = NOW()
		WHERE id = :id
	`, student)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("aluno")
	}
	return nil
}

// DeleteStudent removes a student permanently
func (r *StudentRepositoryImpl) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM alunos WHERE id = $1`, id)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("aluno")
	}
	return nil
}

// ExistingCPFs returns which of the given CPFs are already registered
func (r *StudentRepositoryImpl) ExistingCPFs(ctx context.Context, cpfs []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(cpfs) == 0 {
		return existing, nil
	}
	query, args, err := sqlx.In(`SELECT cpf FROM alunos WHERE cpf IN (?)`, cpfs)
	if err != nil {
		return nil, err
	}
	var found []string
	if err := r.db.SelectContext(ctx, &found, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, cpf := range found {
		existing[cpf] = true
	}
	return existing, nil
}
