package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
	"github.com/yvensrabelo/entropia-site-2-sub000/models"
	"github.com/yvensrabelo/entropia-site-2-sub000/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DescriptorRepositoryImpl implements DescriptorRepository for PostgreSQL
type DescriptorRepositoryImpl struct {
	db *sqlx.DB
}

// NewDescriptorRepository creates a new PostgreSQL descriptor repository
func NewDescriptorRepository(db *sqlx.DB) ports.DescriptorRepository {
	return &DescriptorRepositoryImpl{db: db}
}

const descriptorSelect = `
	SELECT d.id, d.horario_id, d.professor_id, d.data, d.topico_id, d.descricao,
		d.created_at, d.updated_at,
		COALESCE(p.nome, '') AS professor_nome,
		COALESCE(m.nome, '') AS materia_nome,
		COALESCE(t.nome, '') AS turma_nome,
		COALESCE(tp.nome, '') AS topico_nome,
		h.tempo, h.dia_semana
	FROM descritores d
	JOIN horarios_aulas h ON h.id = d.horario_id
	LEFT JOIN professores p ON p.id = d.professor_id
	LEFT JOIN materias m ON m.id = h.materia_id
	LEFT JOIN turmas_sistema t ON t.id = h.turma_id
	LEFT JOIN topicos tp ON tp.id = d.topico_id`

// UpsertDescriptor inserts or replaces the descriptor for a (horario, data)
// pair. Teachers correct their own entries by resubmitting.
func (r *DescriptorRepositoryImpl) UpsertDescriptor(ctx context.Context, d *models.Descriptor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO descritores (id, horario_id, professor_id, data, topico_id, descricao, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (horario_id, data) DO UPDATE SET
			professor_id = EXCLUDED.professor_id,
			topico_id = EXCLUDED.topico_id,
			descricao = EXCLUDED.descricao,
			updated_at = NOW()
	`, d.ID, d.HorarioID, d.ProfessorID, d.Data, d.TopicoID, d.Descricao)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	return nil
}

// GetDescriptorByID retrieves a descriptor by ID
func (r *DescriptorRepositoryImpl) GetDescriptorByID(ctx context.Context, id uuid.UUID) (*models.Descriptor, error) {
	var d models.Descriptor
	err := r.db.GetContext(ctx, &d, descriptorSelect+` WHERE d.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("descritor")
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDescriptors returns descriptors matching the filter with joined names
func (r *DescriptorRepositoryImpl) ListDescriptors(ctx context.Context, filter models.DescriptorFilter) ([]*models.Descriptor, error) {
	query := descriptorSelect + ` WHERE 1=1`
	args := []interface{}{}

	if filter.TurmaID != nil {
		args = append(args, *filter.TurmaID)
		query += fmt.Sprintf(` AND h.turma_id = $%d`, len(args))
	}
	if filter.ProfessorID != nil {
		args = append(args, *filter.ProfessorID)
		query += fmt.Sprintf(` AND d.professor_id = $%d`, len(args))
	}
	if filter.DataInicio != nil {
		args = append(args, *filter.DataInicio)
		query += fmt.Sprintf(` AND d.data >= $%d`, len(args))
	}
	if filter.DataFim != nil {
		args = append(args, *filter.DataFim)
		query += fmt.Sprintf(` AND d.data <= $%d`, len(args))
	}
	query += ` ORDER BY d.data DESC, h.tempo`

	var descriptors []*models.Descriptor
	if err := r.db.SelectContext(ctx, &descriptors, query, args...); err != nil {
		return nil, err
	}
	return descriptors, nil
}

// DeleteDescriptor removes a descriptor permanently
func (r *DescriptorRepositoryImpl) DeleteDescriptor(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM descritores WHERE id = $1`, id)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("descritor")
	}
	return nil
}

// CreateTopic inserts a syllabus topic for a subject
func (r *DescriptorRepositoryImpl) CreateTopic(ctx context.Context, topic *models.Topic) error {
	if topic.ID == uuid.Nil {
		topic.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO topicos (id, materia_id, nome) VALUES ($1, $2, $3)
	`, topic.ID, topic.MateriaID, topic.Nome)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	return nil
}

// ListTopics returns the syllabus topics for a subject
func (r *DescriptorRepositoryImpl) ListTopics(ctx context.Context, materiaID uuid.UUID) ([]*models.Topic, error) {
	var topics []*models.Topic
	err := r.db.SelectContext(ctx, &topics, `
		SELECT id, materia_id, nome FROM topicos WHERE materia_id = $1 ORDER BY nome
	`, materiaID)
	if err != nil {
		return nil, err
	}
	return topics, nil
}
