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

// ClassGroupRepositoryImpl implements ClassGroupRepository for PostgreSQL
type ClassGroupRepositoryImpl struct {
	db *sqlx.DB
}

// NewClassGroupRepository creates a new PostgreSQL class group repository
func NewClassGroupRepository(db *sqlx.DB) ports.ClassGroupRepository {
	return &ClassGroupRepositoryImpl{db: db}
}

// CreateClassGroup inserts a new class group
func (r *ClassGroupRepositoryImpl) CreateClassGroup(ctx context.Context, turma *models.ClassGroup) error {
	if turma.ID == uuid.Nil {
		turma.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO turmas_sistema (id, nome, turno, serie, ativo, created_at, updated_at)
		VALUES (:id, :nome, :turno, :serie, :ativo, NOW(), NOW())
	`, turma)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	return nil
}

// GetClassGroupByID retrieves a class group by ID
func (r *ClassGroupRepositoryImpl) GetClassGroupByID(ctx context.Context, id uuid.UUID) (*models.ClassGroup, error) {
	var turma models.ClassGroup
	err := r.db.GetContext(ctx, &turma, `
		SELECT id, nome, turno, serie, ativo, created_at, updated_at
		FROM turmas_sistema WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("turma")
	}
	if err != nil {
		return nil, err
	}
	return &turma, nil
}

// GetClassGroupByName retrieves a class group by exact name
func (r *ClassGroupRepositoryImpl) GetClassGroupByName(ctx context.Context, nome string) (*models.ClassGroup, error) {
	var turma models.ClassGroup
	err := r.db.GetContext(ctx, &turma, `
		SELECT id, nome, turno, serie, ativo, created_at, updated_at
		FROM turmas_sistema WHERE nome = $1
	`, nome)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("turma")
	}
	if err != nil {
		return nil, err
	}
	return &turma, nil
}

// ListClassGroups returns all class groups
func (r *ClassGroupRepositoryImpl) ListClassGroups(ctx context.Context, onlyActive bool) ([]*models.ClassGroup, error) {
	query := `SELECT id, nome, turno, serie, ativo, created_at, updated_at FROM turmas_sistema`
	if onlyActive {
		query += ` WHERE ativo = true`
	}
	query += ` ORDER BY nome`

	var turmas []*models.ClassGroup
	if err := r.db.SelectContext(ctx, &turmas, query); err != nil {
		return nil, err
	}
	return turmas, nil
}

// UpdateClassGroup updates all mutable fields of a class group
func (r *ClassGroupRepositoryImpl) UpdateClassGroup(ctx context.Context, turma *models.ClassGroup) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE turmas_sistema SET
			nome = :nome, turno = :turno, serie = :serie, ativo = :ativo, updated_at = NOW()
		WHERE id = :id
	`, turma)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("turma")
	}
	return nil
}

// DeleteClassGroup removes a class group permanently
func (r *ClassGroupRepositoryImpl) DeleteClassGroup(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM turmas_sistema WHERE id = $1`, id)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("turma")
	}
	return nil
}

// ScheduleRepositoryImpl implements ScheduleRepository for PostgreSQL
type ScheduleRepositoryImpl struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new PostgreSQL schedule repository
func NewScheduleRepository(db *sqlx.DB) ports.ScheduleRepository {
	return &ScheduleRepositoryImpl{db: db}
}

const slotSelect = `
	SELECT h.id, h.turma_id, h.materia_id, h.professor_id, h.dia_semana, h.turno,
		h.tempo, h.hora_inicio, h.hora_fim, h.sala, h.created_at, h.updated_at,
		COALESCE(m.nome, '') AS materia_nome,
		COALESCE(p.nome, '') AS professor_nome,
		COALESCE(t.nome, '') AS turma_nome
	FROM horarios_aulas h
	LEFT JOIN materias m ON m.id = h.materia_id
	LEFT JOIN professores p ON p.id = h.professor_id
	LEFT JOIN turmas_sistema t ON t.id = h.turma_id`

// CreateSlot inserts a new schedule slot
func (r *ScheduleRepositoryImpl) CreateSlot(ctx context.Context, slot *models.ScheduleSlot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO horarios_aulas (id, turma_id, materia_id, professor_id, dia_semana,
			turno, tempo, hora_inicio, hora_fim, sala, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`, slot.ID, slot.TurmaID, slot.MateriaID, slot.ProfessorID, slot.DiaSemana,
		slot.Turno, slot.Tempo, slot.HoraInicio, slot.HoraFim, slot.Sala)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	return nil
}

// GetSlotByID retrieves a slot by ID
func (r *ScheduleRepositoryImpl) GetSlotByID(ctx context.Context, id uuid.UUID) (*models.ScheduleSlot, error) {
	var slot models.ScheduleSlot
	err := r.db.GetContext(ctx, &slot, slotSelect+` WHERE h.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("horário")
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListSlots returns slots matching the filter with joined names
func (r *ScheduleRepositoryImpl) ListSlots(ctx context.Context, filter models.ScheduleFilter) ([]*models.ScheduleSlot, error) {
	query := slotSelect + ` WHERE 1=1`
	args := []interface{}{}

	if filter.TurmaID != nil {
		args = append(args, *filter.TurmaID)
		query += fmt.Sprintf(` AND h.turma_id = $%d`, len(args))
	}
	if filter.ProfessorID != nil {
		args = append(args, *filter.ProfessorID)
		query += fmt.Sprintf(` AND h.professor_id = $%d`, len(args))
	}
	if filter.DiaSemana != "" {
		args = append(args, filter.DiaSemana)
		query += fmt.Sprintf(` AND h.dia_semana = $%d`, len(args))
	}
	if filter.Turno != "" {
		args = append(args, filter.Turno)
		query += fmt.Sprintf(` AND h.turno = $%d`, len(args))
	}
	query += ` ORDER BY h.dia_semana, h.tempo`

	var slots []*models.ScheduleSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, err
	}
	return slots, nil
}

// UpdateSlot updates all mutable fields of a slot
func (r *ScheduleRepositoryImpl) UpdateSlot(ctx context.Context, slot *models.ScheduleSlot) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE horarios_aulas SET
			turma_id = $2, materia_id = $3, professor_id = $4, dia_semana = $5,
			turno = $6, tempo = $7, hora_inicio = $8, hora_fim = $9, sala = $10,
			updated_at = NOW()
		WHERE id = $1
	`, slot.ID, slot.TurmaID, slot.MateriaID, slot.ProfessorID, slot.DiaSemana,
		slot.Turno, slot.Tempo, slot.HoraInicio, slot.HoraFim, slot.Sala)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("horário")
	}
	return nil
}

// DeleteSlot removes a slot permanently
func (r *ScheduleRepositoryImpl) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM horarios_aulas WHERE id = $1`, id)
	if err != nil {
		return apperrors.TranslatePG(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("horário")
	}
	return nil
}

// ReplaceClassGroupSlots atomically swaps a class group's week for the given
// slots. The delete and inserts share one transaction so a failed import
// never leaves a half-replaced week.
func (r *ScheduleRepositoryImpl) ReplaceClassGroupSlots(ctx context.Context, turmaID uuid.UUID, slots []*models.ScheduleSlot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM horarios_aulas WHERE turma_id = $1`, turmaID); err != nil {
		return apperrors.TranslatePG(err)
	}
	for _, slot := range slots {
		if slot.ID == uuid.Nil {
			slot.ID = uuid.New()
		}
		slot.TurmaID = turmaID
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO horarios_aulas (id, turma_id, materia_id, professor_id, dia_semana,
				turno, tempo, hora_inicio, hora_fim, sala, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		`, slot.ID, slot.TurmaID, slot.MateriaID, slot.ProfessorID, slot.DiaSemana,
			slot.Turno, slot.Tempo, slot.HoraInicio, slot.HoraFim, slot.Sala); err != nil {
			return apperrors.TranslatePG(err)
		}
	}
	return tx.Commit()
}

// GetOrCreateSubject returns the materias row for a name, creating it on
// first sight
func (r *ScheduleRepositoryImpl) GetOrCreateSubject(ctx context.Context, nome string) (*models.Subject, error) {
	var subject models.Subject
	err := r.db.GetContext(ctx, &subject, `SELECT id, nome FROM materias WHERE nome = $1`, nome)
	if err == nil {
		return &subject, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	subject = models.Subject{ID: uuid.New(), Nome: nome}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO materias (id, nome) VALUES ($1, $2)`, subject.ID, subject.Nome)
	if err != nil {
		// Lost a race with a concurrent import; read the winner.
		if apperrors.IsDuplicate(err) {
			if getErr := r.db.GetContext(ctx, &subject, `SELECT id, nome FROM materias WHERE nome = $1`, nome); getErr == nil {
				return &subject, nil
			}
		}
		return nil, apperrors.TranslatePG(err)
	}
	return &subject, nil
}
