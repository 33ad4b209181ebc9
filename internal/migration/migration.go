package migration

import (
	"context"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createClassGroupsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create turmas_sistema table")
	}

	if err := r.createStudentsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create alunos table")
	}

	if err := r.createTeachersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create professores table")
	}

	if err := r.createSubjectsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create materias table")
	}

	if err := r.createScheduleTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create horarios_aulas table")
	}

	if err := r.createTopicsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create topicos table")
	}

	if err := r.createDescriptorsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create descritores table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createClassGroupsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS turmas_sistema (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			nome VARCHAR(100) UNIQUE NOT NULL,
			turno VARCHAR(20) NOT NULL,
			serie VARCHAR(50) DEFAULT '',
			ativo BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createStudentsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS alunos (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			nome VARCHAR(255) NOT NULL,
			cpf VARCHAR(11) UNIQUE NOT NULL,
			data_nascimento DATE,
			telefone VARCHAR(20) DEFAULT '',
			email VARCHAR(255) DEFAULT '',
			endereco VARCHAR(255) DEFAULT '',
			bairro VARCHAR(100) DEFAULT '',
			cidade VARCHAR(100) DEFAULT '',
			estado VARCHAR(2) DEFAULT '',
			cep VARCHAR(10) DEFAULT '',
			nome_responsavel VARCHAR(255) DEFAULT '',
			telefone_responsavel VARCHAR(20) DEFAULT '',
			turma_id UUID REFERENCES turmas_sistema(id) ON DELETE SET NULL,
			ativo BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createTeachersTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS professores (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			numero INTEGER UNIQUE NOT NULL,
			nome VARCHAR(255) NOT NULL,
			cpf VARCHAR(11) UNIQUE NOT NULL,
			telefone VARCHAR(20) DEFAULT '',
			email VARCHAR(255) DEFAULT '',
			valor_hora DECIMAL(10,2) DEFAULT 0,
			ativo BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createSubjectsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS materias (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			nome VARCHAR(100) UNIQUE NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createScheduleTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS horarios_aulas (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			turma_id UUID NOT NULL REFERENCES turmas_sistema(id) ON DELETE CASCADE,
			materia_id UUID REFERENCES materias(id) ON DELETE SET NULL,
			professor_id UUID REFERENCES professores(id) ON DELETE SET NULL,
			dia_semana VARCHAR(10) NOT NULL,
			turno VARCHAR(10) NOT NULL,
			tempo INTEGER NOT NULL,
			hora_inicio VARCHAR(5) NOT NULL,
			hora_fim VARCHAR(5) NOT NULL,
			sala VARCHAR(50) DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createTopicsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS topicos (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			materia_id UUID NOT NULL REFERENCES materias(id) ON DELETE CASCADE,
			nome VARCHAR(255) NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createDescriptorsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS descritores (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			horario_id UUID NOT NULL REFERENCES horarios_aulas(id) ON DELETE CASCADE,
			professor_id UUID NOT NULL REFERENCES professores(id) ON DELETE CASCADE,
			data DATE NOT NULL,
			topico_id UUID REFERENCES topicos(id) ON DELETE SET NULL,
			descricao TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (horario_id, data)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_alunos_cpf ON alunos(cpf)`,
		`CREATE INDEX IF NOT EXISTS idx_alunos_turma ON alunos(turma_id)`,
		`CREATE INDEX IF NOT EXISTS idx_alunos_nome ON alunos(LOWER(nome))`,
		`CREATE INDEX IF NOT EXISTS idx_horarios_turma ON horarios_aulas(turma_id)`,
		`CREATE INDEX IF NOT EXISTS idx_horarios_professor ON horarios_aulas(professor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_descritores_data ON descritores(data)`,
		`CREATE INDEX IF NOT EXISTS idx_descritores_professor ON descritores(professor_id)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
