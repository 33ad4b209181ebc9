package models

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a row of the topicos table, the syllabus unit a descriptor points
// at.
type Topic struct {
	ID        uuid.UUID `json:"id" db:"id"`
	MateriaID uuid.UUID `json:"materia_id" db:"materia_id"`
	Nome      string    `json:"nome" db:"nome"`
}

// Descriptor is a row of the descritores table: what a teacher actually
// taught in one schedule slot on one date.
type Descriptor struct {
	ID          uuid.UUID `json:"id" db:"id"`
	HorarioID   uuid.UUID `json:"horario_id" db:"horario_id"`
	ProfessorID uuid.UUID `json:"professor_id" db:"professor_id"`
	Data        time.Time `json:"data" db:"data"`
	TopicoID    *uuid.UUID `json:"topico_id,omitempty" db:"topico_id"`
	Descricao   string    `json:"descricao" db:"descricao"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Joined columns for the admin listing and the report.
	ProfessorNome string `json:"professor_nome,omitempty" db:"professor_nome"`
	MateriaNome   string `json:"materia_nome,omitempty" db:"materia_nome"`
	TurmaNome     string `json:"turma_nome,omitempty" db:"turma_nome"`
	TopicoNome    string `json:"topico_nome,omitempty" db:"topico_nome"`
	Tempo         int    `json:"tempo,omitempty" db:"tempo"`
	DiaSemana     string `json:"dia_semana,omitempty" db:"dia_semana"`
}

// DescriptorFilter narrows ListDescriptors. Data bounds are inclusive.
type DescriptorFilter struct {
	TurmaID     *uuid.UUID
	ProfessorID *uuid.UUID
	DataInicio  *time.Time
	DataFim     *time.Time
}
