package models

import (
	"time"

	"github.com/google/uuid"
)

// ClassGroup is a row of the turmas_sistema table.
type ClassGroup struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Nome      string    `json:"nome" db:"nome"`
	Turno     string    `json:"turno" db:"turno"`
	Serie     string    `json:"serie" db:"serie"`
	Ativo     bool      `json:"ativo" db:"ativo"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Subject is a row of the materias table.
type Subject struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Nome string    `json:"nome" db:"nome"`
}

// ScheduleSlot is a row of the horarios_aulas table. Tempo is the 1-based
// period within the shift; HoraInicio and HoraFim are HH:MM strings.
type ScheduleSlot struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	TurmaID      uuid.UUID  `json:"turma_id" db:"turma_id"`
	MateriaID    *uuid.UUID `json:"materia_id,omitempty" db:"materia_id"`
	ProfessorID  *uuid.UUID `json:"professor_id,omitempty" db:"professor_id"`
	DiaSemana    string     `json:"dia_semana" db:"dia_semana"`
	Turno        string     `json:"turno" db:"turno"`
	Tempo        int        `json:"tempo" db:"tempo"`
	HoraInicio   string     `json:"hora_inicio" db:"hora_inicio"`
	HoraFim      string     `json:"hora_fim" db:"hora_fim"`
	Sala         string     `json:"sala" db:"sala"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`

	// Joined columns, populated by list queries.
	MateriaNome   string `json:"materia_nome,omitempty" db:"materia_nome"`
	ProfessorNome string `json:"professor_nome,omitempty" db:"professor_nome"`
	TurmaNome     string `json:"turma_nome,omitempty" db:"turma_nome"`
}

// ScheduleFilter narrows ListSlots.
type ScheduleFilter struct {
	TurmaID     *uuid.UUID
	ProfessorID *uuid.UUID
	DiaSemana   string
	Turno       string
}
