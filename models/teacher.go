package models

import (
	"time"

	"github.com/google/uuid"
)

// Teacher is a row of the professores table. Numero is the short staff code
// used by the schedule importer to link slots to teachers.
type Teacher struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Numero    int       `json:"numero" db:"numero"`
	Nome      string    `json:"nome" db:"nome"`
	CPF       string    `json:"cpf" db:"cpf"`
	Telefone  string    `json:"telefone" db:"telefone"`
	Email     string    `json:"email" db:"email"`
	ValorHora float64   `json:"valor_hora" db:"valor_hora"`
	Ativo     bool      `json:"ativo" db:"ativo"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
