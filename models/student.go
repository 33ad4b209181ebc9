package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is a row of the alunos table. CPF is stored bare (digits only) and
// unique; the formatted rendering happens at the edges.
type Student struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Nome           string     `json:"nome" db:"nome"`
	CPF            string     `json:"cpf" db:"cpf"`
	DataNascimento *time.Time `json:"data_nascimento,omitempty" db:"data_nascimento"`
	Telefone       string     `json:"telefone" db:"telefone"`
	Email          string     `json:"email" db:"email"`
	Endereco       string     `json:"endereco" db:"endereco"`
	Bairro         string     `json:"bairro" db:"bairro"`
	Cidade         string     `json:"cidade" db:"cidade"`
	Estado         string     `json:"estado" db:"estado"`
	CEP            string     `json:"cep" db:"cep"`

	// Guardian fields, required when the student is a minor.
	NomeResponsavel     string `json:"nome_responsavel" db:"nome_responsavel"`
	TelefoneResponsavel string `json:"telefone_responsavel" db:"telefone_responsavel"`

	TurmaID   *uuid.UUID `json:"turma_id,omitempty" db:"turma_id"`
	Ativo     bool       `json:"ativo" db:"ativo"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// StudentFilter narrows ListStudents. Zero values mean no restriction.
type StudentFilter struct {
	Busca   string
	TurmaID *uuid.UUID
	Ativo   *bool
	Limit   int
	Offset  int
}
