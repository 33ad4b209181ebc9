package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal/validation"
)

// StudentRecord is one normalized row of a student spreadsheet, every field
// already trimmed and cleaned.
type StudentRecord struct {
	Nome                string
	CPF                 string
	DataNascimento      string // DD/MM/YYYY
	Telefone            string
	Email               string
	Endereco            string
	Bairro              string
	Cidade              string
	Estado              string
	CEP                 string
	NomeResponsavel     string
	TelefoneResponsavel string
	Turma               string
}

// RowResult is the outcome of parsing one spreadsheet row. A row either
// yields a record or a list of field errors, never a half-valid record.
// Warnings may accompany a valid record.
type RowResult struct {
	Line     int
	Record   *StudentRecord
	Errors   []string
	Warnings []string
}

// Ok reports whether the row produced a usable record.
func (r RowResult) Ok() bool {
	return len(r.Errors) == 0 && r.Record != nil
}

// headerSynonyms maps the Portuguese column headings seen in real upload
// files to canonical field names. Matching is case-insensitive on the
// normalized heading.
var headerSynonyms = map[string]string{
	"nome":                  "nome",
	"nome completo":         "nome",
	"nome do aluno":         "nome",
	"aluno":                 "nome",
	"cpf":                   "cpf",
	"cpf do aluno":          "cpf",
	"data de nascimento":    "data_nascimento",
	"data nascimento":       "data_nascimento",
	"nascimento":            "data_nascimento",
	"telefone":              "telefone",
	"celular":               "telefone",
	"whatsapp":              "telefone",
	"fone":                  "telefone",
	"email":                 "email",
	"e-mail":                "email",
	"endereco":              "endereco",
	"endereço":              "endereco",
	"logradouro":            "endereco",
	"bairro":                "bairro",
	"cidade":                "cidade",
	"municipio":             "cidade",
	"município":             "cidade",
	"estado":                "estado",
	"uf":                    "estado",
	"cep":                   "cep",
	"responsavel":           "nome_responsavel",
	"responsável":           "nome_responsavel",
	"nome do responsavel":   "nome_responsavel",
	"nome do responsável":   "nome_responsavel",
	"telefone responsavel":  "telefone_responsavel",
	"telefone responsável":  "telefone_responsavel",
	"telefone do responsavel": "telefone_responsavel",
	"celular responsavel":   "telefone_responsavel",
	"turma":                 "turma",
	"turma desejada":        "turma",
}

// MapHeaders resolves a header row to canonical field names. Unknown
// headings map to "" and their columns are ignored.
func MapHeaders(header []string) []string {
	canonical := make([]string, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		canonical[i] = headerSynonyms[key]
	}
	return canonical
}

const (
	minStudentAge = 12
	maxStudentAge = 25
	adultAge      = 18
)

// ParseStudentRow validates one data row against the canonical header
// mapping. line is the 1-based spreadsheet line for error messages; now
// anchors the age checks.
func ParseStudentRow(headers []string, row []string, line int, now time.Time) RowResult {
	result := RowResult{Line: line}
	rec := StudentRecord{}

	for i, field := range headers {
		if field == "" || i >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[i])
		switch field {
		case "nome":
			rec.Nome = value
		case "cpf":
			rec.CPF = validation.CleanCPF(value)
		case "data_nascimento":
			rec.DataNascimento = validation.NormalizeDate(value)
		case "telefone":
			rec.Telefone = validation.CleanPhone(value)
		case "email":
			rec.Email = value
		case "endereco":
			rec.Endereco = value
		case "bairro":
			rec.Bairro = value
		case "cidade":
			rec.Cidade = value
		case "estado":
			rec.Estado = strings.ToUpper(value)
		case "cep":
			rec.CEP = value
		case "nome_responsavel":
			rec.NomeResponsavel = value
		case "telefone_responsavel":
			rec.TelefoneResponsavel = validation.CleanPhone(value)
		case "turma":
			rec.Turma = value
		}
	}

	addErr := func(msg string) { result.Errors = append(result.Errors, msg) }
	addWarn := func(msg string) { result.Warnings = append(result.Warnings, msg) }

	if err := validation.ValidateName(rec.Nome); err != nil {
		addErr(err.Error())
	}
	if err := validation.ValidateCPF(rec.CPF); err != nil {
		addErr(err.Error())
	}
	if rec.DataNascimento == "" {
		addErr("Data de nascimento é obrigatória")
	} else if birth, err := validation.ParseDate(rec.DataNascimento); err != nil {
		addErr(err.Error())
	} else {
		age := validation.Age(birth, now)
		if age < minStudentAge || age > maxStudentAge {
			addErr(fmt.Sprintf("Idade fora do intervalo esperado: %d anos", age))
		} else if age < adultAge && rec.NomeResponsavel == "" {
			addErr("Aluno menor de idade exige responsável")
		}
	}
	if err := validation.ValidatePhone(rec.Telefone); err != nil {
		addErr(err.Error())
	}
	if err := validation.ValidateEmail(rec.Email); err != nil {
		addErr(err.Error())
	}
	if len(rec.Email) > 255 {
		addErr("Email muito longo")
	}
	if err := validation.ValidateCEP(rec.CEP); err != nil {
		addErr(err.Error())
	}

	// The legacy upload files often omit contact fields. Fill the database
	// placeholders and tell the operator.
	if rec.Telefone == "" {
		rec.Telefone = "00000000000"
		addWarn("Telefone ausente, preenchido com placeholder")
	}
	if rec.Email == "" {
		rec.Email = fmt.Sprintf("sem-email-%s@importado.local", rec.CPF)
		addWarn("Email ausente, preenchido com placeholder")
	}
	if rec.Cidade == "" {
		rec.Cidade = "Manaus"
		addWarn("Cidade ausente, assumido Manaus")
	}
	if rec.Estado == "" {
		rec.Estado = "AM"
	}

	if len(result.Errors) == 0 {
		result.Record = &rec
	}
	return result
}
