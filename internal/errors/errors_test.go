package errors

import (
	stderrors "errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCode(t *testing.T) {
	base := ValidationError("CPF inválido")
	wrapped := Wrap(base, "falha ao importar linha 3")

	assert.Equal(t, CodeValidationError, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "falha ao importar linha 3")
	assert.True(t, stderrors.Is(wrapped, base), "wrapped error must unwrap to the original")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
	assert.Nil(t, WithCode(CodeNotFound, nil))
}

func TestWrapPlainError(t *testing.T) {
	err := Wrap(stderrors.New("conexão recusada"), "falha ao consultar alunos")
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Equal(t, "falha ao consultar alunos: conexão recusada", err.Error())
}

func TestGetCodeUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, CodeNotFound, GetCode(NotFound("aluno")))
	assert.Equal(t, "aluno not found", NotFound("aluno").Error())
	assert.Equal(t, CodeInvalidInput, GetCode(InvalidInput("campo vazio")))
	assert.Equal(t, CodeExternalService, GetCode(ExternalServiceError("webhook", stderrors.New("timeout"))))
}

func TestTranslatePGUniqueCPF(t *testing.T) {
	pqErr := &pq.Error{Code: "23505", Constraint: "alunos_cpf_key"}
	err := TranslatePG(pqErr)

	assert.Equal(t, CodeDuplicate, GetCode(err))
	assert.Equal(t, "CPF já cadastrado no sistema", err.(*AppError).Message)
	assert.True(t, IsDuplicate(err))
}

func TestTranslatePGUniqueOther(t *testing.T) {
	err := TranslatePG(&pq.Error{Code: "23505", Constraint: "professores_numero_key"})
	assert.Equal(t, CodeDuplicate, GetCode(err))
	assert.Equal(t, "Valor duplicado encontrado", err.(*AppError).Message)
}

func TestTranslatePGNotNull(t *testing.T) {
	err := TranslatePG(&pq.Error{Code: "23502", Column: "nome"})
	assert.Equal(t, CodeValidationError, GetCode(err))
	assert.Contains(t, err.(*AppError).Message, "nome")
}

func TestTranslatePGForeignKey(t *testing.T) {
	err := TranslatePG(&pq.Error{Code: "23503"})
	assert.Equal(t, CodeValidationError, GetCode(err))
	assert.Equal(t, "Registro relacionado não encontrado", err.(*AppError).Message)
}

func TestTranslatePGPlainError(t *testing.T) {
	err := TranslatePG(stderrors.New("driver: bad connection"))
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Contains(t, err.Error(), "erro desconhecido no banco de dados")
}

func TestTranslatePGNil(t *testing.T) {
	assert.Nil(t, TranslatePG(nil))
}

func TestIsDuplicateRawPQ(t *testing.T) {
	assert.True(t, IsDuplicate(&pq.Error{Code: "23505"}))
	assert.False(t, IsDuplicate(&pq.Error{Code: "23503"}))
	assert.False(t, IsDuplicate(stderrors.New("plain")))
}
