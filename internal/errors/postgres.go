package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Postgres error codes that the import and CRUD paths translate into
// user-facing Portuguese messages.
const (
	pgUniqueViolation   = "23505"
	pgStringTooLong     = "22001"
	pgNotNullViolation  = "23502"
	pgInvalidDatetime   = "22007"
	pgInvalidTextRepr   = "22P02"
	pgCheckViolation    = "23514"
	pgForeignKeyMissing = "23503"
)

// TranslatePG converts a Postgres driver error into an AppError carrying a
// localized message. Non-pq errors come back wrapped as DATABASE_ERROR.
func TranslatePG(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return Wrap(err, "erro desconhecido no banco de dados")
	}

	switch string(pqErr.Code) {
	case pgUniqueViolation:
		if strings.Contains(pqErr.Constraint, "cpf") {
			return &AppError{Code: CodeDuplicate, Message: "CPF já cadastrado no sistema", Cause: pqErr}
		}
		if strings.Contains(pqErr.Constraint, "email") {
			return &AppError{Code: CodeDuplicate, Message: "Email já cadastrado no sistema", Cause: pqErr}
		}
		return &AppError{Code: CodeDuplicate, Message: "Valor duplicado encontrado", Cause: pqErr}

	case pgStringTooLong:
		return &AppError{Code: CodeValidationError, Message: fmt.Sprintf("Campo muito longo: %s", columnOrUnknown(pqErr)), Cause: pqErr}

	case pgNotNullViolation:
		return &AppError{Code: CodeValidationError, Message: fmt.Sprintf("Campo obrigatório faltando: %s", columnOrUnknown(pqErr)), Cause: pqErr}

	case pgInvalidDatetime:
		return &AppError{Code: CodeValidationError, Message: "Formato de data inválido", Cause: pqErr}

	case pgInvalidTextRepr:
		return &AppError{Code: CodeValidationError, Message: "Formato de dados inválido", Cause: pqErr}

	case pgCheckViolation:
		detail := pqErr.Detail
		if detail == "" {
			detail = pqErr.Message
		}
		return &AppError{Code: CodeValidationError, Message: fmt.Sprintf("Valor inválido: %s", detail), Cause: pqErr}

	case pgForeignKeyMissing:
		return &AppError{Code: CodeValidationError, Message: "Registro relacionado não encontrado", Cause: pqErr}
	}

	return &AppError{Code: CodeDatabaseError, Message: pqErr.Message, Cause: pqErr}
}

// IsDuplicate reports whether the error is a unique-constraint violation,
// before or after translation.
func IsDuplicate(err error) bool {
	if GetCode(err) == CodeDuplicate {
		return true
	}
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

func columnOrUnknown(err *pq.Error) string {
	if err.Column != "" {
		return err.Column
	}
	return "não identificado"
}
