package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsOnly   = regexp.MustCompile(`\D`)
)

// ValidateName requires at least three meaningful characters.
func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) < 3 {
		return errors.ValidationError("Nome deve ter pelo menos 3 caracteres")
	}
	return nil
}

// ValidateEmail accepts empty (the field is optional on most forms) and
// otherwise requires the minimal user@host.tld shape.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return errors.ValidationError("Email inválido")
	}
	return nil
}

// ValidateCEP requires exactly 8 digits after stripping punctuation.
func ValidateCEP(cep string) error {
	cep = strings.TrimSpace(cep)
	if cep == "" {
		return nil
	}
	if len(digitsOnly.ReplaceAllString(cep, "")) != 8 {
		return errors.ValidationError("CEP deve conter 8 dígitos")
	}
	return nil
}

// CleanPhone strips formatting from a phone number and caps it at the column
// width the database allows.
func CleanPhone(phone string) string {
	phone = digitsOnly.ReplaceAllString(phone, "")
	if len(phone) > 20 {
		phone = phone[:20]
	}
	return phone
}

// ValidatePhone requires a Brazilian mobile or landline length, DDD included.
func ValidatePhone(phone string) error {
	phone = CleanPhone(phone)
	if phone == "" {
		return nil
	}
	if len(phone) < 10 || len(phone) > 13 {
		return errors.ValidationError("Telefone inválido")
	}
	return nil
}

// dateLayouts lists the input formats the importer accepts, tried in order.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"2/1/2006",
}

// ParseDate parses a birth date in any accepted layout.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.ValidationError(fmt.Sprintf("Formato de data inválido: %s", value))
}

// NormalizeDate converts any accepted layout to DD/MM/YYYY. Values that do
// not parse come back unchanged so they can fail downstream with context.
func NormalizeDate(value string) string {
	t, err := ParseDate(value)
	if err != nil {
		return value
	}
	return t.Format("02/01/2006")
}

// ISODate converts any accepted layout to the YYYY-MM-DD shape Postgres
// expects for date columns.
func ISODate(value string) (string, error) {
	t, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

// Age returns completed years at the reference date.
func Age(birth, ref time.Time) int {
	years := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() || (ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		years--
	}
	return years
}
