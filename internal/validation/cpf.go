package validation

import (
	"strings"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
)

// CleanCPF strips everything but digits from a formatted CPF.
func CleanCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCPF renders an 11-digit CPF as 000.000.000-00. Inputs of other
// lengths come back unchanged.
func FormatCPF(cpf string) string {
	cpf = CleanCPF(cpf)
	if len(cpf) != 11 {
		return cpf
	}
	return cpf[0:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:11]
}

// ValidateCPF checks length, the all-same-digit degenerate cases and both
// verification digits of the Brazilian CPF checksum.
func ValidateCPF(cpf string) error {
	cpf = CleanCPF(cpf)
	if len(cpf) != 11 {
		return errors.ValidationError("CPF deve conter 11 dígitos")
	}
	allSame := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return errors.ValidationError("CPF inválido")
	}
	if digit(cpf, 9) != int(cpf[9]-'0') || digit(cpf, 10) != int(cpf[10]-'0') {
		return errors.ValidationError("CPF inválido")
	}
	return nil
}

// digit computes the verification digit at position pos (9 or 10) from the
// preceding digits, per the Receita Federal modulus-11 rule.
func digit(cpf string, pos int) int {
	sum := 0
	weight := pos + 1
	for i := 0; i < pos; i++ {
		sum += int(cpf[i]-'0') * weight
		weight--
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}
