package validation

import "testing"

func TestValidateCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		{"valid bare digits", "52998224725", true},
		{"valid formatted", "529.982.247-25", true},
		{"repeated digits", "11111111111", false},
		{"all zeros", "00000000000", false},
		{"bad check digit", "52998224724", false},
		{"too short", "5299822472", false},
		{"too long", "529982247251", false},
		{"empty", "", false},
		{"letters only", "abcdefghijk", false},
	}
	for _, test := range tests {
		err := ValidateCPF(test.cpf)
		if test.valid && err != nil {
			t.Errorf("%s: expected valid, got %v", test.name, err)
		}
		if !test.valid && err == nil {
			t.Errorf("%s: expected validation error for %q", test.name, test.cpf)
		}
	}
}

func TestCleanCPF(t *testing.T) {
	if got := CleanCPF("529.982.247-25"); got != "52998224725" {
		t.Errorf("Expected digits only, got %q", got)
	}
}

func TestFormatCPF(t *testing.T) {
	if got := FormatCPF("52998224725"); got != "529.982.247-25" {
		t.Errorf("Expected formatted CPF, got %q", got)
	}
	// Wrong lengths pass through untouched.
	if got := FormatCPF("12345"); got != "12345" {
		t.Errorf("Expected short input unchanged, got %q", got)
	}
}
