package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidateImportanceRule(t *testing.T) {
	v := validator.New()
	RegisterCustomValidators(v)

	tests := []struct {
		name       string
		importance int
		wantErr    bool
	}{
		{"below range", 0, true},
		{"lower bound", 1, false},
		{"mid range", 5, false},
		{"upper bound", 10, false},
		{"above range", 11, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.importance, "importance")
			if (err != nil) != tt.wantErr {
				t.Errorf("importance %d: got err=%v, wantErr=%v", tt.importance, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePasswordRule(t *testing.T) {
	v := validator.New()
	RegisterCustomValidators(v)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "secret1!", false},
		{"too short", "a1!", true},
		{"missing number", "secrets!", true},
		{"missing special", "secrets1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.password, "password")
			if (err != nil) != tt.wantErr {
				t.Errorf("password %q: got err=%v, wantErr=%v", tt.password, err, tt.wantErr)
			}
		})
	}
}
