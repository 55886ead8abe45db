package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sin cambios", "derecho", "derecho"},
		{"tildes", "Ingeniería de Sistemas", "ingenieria de sistemas"},
		{"eñe", "Diseño Gráfico", "diseno grafico"},
		{"mayusculas", "PSICOLOGÍA", "psicologia"},
		{"espacios multiples", "  Comunicación   Social  ", "comunicacion social"},
		{"tabulaciones", "Mercadeo\ty\tPublicidad", "mercadeo y publicidad"},
		{"vacio", "", ""},
		{"solo espacios", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Ingeniería de Sistemas",
		"  MÚLTIPLES   espacios  ",
		"ya normalizado",
		"",
		"Ñandú überstraße",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "Normalize debe ser idempotente para %q", input)
	}
}
