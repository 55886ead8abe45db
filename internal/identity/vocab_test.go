package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularyResolve(t *testing.T) {
	tests := []struct {
		name  string
		vocab *Vocabulary
		raw   string
		want  string
		found bool
	}{
		{"forma canonica", Programas, "Ingeniería de Sistemas", "Ingeniería de Sistemas", true},
		{"sin tildes y minusculas", Programas, "ingenieria de sistemas", "Ingeniería de Sistemas", true},
		{"espacios de mas", Programas, "  psicologia ", "Psicología", true},
		{"cargo sin tildes", Cargos, "docente hora catedra", "Docente Hora Cátedra", true},
		{"no existe", Programas, "Astrofísica", "", false},
		{"vacio", Programas, "", "", false},
		{"prefijo no cuenta", Programas, "Ingeniería", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := tt.vocab.Resolve(tt.raw)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVocabularyResolveSameNormalizedForm(t *testing.T) {
	// Dos variantes con la misma forma normalizada resuelven a la misma
	// entrada canónica
	a, okA := Programas.Resolve("CONTADURÍA PÚBLICA")
	b, okB := Programas.Resolve("contaduria   publica")
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
}

func TestVocabularyResolveDeclarationOrderWins(t *testing.T) {
	// Con entradas duplicadas tras normalizar, gana la primera declarada
	v := NewVocabulary([]string{"Administración", "ADMINISTRACION", "administración"})

	got, found := v.Resolve("administracion")
	require.True(t, found)
	assert.Equal(t, "Administración", got)
}

func TestVocabularyEntries(t *testing.T) {
	assert.Len(t, Programas.Entries(), 10)
	assert.Len(t, Cargos.Entries(), 15)

	// El orden de declaración se conserva
	assert.Equal(t, "Administración de Empresas", Programas.Entries()[0])
	assert.Equal(t, "Otro", Cargos.Entries()[14])

	// Entries devuelve una copia
	entries := Programas.Entries()
	entries[0] = "modificado"
	assert.Equal(t, "Administración de Empresas", Programas.Entries()[0])
}
