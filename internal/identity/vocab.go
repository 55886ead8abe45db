package identity

// Vocabulary es una lista fija y ordenada de valores válidos. El orden de
// declaración es significativo: Resolve devuelve la primera coincidencia y
// Entries conserva el orden para los endpoints de listado.
type Vocabulary struct {
	entries    []string
	normalized []string
}

func NewVocabulary(entries []string) *Vocabulary {
	v := &Vocabulary{
		entries:    entries,
		normalized: make([]string, len(entries)),
	}
	for i, e := range entries {
		v.normalized[i] = Normalize(e)
	}
	return v
}

// Resolve busca la forma canónica de un valor escrito libremente. Devuelve
// false si el valor no está en la lista.
func (v *Vocabulary) Resolve(raw string) (string, bool) {
	want := Normalize(raw)
	for i, n := range v.normalized {
		if n == want {
			return v.entries[i], true
		}
	}
	return "", false
}

func (v *Vocabulary) Entries() []string {
	out := make([]string, len(v.entries))
	copy(out, v.entries)
	return out
}

// Listas predefinidas
var Programas = NewVocabulary([]string{
	"Administración de Empresas",
	"Administración Financiera",
	"Contaduría Pública",
	"Ingeniería de Sistemas",
	"Ingeniería Industrial",
	"Psicología",
	"Derecho",
	"Comunicación Social",
	"Diseño Gráfico",
	"Mercadeo y Publicidad",
})

var Cargos = NewVocabulary([]string{
	"Docente Tiempo Completo",
	"Docente Hora Cátedra",
	"Coordinador Académico",
	"Decano",
	"Director de Programa",
	"Psicólogo",
	"Trabajador Social",
	"Secretaria/o",
	"Auxiliar Administrativo",
	"Administrativo",
	"Servicios Generales",
	"Vigilancia",
	"Biblioteca",
	"Sistemas",
	"Otro",
})
