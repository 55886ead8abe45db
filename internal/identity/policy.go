package identity

import (
	"strings"
	"unicode"

	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/domain"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 72 // límite de bcrypt
)

// CredentialPolicy agrupa las reglas de contraseña y de correo
// institucional. Los sufijos de dominio vienen de la configuración.
type CredentialPolicy struct {
	dominioEstudiante string
	dominioPersonal   string
}

func NewCredentialPolicy(dominioEstudiante, dominioPersonal string) *CredentialPolicy {
	return &CredentialPolicy{
		dominioEstudiante: strings.ToLower(dominioEstudiante),
		dominioPersonal:   strings.ToLower(dominioPersonal),
	}
}

// ValidatePassword evalúa las reglas en orden y devuelve la primera que
// falla.
func (p *CredentialPolicy) ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return &domain.PolicyViolation{Reason: "La contraseña debe tener al menos 8 caracteres"}
	}
	if len(password) > PasswordMaxLength {
		return &domain.PolicyViolation{Reason: "La contraseña no puede tener más de 72 caracteres"}
	}

	var mayuscula, minuscula, digito bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			mayuscula = true
		case unicode.IsLower(c):
			minuscula = true
		case unicode.IsDigit(c):
			digito = true
		}
	}

	if !mayuscula {
		return &domain.PolicyViolation{Reason: "La contraseña debe contener al menos una mayúscula"}
	}
	if !minuscula {
		return &domain.PolicyViolation{Reason: "La contraseña debe contener al menos una minúscula"}
	}
	if !digito {
		return &domain.PolicyViolation{Reason: "La contraseña debe contener al menos un número"}
	}

	return nil
}

// ValidateEmailDomain comprueba que el correo pertenezca al dominio del
// tipo de usuario y devuelve la forma canónica en minúsculas. El dominio de
// personal contiene al de estudiantes como sufijo, por lo que para el
// personal hay que excluirlo explícitamente.
func (p *CredentialPolicy) ValidateEmailDomain(email string, tipo domain.TipoUsuario) (string, error) {
	canonical := strings.ToLower(strings.TrimSpace(email))

	switch tipo {
	case domain.TipoEstudiante:
		if !strings.HasSuffix(canonical, p.dominioEstudiante) {
			return "", &domain.PolicyViolation{Reason: "Debes usar tu correo institucional de estudiante"}
		}
	case domain.TipoPersonal:
		if !strings.HasSuffix(canonical, p.dominioPersonal) {
			return "", &domain.PolicyViolation{Reason: "Debes usar tu correo institucional"}
		}
		if strings.HasSuffix(canonical, p.dominioEstudiante) {
			return "", &domain.PolicyViolation{Reason: "Este correo es de estudiante. Usa el registro de estudiantes."}
		}
	}

	return canonical, nil
}
