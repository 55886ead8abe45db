package identity

import (
	"time"

	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Store persiste identidades. La unicidad de correo y documento la hace
// cumplir la base de datos; una violación llega como *domain.ConflictError.
type Store interface {
	InsertIdentity(identity *domain.Identity) error
}

type RegistroEstudiante struct {
	Nombres             string `json:"nombres" validate:"required,min=2,max=100"`
	Apellidos           string `json:"apellidos" validate:"required,min=2,max=100"`
	TipoDocumento       string `json:"tipo_documento" validate:"required,oneof=CC TI CE PA"`
	NumeroDocumento     string `json:"numero_documento" validate:"required,min=6,max=20"`
	CorreoInstitucional string `json:"correo_institucional" validate:"required,email"`
	Password            string `json:"password" validate:"required"`
	Programa            string `json:"programa" validate:"required"`
	Promocion           string `json:"promocion" validate:"required,promocion"`
	ConsentAccepted     bool   `json:"consent_accepted"`
	CanContact          bool   `json:"can_contact"`
}

type RegistroPersonal struct {
	Nombres             string `json:"nombres" validate:"required,min=2,max=100"`
	Apellidos           string `json:"apellidos" validate:"required,min=2,max=100"`
	TipoDocumento       string `json:"tipo_documento" validate:"required,oneof=CC TI CE PA"`
	NumeroDocumento     string `json:"numero_documento" validate:"required,min=6,max=20"`
	CorreoInstitucional string `json:"correo_institucional" validate:"required,email"`
	Password            string `json:"password" validate:"required"`
	Cargo               string `json:"cargo" validate:"required"`
	ConsentAccepted     bool   `json:"consent_accepted"`
	CanContact          bool   `json:"can_contact"`
}

// Registrar decide quién puede registrarse y bajo qué rol. Las
// validaciones corren en orden fijo y la primera que falla determina el
// único error devuelto; no se escribe nada si alguna falla.
type Registrar struct {
	policy    *CredentialPolicy
	programas *Vocabulary
	cargos    *Vocabulary
	store     Store
}

func NewRegistrar(policy *CredentialPolicy, programas, cargos *Vocabulary, store Store) *Registrar {
	return &Registrar{
		policy:    policy,
		programas: programas,
		cargos:    cargos,
		store:     store,
	}
}

func (r *Registrar) RegisterStudent(input *RegistroEstudiante) (*domain.Identity, error) {
	correo, err := r.policy.ValidateEmailDomain(input.CorreoInstitucional, domain.TipoEstudiante)
	if err != nil {
		return nil, err
	}
	if err := r.policy.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	programa, ok := r.programas.Resolve(input.Programa)
	if !ok {
		return nil, &domain.PolicyViolation{Reason: "Programa no válido. Selecciona uno de la lista."}
	}

	identity, err := r.newIdentity(domain.TipoEstudiante, correo, input.Password, input.Nombres, input.Apellidos, input.TipoDocumento, input.NumeroDocumento, input.ConsentAccepted, input.CanContact)
	if err != nil {
		return nil, err
	}
	identity.Rol = domain.RolEstudiante
	identity.Estudiante = &domain.PerfilEstudiante{
		Programa:  programa,
		Promocion: input.Promocion,
	}

	if err := r.store.InsertIdentity(identity); err != nil {
		return nil, err
	}

	return identity, nil
}

func (r *Registrar) RegisterStaff(input *RegistroPersonal) (*domain.Identity, error) {
	correo, err := r.policy.ValidateEmailDomain(input.CorreoInstitucional, domain.TipoPersonal)
	if err != nil {
		return nil, err
	}
	if err := r.policy.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	cargo, ok := r.cargos.Resolve(input.Cargo)
	if !ok {
		return nil, &domain.PolicyViolation{Reason: "Cargo no válido. Selecciona uno de la lista."}
	}

	identity, err := r.newIdentity(domain.TipoPersonal, correo, input.Password, input.Nombres, input.Apellidos, input.TipoDocumento, input.NumeroDocumento, input.ConsentAccepted, input.CanContact)
	if err != nil {
		return nil, err
	}
	identity.Rol = domain.RolPersonal
	identity.Personal = &domain.PerfilPersonal{
		Cargo: cargo,
	}

	if err := r.store.InsertIdentity(identity); err != nil {
		return nil, err
	}

	return identity, nil
}

func (r *Registrar) newIdentity(tipo domain.TipoUsuario, correo, password, nombres, apellidos, tipoDocumento, numeroDocumento string, consentAccepted, canContact bool) (*domain.Identity, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	identity := &domain.Identity{
		Tipo:                tipo,
		Nombres:             nombres,
		Apellidos:           apellidos,
		TipoDocumento:       domain.TipoDocumento(tipoDocumento),
		NumeroDocumento:     numeroDocumento,
		CorreoInstitucional: correo,
		PasswordHash:        string(passwordHash),
		ConsentAccepted:     consentAccepted,
		CanContact:          canContact,
	}

	if consentAccepted {
		now := time.Now()
		identity.ConsentDate = &now
	}

	return identity, nil
}
