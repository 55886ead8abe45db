package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/domain"
)

const uniqueViolation = "23505"

// mapInsertError traduce violaciones de unicidad a errores de conflicto del
// dominio, identificando el campo por el nombre de la restricción.
func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "usuarios_numero_documento_key":
			return &domain.ConflictError{Campo: "numero_documento"}
		default:
			return &domain.ConflictError{Campo: "correo_institucional"}
		}
	}
	return err
}

func (r *Repository) InsertIdentity(identity *domain.Identity) error {
	query := `
		INSERT INTO usuarios (tipo_usuario, nombres, apellidos, tipo_documento, numero_documento, correo_institucional, password_hash, rol, programa, promocion, cargo, consent_accepted, consent_date, can_contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var programa, promocion, cargo sql.NullString
	switch identity.Tipo {
	case domain.TipoEstudiante:
		programa = sql.NullString{String: identity.Estudiante.Programa, Valid: true}
		promocion = sql.NullString{String: identity.Estudiante.Promocion, Valid: true}
	case domain.TipoPersonal:
		cargo = sql.NullString{String: identity.Personal.Cargo, Valid: true}
	}

	args := []any{
		identity.Tipo, identity.Nombres, identity.Apellidos, identity.TipoDocumento,
		identity.NumeroDocumento, identity.CorreoInstitucional, identity.PasswordHash,
		identity.Rol, programa, promocion, cargo,
		identity.ConsentAccepted, identity.ConsentDate, identity.CanContact,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&identity.ID, &identity.CreatedAt, &identity.Version); err != nil {
		return mapInsertError(err)
	}

	return nil
}

func (r *Repository) scanIdentity(row *sql.Row, identity *domain.Identity) error {
	var programa, promocion, cargo sql.NullString
	var consentDate, lastLogin sql.NullTime

	dst := []any{
		&identity.ID, &identity.Tipo, &identity.Nombres, &identity.Apellidos,
		&identity.TipoDocumento, &identity.NumeroDocumento, &identity.CorreoInstitucional,
		&identity.PasswordHash, &identity.Rol, &programa, &promocion, &cargo,
		&identity.ConsentAccepted, &consentDate, &identity.CanContact,
		&identity.CreatedAt, &lastLogin, &identity.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return err
	}

	switch identity.Tipo {
	case domain.TipoEstudiante:
		identity.Estudiante = &domain.PerfilEstudiante{
			Programa:  programa.String,
			Promocion: promocion.String,
		}
	case domain.TipoPersonal:
		identity.Personal = &domain.PerfilPersonal{
			Cargo: cargo.String,
		}
	}

	if consentDate.Valid {
		identity.ConsentDate = &consentDate.Time
	}
	if lastLogin.Valid {
		identity.LastLogin = &lastLogin.Time
	}

	return nil
}

const identityColumns = `
	id, tipo_usuario, nombres, apellidos, tipo_documento, numero_documento,
	correo_institucional, password_hash, rol, programa, promocion, cargo,
	consent_accepted, consent_date, can_contact, created_at, last_login, version
`

func (r *Repository) GetIdentityByEmail(email string) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM usuarios WHERE correo_institucional = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	identity := &domain.Identity{}
	if err := r.scanIdentity(r.dbpool.QueryRowContext(ctx, query, email), identity); err != nil {
		return nil, err
	}

	return identity, nil
}

func (r *Repository) GetIdentityByDocument(numeroDocumento string) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM usuarios WHERE numero_documento = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	identity := &domain.Identity{}
	if err := r.scanIdentity(r.dbpool.QueryRowContext(ctx, query, numeroDocumento), identity); err != nil {
		return nil, err
	}

	return identity, nil
}

func (r *Repository) UpdateLastLogin(id int64, ts time.Time) error {
	query := `
		UPDATE usuarios
		SET last_login = $1, version = version + 1
		WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, ts, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdatePasswordHash(id int64, passwordHash string) error {
	query := `
		UPDATE usuarios
		SET password_hash = $1, version = version + 1
		WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
