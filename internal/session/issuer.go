package session

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Store resuelve identidades para autenticación.
type Store interface {
	GetIdentityByEmail(email string) (*domain.Identity, error)
	UpdateLastLogin(id int64, ts time.Time) error
}

type Claims struct {
	UserID int64      `json:"id"`
	Rol    domain.Rol `json:"rol"`
	jwt.RegisteredClaims
}

// Issuer autentica credenciales y emite/verifica tokens de sesión firmados.
// Los tokens no se revocan: su validez depende solo de la firma y la
// expiración.
type Issuer struct {
	secret   []byte
	lifetime time.Duration
	store    Store
}

// NewIssuer falla si el secreto está vacío: es preferible no arrancar a
// servir tokens sin firmar de forma segura.
func NewIssuer(secret string, expirationMinutes int, store Store) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("el secreto de firma JWT no puede estar vacío")
	}

	return &Issuer{
		secret:   []byte(secret),
		lifetime: time.Duration(expirationMinutes) * time.Minute,
		store:    store,
	}, nil
}

// Authenticate busca la identidad por correo en minúsculas y compara la
// contraseña. Usuario inexistente y contraseña incorrecta producen el mismo
// error para no revelar si la cuenta existe. En caso de éxito actualiza
// last_login.
func (i *Issuer) Authenticate(email, password string) (*domain.Identity, error) {
	identity, err := i.store.GetIdentityByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.ErrInvalidCredentials
		default:
			return nil, err
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return nil, domain.ErrInvalidCredentials
		default:
			return nil, err
		}
	}

	now := time.Now()
	if err := i.store.UpdateLastLogin(identity.ID, now); err != nil {
		return nil, err
	}
	identity.LastLogin = &now

	return identity, nil
}

// IssueToken emite un token HS256 con las claims {sub: correo, id, rol}.
func (i *Issuer) IssueToken(identity *domain.Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.lifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: identity.ID,
		Rol:    identity.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.CorreoInstitucional,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	ss, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return ss, expiresAt, nil
}

// VerifyToken valida la firma y la expiración y devuelve las claims. No
// muta ningún estado.
func (i *Issuer) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrTokenInvalid
		}
	}

	if claims.Subject == "" || claims.UserID == 0 {
		return nil, domain.ErrTokenInvalid
	}

	return claims, nil
}
