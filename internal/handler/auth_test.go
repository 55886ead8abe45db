package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/config"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/domain"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/identity"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/repository"
	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// --- Mocks ---

type mockIdentityStore struct {
	InsertIdentityFunc func(identity *domain.Identity) error
	Inserted           []*domain.Identity
}

func (m *mockIdentityStore) InsertIdentity(identity *domain.Identity) error {
	m.Inserted = append(m.Inserted, identity)
	if m.InsertIdentityFunc != nil {
		return m.InsertIdentityFunc(identity)
	}
	return nil
}

type mockSessionStore struct {
	identity *domain.Identity
}

func (m *mockSessionStore) GetIdentityByEmail(email string) (*domain.Identity, error) {
	if m.identity != nil && m.identity.CorreoInstitucional == email {
		return m.identity, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSessionStore) UpdateLastLogin(id int64, ts time.Time) error {
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "secreto-de-prueba"
	cfg.JWT.ExpirationMinutes = 60
	cfg.Universidad.DominioEstudiante = "@estudiantes.uniempresarial.edu.co"
	cfg.Universidad.DominioPersonal = "@uniempresarial.edu.co"
	cfg.WHO5.UmbralAlerta = 13
	return cfg
}

// newTestHandler arma el handler con las rutas registradas y reemplaza la
// persistencia por los mocks.
func newTestHandler(t *testing.T, identities *mockIdentityStore, sessionStore session.Store) *Handler {
	t.Helper()

	cfg := testConfig()
	h, err := NewHandler(cfg, repository.NewRepository(cfg, nil), nil, nil)
	require.NoError(t, err)

	h.registrar = identity.NewRegistrar(h.policy, identity.Programas, identity.Cargos, identities)

	sessions, err := session.NewIssuer(cfg.JWT.Secret, cfg.JWT.ExpirationMinutes, sessionStore)
	require.NoError(t, err)
	h.sessions = sessions

	h.RegisterRoutes()
	return h
}

type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, h *Handler, method, target string, body io.Reader, header http.Header) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func postJSON(t *testing.T, h *Handler, target string, payload map[string]any) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return doRequest(t, h, http.MethodPost, target, bytes.NewReader(body), http.Header{"Content-Type": {"application/json"}})
}

func registroEstudiantePayload() map[string]any {
	return map[string]any{
		"nombres":              "Juan",
		"apellidos":            "Pérez",
		"tipo_documento":       "CC",
		"numero_documento":     "1023456789",
		"correo_institucional": "juan.perez@estudiantes.uniempresarial.edu.co",
		"password":             "Abcdef12",
		"programa":             "ingenieria de sistemas",
		"promocion":            "2024-1",
		"consent_accepted":     true,
		"can_contact":          true,
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, &mockIdentityStore{}, &mockSessionStore{})

	rec, resp := doRequest(t, h, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Message)
}

func TestRegistrarEstudiante(t *testing.T) {
	t.Run("registro exitoso", func(t *testing.T) {
		store := &mockIdentityStore{}
		h := newTestHandler(t, store, &mockSessionStore{})

		rec, resp := postJSON(t, h, "/api/auth/registro/estudiante", registroEstudiantePayload())
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, resp.Success)
		assert.Equal(t, "Registro exitoso", resp.Message)
		require.Len(t, store.Inserted, 1)

		var usuario map[string]any
		require.NoError(t, json.Unmarshal(resp.Data, &usuario))
		assert.Equal(t, "Ingeniería de Sistemas", usuario["programa"])
		assert.Equal(t, "juan.perez@estudiantes.uniempresarial.edu.co", usuario["correo_institucional"])
		assert.NotContains(t, usuario, "password")
		assert.NotContains(t, usuario, "password_hash")
	})

	t.Run("campo estructural invalido", func(t *testing.T) {
		h := newTestHandler(t, &mockIdentityStore{}, &mockSessionStore{})

		payload := registroEstudiantePayload()
		payload["promocion"] = "2024-3"

		rec, resp := postJSON(t, h, "/api/auth/registro/estudiante", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Formato de promoción inválido. Use: YYYY-1 o YYYY-2", resp.Message)
	})

	t.Run("correo fuera del dominio", func(t *testing.T) {
		store := &mockIdentityStore{}
		h := newTestHandler(t, store, &mockSessionStore{})

		payload := registroEstudiantePayload()
		payload["correo_institucional"] = "juan@gmail.com"

		rec, resp := postJSON(t, h, "/api/auth/registro/estudiante", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Debes usar tu correo institucional de estudiante", resp.Message)
		assert.Empty(t, store.Inserted)
	})

	t.Run("correo duplicado", func(t *testing.T) {
		store := &mockIdentityStore{
			InsertIdentityFunc: func(identity *domain.Identity) error {
				return &domain.ConflictError{Campo: "correo_institucional"}
			},
		}
		h := newTestHandler(t, store, &mockSessionStore{})

		rec, resp := postJSON(t, h, "/api/auth/registro/estudiante", registroEstudiantePayload())
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.False(t, resp.Success)
	})
}

func TestRegistrarPersonal(t *testing.T) {
	store := &mockIdentityStore{}
	h := newTestHandler(t, store, &mockSessionStore{})

	rec, resp := postJSON(t, h, "/api/auth/registro/personal", map[string]any{
		"nombres":              "Ana",
		"apellidos":            "Gómez",
		"tipo_documento":       "CC",
		"numero_documento":     "52123456",
		"correo_institucional": "ana.gomez@uniempresarial.edu.co",
		"password":             "Abcdef12",
		"cargo":                "psicologo",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.Inserted, 1)

	var usuario map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &usuario))
	assert.Equal(t, "Psicólogo", usuario["cargo"])
	assert.Equal(t, "personal", usuario["rol"])
}

func loginSessionStore(t *testing.T) *mockSessionStore {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("Abcdef12"), bcrypt.MinCost)
	require.NoError(t, err)

	return &mockSessionStore{
		identity: &domain.Identity{
			ID:                  7,
			Tipo:                domain.TipoEstudiante,
			Nombres:             "Juan",
			Apellidos:           "Pérez",
			CorreoInstitucional: "juan.perez@estudiantes.uniempresarial.edu.co",
			PasswordHash:        string(passwordHash),
			Rol:                 domain.RolEstudiante,
		},
	}
}

func postForm(t *testing.T, h *Handler, target string, form url.Values) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()

	return doRequest(t, h, http.MethodPost, target, strings.NewReader(form.Encode()), http.Header{
		"Content-Type": {"application/x-www-form-urlencoded"},
	})
}

func TestLogin(t *testing.T) {
	h := newTestHandler(t, &mockIdentityStore{}, loginSessionStore(t))

	t.Run("credenciales correctas", func(t *testing.T) {
		rec, resp := postForm(t, h, "/api/auth/login", url.Values{
			"username": {"juan.perez@estudiantes.uniempresarial.edu.co"},
			"password": {"Abcdef12"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)

		var data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
			Usuario     struct {
				Correo string     `json:"correo"`
				Rol    domain.Rol `json:"rol"`
			} `json:"usuario"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotEmpty(t, data.AccessToken)
		assert.Equal(t, "bearer", data.TokenType)
		assert.Equal(t, "juan.perez@estudiantes.uniempresarial.edu.co", data.Usuario.Correo)
		assert.Equal(t, domain.RolEstudiante, data.Usuario.Rol)
	})

	t.Run("contraseña incorrecta", func(t *testing.T) {
		rec, resp := postForm(t, h, "/api/auth/login", url.Values{
			"username": {"juan.perez@estudiantes.uniempresarial.edu.co"},
			"password": {"otraClave1"},
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Correo o contraseña incorrectos", resp.Message)
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		rec, _ := postForm(t, h, "/api/auth/login", url.Values{
			"username": {"nadie@estudiantes.uniempresarial.edu.co"},
			"password": {"Abcdef12"},
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("formulario incompleto", func(t *testing.T) {
		rec, _ := postForm(t, h, "/api/auth/login", url.Values{
			"username": {"juan.perez@estudiantes.uniempresarial.edu.co"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListarCatalogos(t *testing.T) {
	h := newTestHandler(t, &mockIdentityStore{}, &mockSessionStore{})

	t.Run("programas", func(t *testing.T) {
		rec, resp := doRequest(t, h, http.MethodGet, "/api/auth/programas", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var data struct {
			Programas []string `json:"programas"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Len(t, data.Programas, 10)
		assert.Equal(t, "Administración de Empresas", data.Programas[0])
	})

	t.Run("cargos", func(t *testing.T) {
		rec, resp := doRequest(t, h, http.MethodGet, "/api/auth/cargos", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var data struct {
			Cargos []string `json:"cargos"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Len(t, data.Cargos, 15)
		assert.Equal(t, "Otro", data.Cargos[14])
	})
}

func TestAuthMiddleware(t *testing.T) {
	sessionStore := loginSessionStore(t)
	h := newTestHandler(t, &mockIdentityStore{}, sessionStore)

	t.Run("sin token", func(t *testing.T) {
		rec, resp := doRequest(t, h, http.MethodGet, "/api/dashboard/alertas", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Usuario no autenticado", resp.Message)
	})

	t.Run("token invalido", func(t *testing.T) {
		rec, _ := doRequest(t, h, http.MethodGet, "/api/dashboard/alertas", nil, http.Header{
			"Authorization": {"Bearer no-es-un-token"},
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rol sin permisos", func(t *testing.T) {
		// El token es válido pero pertenece a un estudiante, y el tablero es
		// solo para el personal
		token, _, err := h.sessions.IssueToken(sessionStore.identity)
		require.NoError(t, err)

		rec, resp := doRequest(t, h, http.MethodGet, "/api/dashboard/alertas", nil, http.Header{
			"Authorization": {"Bearer " + token},
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Permisos insuficientes", resp.Message)
	})
}
