package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("solicitud procesada", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // con slog quedaría ilegible
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// El token viaja en el encabezado Authorization como bearer
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.unauthorized(w, r, "Usuario no autenticado")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			h.unauthorized(w, r, "Usuario no autenticado")
			return
		}

		claims, err := h.sessions.VerifyToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				slog.Info("token expirado", "path", r.URL.Path)
			default:
				slog.Info("token inválido", "path", r.URL.Path)
			}
			// Ambos casos producen la misma respuesta no autenticada
			h.unauthorized(w, r, err.Error())
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RolCtxKey, claims.Rol)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)
		ctx = context.WithValue(ctx, UserIDCtxKey, claims.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub := r.Context().Value(SubCtxKey).(string)

		myInfo, err := h.repository.GetIdentityByEmail(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.unauthorized(w, r, "La cuenta ya no existe")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, myInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) RequiredRol(roles []domain.Rol) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rol := r.Context().Value(RolCtxKey).(domain.Rol)
			if !slices.Contains(roles, rol) {
				h.errorResponse(w, r, http.StatusForbidden, "Permisos insuficientes")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
