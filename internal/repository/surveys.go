package repository

import (
	"context"
	"time"

	"github.com/uniempresarial-dev/bienestar-who5/backend/internal/domain"
)

func (r *Repository) InsertEncuesta(e *domain.Encuesta) error {
	query := `
		INSERT INTO encuestas (user_id, r1, r2, r3, r4, r5, puntaje_bruto, porcentaje, alerta)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		e.UserID,
		e.Respuestas[0], e.Respuestas[1], e.Respuestas[2], e.Respuestas[3], e.Respuestas[4],
		e.PuntajeBruto, e.Porcentaje, e.Alerta,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetEncuestasByUser(userID int64) ([]*domain.Encuesta, error) {
	query := `
		SELECT id, user_id, r1, r2, r3, r4, r5, puntaje_bruto, porcentaje, alerta, created_at
		FROM encuestas
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	encuestas := make([]*domain.Encuesta, 0)
	for rows.Next() {
		e := &domain.Encuesta{}
		dst := []any{
			&e.ID, &e.UserID,
			&e.Respuestas[0], &e.Respuestas[1], &e.Respuestas[2], &e.Respuestas[3], &e.Respuestas[4],
			&e.PuntajeBruto, &e.Porcentaje, &e.Alerta, &e.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		encuestas = append(encuestas, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return encuestas, nil
}

type AlertaReciente struct {
	Encuesta  domain.Encuesta    `json:"encuesta"`
	Nombres   string             `json:"nombres"`
	Apellidos string             `json:"apellidos"`
	Correo    string             `json:"correo"`
	Tipo      domain.TipoUsuario `json:"tipo_usuario"`
}

func (r *Repository) GetAlertasRecientes(limit int) ([]*AlertaReciente, error) {
	query := `
		SELECT e.id, e.user_id, e.r1, e.r2, e.r3, e.r4, e.r5, e.puntaje_bruto, e.porcentaje, e.alerta, e.created_at,
		       u.nombres, u.apellidos, u.correo_institucional, u.tipo_usuario
		FROM encuestas e
		JOIN usuarios u ON u.id = e.user_id
		WHERE e.alerta
		ORDER BY e.created_at DESC
		LIMIT $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alertas := make([]*AlertaReciente, 0)
	for rows.Next() {
		a := &AlertaReciente{}
		e := &a.Encuesta
		dst := []any{
			&e.ID, &e.UserID,
			&e.Respuestas[0], &e.Respuestas[1], &e.Respuestas[2], &e.Respuestas[3], &e.Respuestas[4],
			&e.PuntajeBruto, &e.Porcentaje, &e.Alerta, &e.CreatedAt,
			&a.Nombres, &a.Apellidos, &a.Correo, &a.Tipo,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		alertas = append(alertas, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alertas, nil
}

func (r *Repository) CountEncuestas() (total int64, alertas int64, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE alerta)
		FROM encuestas
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query).Scan(&total, &alertas); err != nil {
		return 0, 0, err
	}

	return total, alertas, nil
}
