// Package store implementa registros tipados y versionados sobre un KVStore.
//
// Cada registro se persiste como un sobre JSON {"v": <versión>, "data": ...}.
// Un valor ausente, corrupto o escrito con otra versión se trata como
// ausencia y se reemplaza por el valor por defecto del registro.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ems-api/internal/domain/repository"
)

// Claves de almacenamiento.
const (
	KeyUsers      = "ems_users"
	KeyAttendance = "ems_attendance"
	KeyLeaves     = "ems_leaves"
	KeySettings   = "ems_settings"
	KeyCurrent    = "ems_current"
)

type envelope struct {
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

// Record registro con nombre, versión y valor por defecto.
type Record[T any] struct {
	kv      repository.KVStore
	key     string
	version int
	def     func() T
	log     zerolog.Logger
}

// NewRecord construye un registro tipado. def se invoca cada vez que se
// necesita el valor por defecto, así nunca se comparte entre llamadas.
func NewRecord[T any](kv repository.KVStore, key string, version int, def func() T, log zerolog.Logger) *Record[T] {
	return &Record[T]{kv: kv, key: key, version: version, def: def, log: log}
}

// Key nombre del registro.
func (r *Record[T]) Key() string { return r.key }

// Load lee y deserializa el valor. Solo retorna error si falla el backend.
func (r *Record[T]) Load(ctx context.Context) (T, error) {
	raw, err := r.kv.Get(ctx, r.key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("store: leer %s: %w", r.key, err)
	}
	if raw == nil {
		return r.def(), nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		r.log.Warn().Err(err).Str("key", r.key).Msg("valor corrupto, se usa el valor por defecto")
		return r.def(), nil
	}
	if env.Version != r.version {
		r.log.Warn().Str("key", r.key).Int("version", env.Version).Int("expected", r.version).
			Msg("versión desconocida, se usa el valor por defecto")
		return r.def(), nil
	}
	var v T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return r.def(), nil
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		r.log.Warn().Err(err).Str("key", r.key).Msg("valor corrupto, se usa el valor por defecto")
		return r.def(), nil
	}
	return v, nil
}

// Save serializa y persiste v reemplazando el valor anterior.
func (r *Record[T]) Save(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: serializar %s: %w", r.key, err)
	}
	raw, err := json.Marshal(envelope{Version: r.version, Data: data})
	if err != nil {
		return fmt.Errorf("store: serializar %s: %w", r.key, err)
	}
	if err := r.kv.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("store: escribir %s: %w", r.key, err)
	}
	return nil
}

// Clear elimina el registro.
func (r *Record[T]) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("store: borrar %s: %w", r.key, err)
	}
	return nil
}
