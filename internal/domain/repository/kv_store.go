package repository

import "context"

// KVStore define el puerto de persistencia clave-valor sobre el que viven
// todos los componentes (DIP). Los valores son bytes opacos.
type KVStore interface {
	// Get devuelve nil, nil si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set reemplaza cualquier valor previo de la clave.
	Set(ctx context.Context, key string, value []byte) error
	// Delete elimina la clave; no falla si no existe.
	Delete(ctx context.Context, key string) error
}
