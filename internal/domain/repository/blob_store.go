package repository

import "context"

// BlobStore define el puerto de persistencia clave-valor (DIP).
// Get devuelve found=false cuando la clave no existe; Set sobrescribe sin
// control de versiones (last-write-wins).
type BlobStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
