// Package localfile implementa el contrato de persistencia del Ledger Store
// sobre un archivo JSON local (el formato de snapshot de intercambio).
package localfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tu-usuario/caja-diaria/internal/domain/entity"
	"github.com/tu-usuario/caja-diaria/internal/domain/snapshot"
)

// Store persiste snapshots en un archivo.
type Store struct {
	path string
}

// New construye la persistencia sobre la ruta indicada.
func New(path string) *Store {
	return &Store{path: path}
}

// Save escribe el snapshot de forma atómica: archivo temporal en el mismo
// directorio y rename, así una caída a mitad de escritura nunca deja un
// archivo corrupto.
func (s *Store) Save(snap *entity.LedgerSnapshot) error {
	data, err := snapshot.Marshal(snap)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de datos: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("crear archivo temporal: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("escribir snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cerrar archivo temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("reemplazar archivo de datos: %w", err)
	}
	return nil
}

// Load lee y decodifica el snapshot. Si el archivo no existe todavía
// (primer arranque) devuelve un snapshot vacío.
func (s *Store) Load() (*entity.LedgerSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.NewLedgerSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer archivo de datos: %w", err)
	}
	return snapshot.Unmarshal(data)
}
