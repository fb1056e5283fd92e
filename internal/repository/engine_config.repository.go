package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/krobus00/pairsync-service/internal/entity"
)

// EngineConfigRepository reads and rewrites the engine's JSON config file.
// Writes go through a temp file in the same directory plus a rename, so a
// crashed cycle can never leave a half-written config behind.
type EngineConfigRepository struct {
	path string
}

func NewEngineConfigRepository(path string) *EngineConfigRepository {
	return &EngineConfigRepository{path: path}
}

func (r *EngineConfigRepository) Load() (*entity.EngineConfigDocument, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, &entity.ConfigIOError{Path: r.path, Op: "read", Err: err}
	}

	doc, err := entity.ParseEngineConfigDocument(data)
	if err != nil {
		return nil, &entity.ConfigIOError{Path: r.path, Op: "parse", Err: err}
	}

	return doc, nil
}

func (r *EngineConfigRepository) Save(doc *entity.EngineConfigDocument) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return &entity.ConfigIOError{Path: r.path, Op: "write", Err: err}
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(doc.Encode())
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Chmod(tmpPath, 0o644)
	}
	if writeErr == nil {
		writeErr = os.Rename(tmpPath, r.path)
	}
	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return &entity.ConfigIOError{Path: r.path, Op: "write", Err: fmt.Errorf("persist config: %w", writeErr)}
	}

	return nil
}
