package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/vfg2006/billing-status-sync/pkg/utils"
)

type LocalBucket struct {
	dir string
}

func NewLocalBucket(dir string) *LocalBucket {
	return &LocalBucket{dir: dir}
}

// List devolve apenas arquivos regulares; diretório inexistente equivale a vazio
func (b *LocalBucket) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao listar %s: %w", b.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

func (b *LocalBucket) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(b.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
		}
		return nil, fmt.Errorf("erro ao ler %s: %w", name, err)
	}

	return data, nil
}

// Write grava em um arquivo temporário no mesmo diretório e renomeia por cima do destino
func (b *LocalBucket) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("erro ao criar diretório %s: %w", b.dir, err)
	}

	suffix, err := utils.GenerateID()
	if err != nil {
		return fmt.Errorf("erro ao gerar nome temporário: %w", err)
	}
	tmpPath := filepath.Join(b.dir, "."+name+"."+suffix+".tmp")

	if err := writeFileSync(tmpPath, data); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("erro ao gravar %s: %w", name, err)
	}

	if err := os.Rename(tmpPath, filepath.Join(b.dir, name)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("erro ao publicar %s: %w", name, err)
	}

	return nil
}

func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func (b *LocalBucket) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(b.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("erro ao remover %s: %w", name, err)
	}
	return nil
}

func (b *LocalBucket) Location() string {
	return b.dir
}

func (b *LocalBucket) Close() error {
	return nil
}
