package syncing

import (
	"io"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/billing-status-sync/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteReport serializa o relatório em JSON indentado
func WriteReport(w io.Writer, report domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// SaveReport grava o relatório em path, criando o diretório se preciso
func SaveReport(path string, report domain.RunReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteReport(f, report); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
