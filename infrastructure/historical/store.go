package historical

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/vfg2006/billing-status-sync/infrastructure/objectstore"
	"github.com/vfg2006/billing-status-sync/internal/domain"
	"github.com/vfg2006/billing-status-sync/pkg/log"
)

var ErrInvalidPattern = errors.New("padrão de artefatos inválido")

// Store lê e regrava a tabela histórica como um único artefato Parquet
type Store struct {
	bucket     objectstore.Bucket
	pattern    string
	objectName string
}

func NewStore(bucket objectstore.Bucket, pattern, objectName string) (*Store, error) {
	if _, err := path.Match(pattern, objectName); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	return &Store{
		bucket:     bucket,
		pattern:    pattern,
		objectName: objectName,
	}, nil
}

func (s *Store) Location() string {
	return s.bucket.Location()
}

// ListArtifacts devolve os objetos que casam com o padrão, em ordem
func (s *Store) ListArtifacts(ctx context.Context) ([]string, error) {
	names, err := s.bucket.List(ctx)
	if err != nil {
		return nil, err
	}

	var artifacts []string
	for _, name := range names {
		matched, err := path.Match(s.pattern, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, s.pattern)
		}
		if matched {
			artifacts = append(artifacts, name)
		}
	}
	sort.Strings(artifacts)

	return artifacts, nil
}

// Load lê todos os artefatos. Sem artefatos, devolve um snapshot vazio.
// Chaves repetidas entre artefatos mantêm o registro de maior updated_at.
func (s *Store) Load(ctx context.Context) (*domain.HistoricalSnapshot, error) {
	logger := log.ForContext(ctx).WithField("location", s.Location())

	artifacts, err := s.ListArtifacts(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.HistoricalSnapshot{Artifacts: artifacts}
	if len(artifacts) == 0 {
		logger.Info("Nenhum artefato histórico encontrado")
		return snapshot, nil
	}

	position := make(map[string]int)
	duplicates := 0

	for _, name := range artifacts {
		rows, err := s.readArtifact(ctx, name)
		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			record := fromRow(row)
			i, seen := position[record.InvoiceID]
			if !seen {
				position[record.InvoiceID] = len(snapshot.Records)
				snapshot.Records = append(snapshot.Records, record)
				continue
			}

			duplicates++
			if record.UpdatedAt.After(snapshot.Records[i].UpdatedAt) {
				snapshot.Records[i] = record
			}
		}
	}

	if duplicates > 0 {
		logger.WithField("duplicates", duplicates).Warn("Registros duplicados no histórico, mantendo o mais recente")
	}

	logger.WithFields(log.Fields{
		"artifacts": len(artifacts),
		"rows":      len(snapshot.Records),
	}).Info("Histórico carregado")

	return snapshot, nil
}

func (s *Store) readArtifact(ctx context.Context, name string) ([]invoiceRow, error) {
	data, err := s.bucket.Read(ctx, name)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		log.ForContext(ctx).WithField("artifact", name).Warn("Artefato vazio ignorado")
		return nil, nil
	}

	rows, err := parquet.Read[invoiceRow](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("erro ao decodificar %s: %w", name, err)
	}

	return rows, nil
}

// Write grava o histórico completo no artefato canônico e só então remove
// os demais artefatos listados em replaces.
func (s *Store) Write(ctx context.Context, records []domain.InvoiceRecord, replaces []string) (string, error) {
	logger := log.ForContext(ctx).WithField("location", s.Location())

	data, err := encode(records)
	if err != nil {
		return "", err
	}

	if err := s.bucket.Write(ctx, s.objectName, data); err != nil {
		return "", err
	}

	logger.WithFields(log.Fields{
		"artifact": s.objectName,
		"rows":     len(records),
		"bytes":    len(data),
	}).Info("Histórico gravado")

	for _, name := range replaces {
		if name == s.objectName {
			continue
		}
		if err := s.bucket.Delete(ctx, name); err != nil {
			// a próxima leitura resolve as duplicatas que sobrarem
			logger.WithError(err).WithField("artifact", name).Warn("Falha ao remover artefato antigo")
			continue
		}
		logger.WithField("artifact", name).Info("Artefato antigo removido")
	}

	return s.objectName, nil
}

func encode(records []domain.InvoiceRecord) ([]byte, error) {
	rows := make([]invoiceRow, len(records))
	for i, record := range records {
		rows[i] = toRow(record)
	}

	var buf bytes.Buffer
	w := parquet.NewGenericWriter[invoiceRow](&buf, parquet.Compression(&parquet.Snappy))

	if _, err := w.Write(rows); err != nil {
		return nil, fmt.Errorf("erro ao codificar histórico: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("erro ao finalizar histórico: %w", err)
	}

	return buf.Bytes(), nil
}
