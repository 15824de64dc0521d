package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/vfg2006/billing-status-sync/internal/config"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type gcsBucket struct {
	client *storage.Client
	loc    location
}

func newGCSBucket(ctx context.Context, loc location, cfg config.GCS) (*gcsBucket, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente do GCS: %w", err)
	}

	return &gcsBucket{client: client, loc: loc}, nil
}

func (b *gcsBucket) List(ctx context.Context) ([]string, error) {
	prefix := b.loc.listPrefix()
	it := b.client.Bucket(b.loc.Bucket).Objects(ctx, &storage.Query{
		Prefix:    prefix,
		Delimiter: "/",
	})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao listar %s: %w", b.Location(), err)
		}
		// subdiretórios aparecem apenas com Prefix preenchido
		if attrs.Name == "" {
			continue
		}
		name := strings.TrimPrefix(attrs.Name, prefix)
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	return names, nil
}

func (b *gcsBucket) Read(ctx context.Context, name string) ([]byte, error) {
	r, err := b.client.Bucket(b.loc.Bucket).Object(b.loc.key(name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
		}
		return nil, fmt.Errorf("erro ao abrir %s: %w", name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler %s: %w", name, err)
	}

	return data, nil
}

// Write publica o objeto inteiro em um único upload; leitores nunca veem conteúdo parcial
func (b *gcsBucket) Write(ctx context.Context, name string, data []byte) error {
	w := b.client.Bucket(b.loc.Bucket).Object(b.loc.key(name)).NewWriter(ctx)
	w.ContentType = "application/octet-stream"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("erro ao enviar %s: %w", name, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("erro ao finalizar envio de %s: %w", name, err)
	}

	return nil
}

func (b *gcsBucket) Delete(ctx context.Context, name string) error {
	err := b.client.Bucket(b.loc.Bucket).Object(b.loc.key(name)).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("erro ao remover %s: %w", name, err)
	}
	return nil
}

func (b *gcsBucket) Location() string {
	return b.loc.String()
}

func (b *gcsBucket) Close() error {
	return b.client.Close()
}
