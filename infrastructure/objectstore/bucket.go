package objectstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/vfg2006/billing-status-sync/internal/config"
)

const (
	SchemeGCS   = "gs"
	SchemeS3    = "s3"
	SchemeLocal = "file"
)

var (
	ErrObjectNotFound    = errors.New("objeto não encontrado")
	ErrUnsupportedScheme = errors.New("esquema de armazenamento não suportado")
	ErrInvalidLocation   = errors.New("localização de armazenamento inválida")
)

// Bucket é um diretório plano de objetos; nomes são relativos à localização
type Bucket interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	Location() string
	Close() error
}

type location struct {
	Scheme string
	Bucket string
	Prefix string
}

func (l location) String() string {
	if l.Scheme == SchemeLocal {
		return l.Prefix
	}
	if l.Prefix == "" {
		return l.Scheme + "://" + l.Bucket
	}
	return l.Scheme + "://" + l.Bucket + "/" + l.Prefix
}

// key monta o nome completo do objeto dentro do bucket
func (l location) key(name string) string {
	if l.Prefix == "" {
		return name
	}
	return l.Prefix + "/" + name
}

// listPrefix é o prefixo usado na listagem, sempre terminado em "/"
func (l location) listPrefix() string {
	if l.Prefix == "" {
		return ""
	}
	return l.Prefix + "/"
}

func parseLocation(uri string) (location, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return location{}, ErrInvalidLocation
	}

	if !strings.Contains(uri, "://") {
		return location{Scheme: SchemeLocal, Prefix: strings.TrimRight(uri, "/")}, nil
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return location{}, fmt.Errorf("%w: %s", ErrInvalidLocation, err)
	}

	switch parsed.Scheme {
	case SchemeLocal:
		if parsed.Path == "" {
			return location{}, fmt.Errorf("%w: %s", ErrInvalidLocation, uri)
		}
		return location{Scheme: SchemeLocal, Prefix: strings.TrimRight(parsed.Path, "/")}, nil

	case SchemeGCS, SchemeS3:
		if parsed.Host == "" {
			return location{}, fmt.Errorf("%w: bucket ausente em %s", ErrInvalidLocation, uri)
		}
		return location{
			Scheme: parsed.Scheme,
			Bucket: parsed.Host,
			Prefix: strings.Trim(parsed.Path, "/"),
		}, nil
	}

	return location{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme)
}

// Open escolhe a implementação pelo esquema da URI do histórico
func Open(ctx context.Context, cfg *config.Config) (Bucket, error) {
	loc, err := parseLocation(cfg.Store.URI)
	if err != nil {
		return nil, err
	}

	switch loc.Scheme {
	case SchemeGCS:
		return newGCSBucket(ctx, loc, cfg.GCS)
	case SchemeS3:
		return newS3Bucket(ctx, loc, cfg.S3)
	default:
		return NewLocalBucket(loc.Prefix), nil
	}
}
