package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

var (
	ErrUnsupportedDriver = errors.New("driver de banco de origem não suportado")
	ErrMissingStoreURI   = errors.New("localização do histórico não configurada")
	ErrInvalidTimezone   = errors.New("fuso horário da origem inválido")
)

type Config struct {
	App     App     `mapstructure:",squash"`
	Source  Source  `mapstructure:",squash"`
	Store   Store   `mapstructure:",squash"`
	GCS     GCS     `mapstructure:",squash"`
	S3      S3      `mapstructure:",squash"`
	Metrics Metrics `mapstructure:",squash"`
}

type App struct {
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
	ReportPath string `mapstructure:"report_path"`
}

type Source struct {
	DSN      string         `mapstructure:"-"`
	Location *time.Location `mapstructure:"-"`
	Driver   string         `mapstructure:"source_database_driver"`
	Host     string         `mapstructure:"source_database_host"`
	Port     int            `mapstructure:"source_database_port"`
	User     string         `mapstructure:"source_database_user"`
	Password string         `mapstructure:"source_database_password"`
	Name     string         `mapstructure:"source_database_name"`
	Schema   string         `mapstructure:"source_database_schema"`
	Timezone string         `mapstructure:"source_database_timezone"`
	SSLMode  string         `mapstructure:"source_database_sslmode"`
}

type Store struct {
	URI        string `mapstructure:"historical_store_uri"`
	Pattern    string `mapstructure:"historical_store_pattern"`
	ObjectName string `mapstructure:"historical_store_object"`
}

type GCS struct {
	CredentialsFile string `mapstructure:"gcs_credentials_file"`
}

type S3 struct {
	Region       string `mapstructure:"s3_region"`
	Endpoint     string `mapstructure:"s3_endpoint"`
	AccessKey    string `mapstructure:"s3_access_key"`
	SecretKey    string `mapstructure:"s3_secret_key"`
	UsePathStyle bool   `mapstructure:"s3_use_path_style"`
}

type Metrics struct {
	PushgatewayURL string `mapstructure:"metrics_pushgateway_url"`
	JobName        string `mapstructure:"metrics_job_name"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("REPORT_PATH", "")

	v.SetDefault("SOURCE_DATABASE_DRIVER", DriverMySQL)
	v.SetDefault("SOURCE_DATABASE_HOST", "database-cluster.cluster-ro-abcd1234.us-east-1.rds.amazonaws.com")
	v.SetDefault("SOURCE_DATABASE_PORT", 3306)
	v.SetDefault("SOURCE_DATABASE_USER", "")
	v.SetDefault("SOURCE_DATABASE_PASSWORD", "")
	v.SetDefault("SOURCE_DATABASE_NAME", "onfly")
	v.SetDefault("SOURCE_DATABASE_SCHEMA", "onfly")
	v.SetDefault("SOURCE_DATABASE_TIMEZONE", "UTC")
	v.SetDefault("SOURCE_DATABASE_SSLMODE", "require") // apenas postgres

	v.SetDefault("HISTORICAL_STORE_URI", "gs://onfly-storage-tables/tables/billing_status_summary")
	v.SetDefault("HISTORICAL_STORE_PATTERN", "*.parquet")
	v.SetDefault("HISTORICAL_STORE_OBJECT", "billing_status_summary.parquet")

	v.SetDefault("GCS_CREDENTIALS_FILE", "") // vazio usa Application Default Credentials

	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("S3_USE_PATH_STYLE", false)

	v.SetDefault("METRICS_PUSHGATEWAY_URL", "") // vazio desabilita o envio
	v.SetDefault("METRICS_JOB_NAME", "billing_status_sync")
}

// bindLegacyEnv mantém compatibilidade com os nomes de variáveis do job anterior
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("source_database_user", "SOURCE_DATABASE_USER", "MYSQL_DB_USER")
	_ = v.BindEnv("source_database_password", "SOURCE_DATABASE_PASSWORD", "MYSQL_DB_PASSWORD")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	bindLegacyEnv(v)

	config := &Config{}
	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Source.DSN, err = config.Source.BuildDSN()
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Validate confere os campos obrigatórios e resolve o fuso horário da origem
func (c *Config) Validate() error {
	c.Source.Driver = strings.ToLower(strings.TrimSpace(c.Source.Driver))
	if c.Source.Driver != DriverMySQL && c.Source.Driver != DriverPostgres {
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Source.Driver)
	}

	if strings.TrimSpace(c.Store.URI) == "" {
		return ErrMissingStoreURI
	}

	loc, err := time.LoadLocation(c.Source.Timezone)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimezone, err)
	}
	c.Source.Location = loc

	return nil
}

// BuildDSN monta a string de conexão conforme o driver configurado
func (s Source) BuildDSN() (string, error) {
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))

	switch s.Driver {
	case DriverMySQL:
		cfg := mysql.NewConfig()
		cfg.User = s.User
		cfg.Passwd = s.Password
		cfg.Net = "tcp"
		cfg.Addr = addr
		cfg.DBName = s.Name
		// Timestamps chegam como texto e são convertidos pelo transformer
		cfg.ParseTime = false
		cfg.Loc = time.UTC
		// a sessão compara o watermark no mesmo fuso em que ele é formatado
		cfg.Params = map[string]string{"time_zone": s.mysqlTimeZone()}
		return cfg.FormatDSN(), nil

	case DriverPostgres:
		dsn := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(s.User, s.Password),
			Host:   addr,
			Path:   "/" + s.Name,
		}
		params := url.Values{}
		if s.SSLMode != "" {
			params.Set("sslmode", s.SSLMode)
		}
		params.Set("timezone", s.timezoneName())
		dsn.RawQuery = params.Encode()
		return dsn.String(), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, s.Driver)
}

func (s Source) timezoneName() string {
	if s.Location != nil {
		return s.Location.String()
	}
	if s.Timezone == "" {
		return "UTC"
	}
	return s.Timezone
}

// mysqlTimeZone usa offset para UTC, que não depende das tabelas de fuso do servidor
func (s Source) mysqlTimeZone() string {
	name := s.timezoneName()
	if name == "UTC" {
		return "'+00:00'"
	}
	return "'" + name + "'"
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Debug("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
