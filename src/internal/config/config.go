package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=bank_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"

const (
	SnapshotBackendFile     = "file"
	SnapshotBackendPostgres = "postgres"
)

type Config struct {
	SnapshotBackend     string
	DataDir             string
	DatabaseDSN         string
	MigrationsDir       string
	DefaultBankName     string
	AccountNumberLength int
	LogLevel            string
	LogFormat           string
}

// Load reads configuration from an optional config.yaml in the working
// directory, overridden by BANK_-prefixed environment variables. Every key has
// a usable default; a missing config file is not an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("BANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("snapshot.backend", SnapshotBackendFile)
	v.SetDefault("snapshot.data_dir", "data")
	v.SetDefault("database.dsn", defaultConnectionString)
	v.SetDefault("database.migrations_dir", filepath.Join("src", "migrations"))
	v.SetDefault("bank.default_name", "SBI")
	v.SetDefault("bank.account_number_length", 12)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("snapshot.backend")))
	if backend != SnapshotBackendPostgres {
		backend = SnapshotBackendFile
	}

	return Config{
		SnapshotBackend:     backend,
		DataDir:             strings.TrimSpace(v.GetString("snapshot.data_dir")),
		DatabaseDSN:         normalizeConnectionString(strings.TrimSpace(v.GetString("database.dsn"))),
		MigrationsDir:       strings.TrimSpace(v.GetString("database.migrations_dir")),
		DefaultBankName:     strings.TrimSpace(v.GetString("bank.default_name")),
		AccountNumberLength: v.GetInt("bank.account_number_length"),
		LogLevel:            strings.TrimSpace(v.GetString("log.level")),
		LogFormat:           strings.TrimSpace(v.GetString("log.format")),
	}, nil
}

// normalizeConnectionString accepts both lib/pq keyword DSNs and
// semicolon-separated "Host=...;Port=..." strings, normalizing the latter to
// the keyword form.
func normalizeConnectionString(raw string) string {
	if !strings.Contains(raw, ";") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
