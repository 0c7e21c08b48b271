package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Storage engine names accepted in configuration.
const (
	EngineCSV    = "csv"
	EngineSQLite = "sqlite"
)

// StorageConfig selects the persistence engine and locates its backing files.
type StorageConfig struct {
	// Engine is "csv" (flat delimited files, the default) or "sqlite".
	Engine string `mapstructure:"engine" yaml:"engine"`

	// Dir is the directory holding the data files.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// UsersFile, TasksFile, and LogsFile are file names within Dir used by
	// the csv engine. UsersFile doubles as the seed source for the sqlite
	// engine on first run.
	UsersFile string `mapstructure:"users_file" yaml:"users_file"`
	TasksFile string `mapstructure:"tasks_file" yaml:"tasks_file"`
	LogsFile  string `mapstructure:"logs_file" yaml:"logs_file"`

	// SQLitePath is the database file name within Dir for the sqlite engine.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// RememberLogin controls whether the login form prefills the last
	// successfully used email address from the system keyring.
	RememberLogin bool `mapstructure:"remember_login" yaml:"remember_login"`
}

// UsersPath returns the absolute location of the users seed file.
func (c *AppConfig) UsersPath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.UsersFile)
}

// TasksPath returns the absolute location of the tasks file.
func (c *AppConfig) TasksPath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.TasksFile)
}

// LogsPath returns the absolute location of the logs file.
func (c *AppConfig) LogsPath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.LogsFile)
}

// SQLiteDBPath returns the absolute location of the sqlite database file.
func (c *AppConfig) SQLiteDBPath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.SQLitePath)
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tasktrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "tasktrack", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Engine:     EngineCSV,
			Dir:        "data",
			UsersFile:  "users.csv",
			TasksFile:  "tasks.csv",
			LogsFile:   "logs.csv",
			SQLitePath: "tasktrack.db",
		},
		RememberLogin: true,
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.engine", EngineCSV)
	v.SetDefault("storage.dir", "data")
	v.SetDefault("storage.users_file", "users.csv")
	v.SetDefault("storage.tasks_file", "tasks.csv")
	v.SetDefault("storage.logs_file", "logs.csv")
	v.SetDefault("storage.sqlite_path", "tasktrack.db")
	v.SetDefault("remember_login", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Storage.Engine != EngineCSV && cfg.Storage.Engine != EngineSQLite {
		return nil, fmt.Errorf("config %s: unknown storage engine %q", path, cfg.Storage.Engine)
	}

	return cfg, nil
}
