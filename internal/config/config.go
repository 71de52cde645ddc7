package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	AI        AIConfig        `mapstructure:"ai"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
}

type WorkspaceConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

type AIConfig struct {
	BaseURL          string  `mapstructure:"base_url" validate:"omitempty,url"`
	ProxyURL         string  `mapstructure:"proxy_url" validate:"omitempty,url"`
	APIKey           string  `mapstructure:"api_key"`
	Model            string  `mapstructure:"model" validate:"required"`
	Temperature      float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	RetryAttempts    uint    `mapstructure:"retry_attempts" validate:"lte=10"`
	SystemPromptFile string  `mapstructure:"system_prompt_file" validate:"omitempty,file"`
}

type QuizConfig struct {
	Mode         string `mapstructure:"mode" validate:"oneof=adaptive difficult random"`
	MaxQuestions int    `mapstructure:"max_questions" validate:"gte=1,lte=100"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gte=1,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type OutputsConfig struct {
	PDFDirectory    string `mapstructure:"pdf_directory"`
	ExportDirectory string `mapstructure:"export_directory"`
	// TemplateFile overrides the embedded markdown template of printable sets.
	TemplateFile string `mapstructure:"template_file" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studymaster")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// Load reads the configuration file at path, or searches the default
// locations when path is empty.
func Load(path string) (*Config, error) {
	loader, err := NewConfigLoader(path)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("workspace.file", filepath.Join("studymaster", "workspace.json"))
	v.SetDefault("ai.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.model", "mistralai/mistral-7b-instruct:free")
	v.SetDefault("ai.temperature", 0.3)
	v.SetDefault("ai.retry_attempts", 3)
	v.SetDefault("quiz.mode", "adaptive")
	v.SetDefault("quiz.max_questions", 10)
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", filepath.Join("studymaster", "studymaster.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "studymaster")
	v.SetDefault("database.username", "user")
	v.SetDefault("outputs.pdf_directory", filepath.Join("outputs", "pdf"))
	v.SetDefault("outputs.export_directory", filepath.Join("outputs", "export"))

	// The API key is read from the environment only, the first variable set wins
	if err := v.BindEnv("ai.api_key", "STUDYMASTER_AI_API_KEY", "OPENROUTER_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind AI API key environment variables: %w", err)
	}
	if err := v.BindEnv("ai.model", "STUDYMASTER_AI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind STUDYMASTER_AI_MODEL environment variable: %w", err)
	}
	if err := v.BindEnv("server.port", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind PORT environment variable: %w", err)
	}

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
