package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STUDYMASTER_AI_API_KEY", "OPENROUTER_API_KEY", "OPENAI_API_KEY", "STUDYMASTER_AI_MODEL", "PORT", "DB_PASSWORD"} {
		t.Setenv(key, "")
	}
}

func defaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			File: filepath.Join("studymaster", "workspace.json"),
		},
		AI: AIConfig{
			BaseURL:       "https://openrouter.ai/api/v1",
			Model:         "mistralai/mistral-7b-instruct:free",
			Temperature:   0.3,
			RetryAttempts: 3,
		},
		Quiz: QuizConfig{
			Mode:         "adaptive",
			MaxQuestions: 10,
		},
		Server: ServerConfig{
			Port: 3001,
			CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
		Database: DatabaseConfig{
			Driver:   "sqlite",
			Path:     filepath.Join("studymaster", "studymaster.db"),
			Host:     "localhost",
			Port:     3306,
			Database: "studymaster",
			Username: "user",
		},
		Outputs: OutputsConfig{
			PDFDirectory:    filepath.Join("outputs", "pdf"),
			ExportDirectory: filepath.Join("outputs", "export"),
		},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `workspace:
  file: data/me.yml
ai:
  model: openai/gpt-4o-mini
  retry_attempts: 1
quiz:
  mode: difficult
  max_questions: 20
server:
  port: 8080
  cors:
    allowed_origins:
      - https://example.com
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Workspace.File = "data/me.yml"
				cfg.AI.Model = "openai/gpt-4o-mini"
				cfg.AI.RetryAttempts = 1
				cfg.Quiz = QuizConfig{Mode: "difficult", MaxQuestions: 20}
				cfg.Server = ServerConfig{Port: 8080, CORS: CORSConfig{AllowedOrigins: []string{"https://example.com"}}}
				return cfg
			},
		},
		{
			name: "explicit config file path",
			configContent: `database:
  driver: mysql
  host: db
  database: study
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Driver = "mysql"
				cfg.Database.Host = "db"
				cfg.Database.Database = "study"
				return cfg
			},
		},
		{
			name: "environment variables",
			env: map[string]string{
				"OPENROUTER_API_KEY": "router-key",
				"OPENAI_API_KEY":     "openai-key",
				"PORT":               "4000",
				"DB_PASSWORD":        "secret",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.AI.APIKey = "router-key"
				cfg.Server.Port = 4000
				cfg.Database.Password = "secret"
				return cfg
			},
		},
		{
			name: "studymaster key wins",
			env: map[string]string{
				"STUDYMASTER_AI_API_KEY": "own-key",
				"OPENAI_API_KEY":         "openai-key",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.AI.APIKey = "own-key"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `workspace:
  file: custom.json
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "invalid values",
			configContent: `quiz:
  mode: hardest
  max_questions: 0
ai:
  base_url: not a url
  system_prompt_file: missing.txt
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"mode must be one of [adaptive difficult random]",
				"max_questions must be 1 or greater",
				"base_url must be a valid URL",
				"must be an existing and readable file",
			},
		},
		{
			name: "values out of range",
			configContent: `workspace:
  file: ""
ai:
  temperature: 3
  retry_attempts: 11
database:
  driver: postgres
`,
			wantErr: true,
			wantErrorContains: []string{
				"workspace.file is required",
				"ai.temperature must be 2 or less",
				"ai.retry_attempts must be 10 or less",
				"database.driver must be one of [mysql sqlite]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			tempDir := t.TempDir()

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "studymaster.yml")
				err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
				require.NoError(t, err)
			} else {
				if tt.configContent != "" {
					err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644)
					require.NoError(t, err)
				}
				t.Chdir(tempDir)
			}

			got, err := Load(configPath)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestLoad_SystemPromptFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	promptFile := filepath.Join(dir, "prompt.txt")
	require.NoError(t, os.WriteFile(promptFile, []byte("Be brief."), 0644))

	configPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("ai:\n  system_prompt_file: "+promptFile+"\n"), 0644))

	got, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, promptFile, got.AI.SystemPromptFile)
}

func TestLoad_SQLiteNeedsPath(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("database:\n  driver: sqlite\n  path: \"\"\n"), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.path is required when driver is sqlite")
}
