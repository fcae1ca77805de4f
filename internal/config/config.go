// Package config provides configuration management for the PDF translation pipeline.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"pdf-to-english/internal/logger"
	"pdf-to-english/internal/types"
)

const (
	// DefaultConfigFileName is the default configuration file name
	DefaultConfigFileName = "pdf-to-english-config.json"
	// EnvMistralAPIKey is the environment variable name for the Mistral API key
	EnvMistralAPIKey = "MISTRAL_API_KEY"
	// EnvMistralBaseURL is the environment variable name for the Mistral base URL
	EnvMistralBaseURL = "MISTRAL_BASE_URL"
	// DefaultBaseURL is the default Mistral API base URL
	DefaultBaseURL = "https://api.mistral.ai/v1"
	// DefaultOCRModel is the default OCR model
	DefaultOCRModel = "mistral-ocr-latest"
	// DefaultChatModel is the default chat model used for translation
	DefaultChatModel = "mistral-large-latest"
	// DefaultTargetLanguage is the language documents are translated into
	DefaultTargetLanguage = "English"
	// DefaultRendererCmd is the default external HTML-to-PDF renderer
	DefaultRendererCmd = "weasyprint"
	// DefaultOutputDir is the default directory for generated PDFs
	DefaultOutputDir = "output_pdfs"
)

// Manager manages application configuration
type Manager struct {
	configPath string
	config     *types.Config
}

// NewManager creates a new Manager with the specified config path.
// If configPath is empty, it uses the default path in the user's home directory.
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			logger.Error("failed to get user home directory", err)
			return nil, types.NewAppError(types.ErrConfig, "failed to get user home directory", err)
		}
		configPath = filepath.Join(homeDir, ".config", "pdf-to-english", DefaultConfigFileName)
	}

	logger.Info("config manager initialized", logger.String("configPath", configPath))
	return &Manager{
		configPath: configPath,
		config:     defaultConfig(),
	}, nil
}

// defaultConfig returns a Config with default values
func defaultConfig() *types.Config {
	return &types.Config{
		MistralAPIKey:  "",
		MistralBaseURL: DefaultBaseURL,
		OCRModel:       DefaultOCRModel,
		ChatModel:      DefaultChatModel,
		SourceLanguage: "",
		TargetLanguage: DefaultTargetLanguage,
		RendererCmd:    DefaultRendererCmd,
		OutputDir:      DefaultOutputDir,
	}
}

// Load loads configuration from the config file.
// If the file doesn't exist, it uses default values.
// Environment variables take precedence for the API key if the file value is empty.
func (m *Manager) Load() error {
	logger.Debug("loading configuration", logger.String("path", m.configPath))

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("config file not found, using defaults", logger.String("path", m.configPath))
			m.config = defaultConfig()
		} else {
			logger.Error("failed to read config file", err, logger.String("path", m.configPath))
			return types.NewAppError(types.ErrConfig, "failed to read config file", err)
		}
	} else {
		config := &types.Config{}
		if err := json.Unmarshal(data, config); err != nil {
			logger.Warn("invalid config file format, using defaults", logger.String("path", m.configPath), logger.Err(err))
			m.config = defaultConfig()
		} else {
			logger.Info("configuration loaded",
				logger.String("path", m.configPath),
				logger.Int("apiKeyLength", len(config.MistralAPIKey)),
				logger.String("baseURL", config.MistralBaseURL),
				logger.String("chatModel", config.ChatModel))
			m.config = config
		}
	}

	// Apply defaults for empty fields
	if m.config.MistralBaseURL == "" {
		m.config.MistralBaseURL = DefaultBaseURL
	}
	if m.config.OCRModel == "" {
		m.config.OCRModel = DefaultOCRModel
	}
	if m.config.ChatModel == "" {
		m.config.ChatModel = DefaultChatModel
	}
	if m.config.TargetLanguage == "" {
		m.config.TargetLanguage = DefaultTargetLanguage
	}
	if m.config.RendererCmd == "" {
		m.config.RendererCmd = DefaultRendererCmd
	}
	if m.config.OutputDir == "" {
		m.config.OutputDir = DefaultOutputDir
	}

	return nil
}

// Save saves the current configuration to the config file.
func (m *Manager) Save() error {
	logger.Debug("saving configuration", logger.String("path", m.configPath))

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("failed to create config directory", err, logger.String("dir", dir))
		return types.NewAppError(types.ErrConfig, "failed to create config directory", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		logger.Error("failed to marshal config", err)
		return types.NewAppError(types.ErrConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		logger.Error("failed to write config file", err, logger.String("path", m.configPath))
		return types.NewAppError(types.ErrConfig, "failed to write config file", err)
	}

	logger.Info("configuration saved", logger.String("path", m.configPath))
	return nil
}

// GetAPIKey returns the Mistral API key.
// It first checks the config file value, then falls back to the environment variable.
func (m *Manager) GetAPIKey() string {
	if m.config != nil && m.config.MistralAPIKey != "" {
		return m.config.MistralAPIKey
	}
	return os.Getenv(EnvMistralAPIKey)
}

// SetAPIKey sets the Mistral API key and saves the configuration.
func (m *Manager) SetAPIKey(key string) error {
	logger.Info("setting API key")
	if m.config == nil {
		m.config = defaultConfig()
	}
	m.config.MistralAPIKey = key
	return m.Save()
}

// GetBaseURL returns the Mistral API base URL.
// It first checks the config file value, then the environment variable.
func (m *Manager) GetBaseURL() string {
	if m.config != nil && m.config.MistralBaseURL != "" {
		return m.config.MistralBaseURL
	}
	if envURL := os.Getenv(EnvMistralBaseURL); envURL != "" {
		return envURL
	}
	return DefaultBaseURL
}

// GetOCRModel returns the OCR model name.
func (m *Manager) GetOCRModel() string {
	if m.config != nil && m.config.OCRModel != "" {
		return m.config.OCRModel
	}
	return DefaultOCRModel
}

// GetChatModel returns the chat model used for translation.
func (m *Manager) GetChatModel() string {
	if m.config != nil && m.config.ChatModel != "" {
		return m.config.ChatModel
	}
	return DefaultChatModel
}

// GetSourceLanguage returns the configured source language, empty for auto.
func (m *Manager) GetSourceLanguage() string {
	if m.config != nil {
		return m.config.SourceLanguage
	}
	return ""
}

// GetTargetLanguage returns the configured target language.
func (m *Manager) GetTargetLanguage() string {
	if m.config != nil && m.config.TargetLanguage != "" {
		return m.config.TargetLanguage
	}
	return DefaultTargetLanguage
}

// GetRendererCmd returns the external renderer command.
func (m *Manager) GetRendererCmd() string {
	if m.config != nil && m.config.RendererCmd != "" {
		return m.config.RendererCmd
	}
	return DefaultRendererCmd
}

// GetOutputDir returns the output directory for generated PDFs.
func (m *Manager) GetOutputDir() string {
	if m.config != nil && m.config.OutputDir != "" {
		return m.config.OutputDir
	}
	return DefaultOutputDir
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() *types.Config {
	if m.config == nil {
		return defaultConfig()
	}
	return m.config
}

// SetConfig sets the entire configuration.
func (m *Manager) SetConfig(config *types.Config) {
	m.config = config
}

// GetConfigPath returns the path to the config file.
func (m *Manager) GetConfigPath() string {
	return m.configPath
}
