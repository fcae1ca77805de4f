// Package types defines core data types and enums for the PDF translation pipeline.
package types

// Config holds the application configuration.
type Config struct {
	MistralAPIKey  string `json:"mistral_api_key"`
	MistralBaseURL string `json:"mistral_base_url"` // Base URL of the Mistral API
	OCRModel       string `json:"ocr_model"`        // OCR model name
	ChatModel      string `json:"chat_model"`       // Chat model used for translation
	SourceLanguage string `json:"source_language"`  // BCP-47 tag or plain language name
	TargetLanguage string `json:"target_language"`  // Defaults to English
	RendererCmd    string `json:"renderer_cmd"`     // External HTML-to-PDF renderer command
	OutputDir      string `json:"output_dir"`       // Directory for generated PDFs
}

// Stage is the pipeline stage enum.
type Stage string

const (
	StageIdle      Stage = "idle"
	StageOCR       Stage = "ocr"
	StageTranslate Stage = "translate"
	StageRender    Stage = "render"
	StageComplete  Stage = "complete"
	StageError     Stage = "error"
)

// Status reports pipeline progress to the caller.
type Status struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ErrorCode classifies application errors.
type ErrorCode string

const (
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrOCR          ErrorCode = "OCR_ERROR"
	ErrTranslation  ErrorCode = "TRANSLATION_ERROR"
	ErrRender       ErrorCode = "RENDER_ERROR"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrConfig       ErrorCode = "CONFIG_ERROR"
	ErrNetwork      ErrorCode = "NETWORK_ERROR"
)

// AppError is the application error type carrying a code and an optional cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface for AppError
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError with the given code, message, and optional cause
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewAppErrorWithDetails creates a new AppError with details
func NewAppErrorWithDetails(code ErrorCode, message, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}
