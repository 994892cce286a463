package printing

import (
	"fmt"
	"strings"

	appcontract "github.com/rentals/backend/internal/application/contract"
	"github.com/rentals/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Renderer names accepted in configuration
const (
	RendererFPDF     = "gofpdf"
	RendererChromedp = "chromedp"
)

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout  = "RENDER_TIMEOUT"
	ErrCodeRenderFailed   = "RENDER_FAILED"
	ErrCodeTemplateFailed = "TEMPLATE_FAILED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// New returns the renderer selected by cfg.Renderer. The returned close
// function releases browser resources and is never nil.
func New(cfg config.PDFConfig, logger *zap.Logger) (appcontract.Renderer, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(cfg.Renderer) {
	case "", RendererFPDF:
		return NewFPDFRenderer(), func() error { return nil }, nil
	case RendererChromedp:
		r, err := NewChromedpRenderer(&ChromedpConfig{
			DefaultTimeout: cfg.Timeout,
			RemoteURL:      cfg.ChromeURL,
			NoSandbox:      true,
			Logger:         logger,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported pdf renderer %q", cfg.Renderer)
	}
}
