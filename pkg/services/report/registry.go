package report

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
)

// Renderer turns an analysis into a downloadable artefact.
type Renderer interface {
	Render(a *domain.Analysis) ([]byte, error)
	ContentType() string
	FileName(a *domain.Analysis) string
}

// Registry manages renderers by format name
type Registry interface {
	// Register adds a renderer for format
	Register(format string, r Renderer) error
	// Get returns the renderer registered for format
	Get(format string) (Renderer, error)
	// Formats lists registered formats in sorted order
	Formats() []string
}

type registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

func NewRegistry() Registry {
	return &registry{
		renderers: make(map[string]Renderer),
	}
}

// NewDefaultRegistry returns a registry with the csv and pdf renderers.
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register("csv", csvRenderer{})
	_ = r.Register("pdf", pdfRenderer{})
	return r
}

func (r *registry) Register(format string, renderer Renderer) error {
	if format == "" {
		return fmt.Errorf("format name cannot be empty")
	}
	if renderer == nil {
		return fmt.Errorf("renderer cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[format]; exists {
		return fmt.Errorf("format %q is already registered", format)
	}

	r.renderers[format] = renderer
	return nil
}

func (r *registry) Get(format string) (Renderer, error) {
	r.mu.RLock()
	renderer, exists := r.renderers[format]
	r.mu.RUnlock()

	if !exists {
		return nil, &domain.InvalidConfigurationError{Field: "format", Value: format, Reason: "unsupported report format"}
	}
	return renderer, nil
}

func (r *registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.renderers))
	for f := range r.renderers {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
