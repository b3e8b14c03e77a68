package htmlpatch

import (
	"context"

	"github.com/alnah/go-htmlpatch/internal/pipeline"
)

// Service runs the metadata and ARIA stages over a page.
type Service struct {
	site      Site
	labels    Labels
	metadata  pipeline.MetadataInjector
	annotator pipeline.AccessibilityAnnotator
}

// Option configures a Service.
type Option func(*Service)

// WithSite sets the site-wide metadata values.
// Empty Card and Type keep their defaults.
func WithSite(site Site) Option {
	return func(s *Service) {
		if site.Card == "" {
			site.Card = s.site.Card
		}
		if site.Type == "" {
			site.Type = s.site.Type
		}
		s.site = site
	}
}

// WithLabels sets the accessible names used by the ARIA stage.
func WithLabels(labels Labels) Option {
	return func(s *Service) {
		s.labels = labels
	}
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		site:     DefaultSite(),
		metadata: pipeline.NewMetadataInjection(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create annotator if not injected (e.g., by tests)
	if s.annotator == nil {
		s.annotator = pipeline.NewARIAAnnotation(pipeline.ARIALabels{
			MainNav:   s.labels.MainNav,
			MobileNav: s.labels.MobileNav,
			Toggle:    s.labels.Toggle,
		})
	}

	return s
}

// Patch injects metadata then ARIA attributes into input.HTML.
// A page with nothing to add comes back with Changed() == false.
// The context is checked between stages.
func (s *Service) Patch(ctx context.Context, input Input) (*Result, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	result := &Result{}

	// Inject metadata
	htmlContent := s.metadata.InjectMetadata(ctx, input.HTML, &pipeline.MetadataData{
		Title:       input.Page.Title,
		Description: input.Page.Description,
		Type:        s.site.Type,
		SiteName:    s.site.Name,
		Card:        s.site.Card,
		Handle:      s.site.Handle,
	})
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	result.MetadataInjected = htmlContent != input.HTML

	// Annotate
	annotated := s.annotator.Annotate(ctx, htmlContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	result.Annotated = annotated != htmlContent
	result.HTML = annotated

	return result, nil
}

// validateInput checks required fields.
func (s *Service) validateInput(input Input) error {
	if input.HTML == "" {
		return ErrEmptyHTML
	}
	if input.Page.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}
