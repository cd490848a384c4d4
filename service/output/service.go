// Package output provides a service for rendering results to the console.
package output

import (
	"github.com/sentinelsec/sg-sentinel/model"
)

// NewService creates a new output service with the specified format. A
// non-empty outputFile redirects the JSON report to that path.
func NewService(format, outputFile string) Service {
	f := FormatTable
	if format == "json" {
		f = FormatJSON
	}

	return &service{
		format:     f,
		outputFile: outputFile,
		renderer:   &realRenderer{},
	}
}

// NewServiceWithRenderer creates an output service with a provided renderer
// (for testing).
func NewServiceWithRenderer(format Format, outputFile string, renderer Renderer) Service {
	return &service{
		format:     format,
		outputFile: outputFile,
		renderer:   renderer,
	}
}

func (s *service) RenderSecurity(input model.RenderSecurityInput) error {
	if s.outputFile != "" {
		if err := s.renderer.WriteSecurityJSON(input, s.outputFile); err != nil {
			return err
		}

		// Table output still goes to the console alongside the report file.
		if s.format == FormatJSON {
			return nil
		}
	} else if s.format == FormatJSON {
		return s.renderer.OutputSecurityJSON(input)
	}

	s.renderer.DrawSecurityTable(input)

	return nil
}

func (s *service) StopSpinner() {
	s.renderer.StopSpinner()
}
