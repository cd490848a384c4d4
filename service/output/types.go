package output

import (
	"github.com/sentinelsec/sg-sentinel/model"
	jsonoutput "github.com/sentinelsec/sg-sentinel/shared/json_output"
	securitytable "github.com/sentinelsec/sg-sentinel/shared/security_table"
	"github.com/sentinelsec/sg-sentinel/shared/spinner"
)

// Format represents the output format type.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Renderer defines the interface for drawing the scan report.
type Renderer interface {
	DrawSecurityTable(input model.RenderSecurityInput)
	OutputSecurityJSON(input model.RenderSecurityInput) error
	WriteSecurityJSON(input model.RenderSecurityInput, path string) error
	StopSpinner()
}

type realRenderer struct{}

func (r *realRenderer) DrawSecurityTable(input model.RenderSecurityInput) {
	securitytable.DrawSecurityTable(input)
}

func (r *realRenderer) OutputSecurityJSON(input model.RenderSecurityInput) error {
	return jsonoutput.OutputSecurityJSON(input)
}

func (r *realRenderer) WriteSecurityJSON(input model.RenderSecurityInput, path string) error {
	return jsonoutput.WriteSecurityJSON(input, path)
}

func (r *realRenderer) StopSpinner() {
	spinner.StopSpinner()
}

type service struct {
	format     Format
	outputFile string
	renderer   Renderer
}

// Service defines the interface for output operations.
type Service interface {
	RenderSecurity(input model.RenderSecurityInput) error
	StopSpinner()
}
