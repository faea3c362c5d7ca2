package renderer

import "fmt"

// RenderError reports a template/blueprint mismatch: an artifact body whose
// expansion referenced a key absent from the resolved environment, or a body
// that failed to parse or evaluate. It is fatal; answers alone cannot fix it.
type RenderError struct {
	ArtifactPath string
	MissingKey   string
	Detail       string
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.MissingKey != "" {
		return fmt.Sprintf("artifact %q: template references %q, which is not present in the resolved environment", e.ArtifactPath, e.MissingKey)
	}
	return fmt.Sprintf("artifact %q: %s", e.ArtifactPath, e.Detail)
}

// ErrorKind identifies the error taxonomy entry for CLI exit-code mapping.
func (e *RenderError) ErrorKind() string { return "render_error" }
