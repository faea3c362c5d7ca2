package blueprint

import (
	"github.com/hashicorp/hcl/v2"
)

// ArtifactKind distinguishes file artifacts from directory artifacts.
type ArtifactKind string

const (
	ArtifactFile      ArtifactKind = "file"
	ArtifactDirectory ArtifactKind = "directory"
)

// Artifact is a candidate output file or directory. Its path is relative to
// the generation output root and is always slash-separated.
type Artifact struct {
	Path string
	Kind ArtifactKind

	// Source is a template path relative to the template root. Exactly one
	// of Source/Content is set for file artifacts; neither for directories.
	Source string

	// Content is an inline HCL template expression evaluated at render time.
	Content hcl.Expression

	// IncludeIf is the inclusion predicate. Nil means always included.
	IncludeIf hcl.Expression

	// Group optionally names an exclusive group this artifact belongs to.
	Group string
}

// Inline reports whether the artifact's body is an inline template rather
// than a file under the template root.
func (a *Artifact) Inline() bool {
	return a.Content != nil
}

// Group is a declared exactly-one-of-N constraint over artifacts.
type Group struct {
	Name        string
	Description string
}
