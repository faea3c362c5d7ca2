// Package schema contains the gohcl-tagged structs that mirror the raw HCL
// block structure of a blueprint file. These structs are a decoding surface
// only; the loader translates them into the blueprint model before anything
// else touches them.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Option represents an `option` block: one user-configurable field of the
// blueprint. Predicates stay as undecoded expressions because they can only
// be evaluated once earlier answers are known.
type Option struct {
	Key         string         `hcl:"key,label"`
	Type        hcl.Expression `hcl:"type"`
	Prompt      string         `hcl:"prompt,optional"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Choices     hcl.Expression `hcl:"choices,optional"`
	Validator   hcl.Expression `hcl:"validator,optional"`
	VisibleWhen hcl.Expression `hcl:"visible_when,optional"`
}

// Derived represents a `derived` block: a value computed from the resolved
// answer set, never independently settable.
type Derived struct {
	Name  string         `hcl:"name,label"`
	Value hcl.Expression `hcl:"value"`
}

// ExclusiveGroup represents an `exclusive_group` block. Artifacts opt into a
// group by name; the planner enforces exactly one included member.
type ExclusiveGroup struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
}

// Artifact represents an `artifact` block: a candidate output file or
// directory. The label is the output-relative path.
type Artifact struct {
	Path      string         `hcl:"path,label"`
	Kind      string         `hcl:"kind,optional"`
	Source    string         `hcl:"source,optional"`
	Content   hcl.Expression `hcl:"content,optional"`
	IncludeIf hcl.Expression `hcl:"include_if,optional"`
	Group     string         `hcl:"group,optional"`
}

// File represents the top-level structure of a single blueprint file.
type File struct {
	Options         []*Option         `hcl:"option,block"`
	Deriveds        []*Derived        `hcl:"derived,block"`
	ExclusiveGroups []*ExclusiveGroup `hcl:"exclusive_group,block"`
	Artifacts       []*Artifact       `hcl:"artifact,block"`
}
