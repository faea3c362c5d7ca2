package blueprint

// Blueprint is the root container aggregating every option, derivation,
// exclusive group and artifact loaded from a blueprint directory. Slices
// preserve declaration order (file path order, then in-file order), which
// downstream stages rely on for deterministic output.
type Blueprint struct {
	Options   []*Option
	Deriveds  []*Derived
	Groups    []*Group
	Artifacts []*Artifact

	optionIndex map[string]*Option
	groupIndex  map[string]*Group
}

// New assembles a Blueprint and its lookup indexes. Uniqueness of keys and
// names is the loader's responsibility and is assumed here.
func New(options []*Option, deriveds []*Derived, groups []*Group, artifacts []*Artifact) *Blueprint {
	bp := &Blueprint{
		Options:     options,
		Deriveds:    deriveds,
		Groups:      groups,
		Artifacts:   artifacts,
		optionIndex: make(map[string]*Option, len(options)),
		groupIndex:  make(map[string]*Group, len(groups)),
	}
	for _, o := range options {
		bp.optionIndex[o.Key] = o
	}
	for _, g := range groups {
		bp.groupIndex[g.Name] = g
	}
	return bp
}

// Option returns the option declared under key, or nil.
func (bp *Blueprint) Option(key string) *Option {
	return bp.optionIndex[key]
}

// HasGroup reports whether an exclusive group with the given name exists.
func (bp *Blueprint) HasGroup(name string) bool {
	_, ok := bp.groupIndex[name]
	return ok
}

// HasName reports whether name is taken by an option or a derived value.
// Options and derivations share one namespace because they share one
// binding environment.
func (bp *Blueprint) HasName(name string) bool {
	if _, ok := bp.optionIndex[name]; ok {
		return true
	}
	for _, d := range bp.Deriveds {
		if d.Name == name {
			return true
		}
	}
	return false
}
