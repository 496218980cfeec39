package rcstore

// Kind is the declared type of a configuration entry. It only affects
// how the entry is documented and dumped; values are stored as strings
// and interpreted by the typed accessors on Config.
type Kind string

const (
	// KindBoolean entries are read through Config.GetBool.
	KindBoolean Kind = "boolean"

	// KindString entries are plain text.
	KindString Kind = "string"

	// KindInteger entries are read through Config.GetInt.
	KindInteger Kind = "integer"

	// KindLocal marks entries that were never declared as defaults:
	// they exist because an indirect reference named them or because
	// an overlay introduced them. They carry no description.
	KindLocal Kind = "local"
)

// Entry is one configuration key with its compiled-in default and the
// value it ended up with after layering. Entries are created from a
// profile plus indirection discovery and are never removed during a
// run.
type Entry struct {
	// Key is the configuration variable name.
	Key string `yaml:"key" validate:"required"`

	// Kind is the declared type. Defaults to string when omitted in
	// a profile.
	Kind Kind `yaml:"kind,omitempty" validate:"omitempty,oneof=boolean string integer local"`

	// Default is the compiled-in value, expanded during resolution.
	Default string `yaml:"default,omitempty"`

	// Description documents the entry in dump output.
	Description string `yaml:"description,omitempty"`

	// Value is the layered (pre-expansion) value, populated during
	// Build. Dump output prints this text, directives included.
	Value string `yaml:"-"`
}
