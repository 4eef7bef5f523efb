package engine

// Table is the immutable allow-list of shared/utility crate names that land
// in provenance group 1. It is a value passed into classification so tests
// can substitute their own.
type Table struct {
	crates map[string]bool
}

// NewTable builds a Table from an explicit crate list.
func NewTable(names ...string) Table {
	crates := make(map[string]bool, len(names))
	for _, name := range names {
		crates[name] = true
	}
	return Table{crates: crates}
}

// Contains reports whether name is a group-1 crate.
func (t Table) Contains(name string) bool { return t.crates[name] }

// IsZero reports whether the table was never initialized. A zero table is
// distinct from an intentionally empty one built with NewTable().
func (t Table) IsZero() bool { return t.crates == nil }

// DefaultTable returns the curated allow-list: the language runtime crates
// plus widely used general-purpose external crates. Hand-maintained; order
// here is alphabetical-ish for scanning, the classifier only does lookups.
func DefaultTable() Table {
	return NewTable(
		"std", "core", "alloc",
		"anyhow", "anymap", "async_std",
		"backtrace", "base64", "bstr", "bytemuck", "bytes", "bytesize",
		"cfg_if", "chrono", "clap", "color_eyre", "crossbeam", "csv",
		"dashmap",
		"env_logger", "eyre",
		"flate2", "futures",
		"glob",
		"hashbrown", "hex", "http", "hyper",
		"im", "indexmap", "indicatif", "itertools",
		"lazy_static", "log",
		"num", "num_traits",
		"once_cell", "ordered_float",
		"parking_lot", "petgraph", "prost", "prost_types",
		"rand", "rand_chacha", "rand_core", "rayon", "redox_syscall",
		"regex", "reqwest", "ron", "rust_decimal",
		"serde", "serde_bytes", "serde_cbor", "serde_json",
		"serde_path_to_error", "serde_repr", "serde_urlencoded",
		"serde_with", "serde_xml_rs", "serde_yaml",
		"sha2", "smallvec", "snap", "strum", "strum_macros",
		"tempfile", "thiserror", "time", "tokio", "tokio_macros",
		"tokio_stream", "tokio_test", "tokio_util", "toml",
		"tracing", "tracing_core", "tracing_subscriber", "typemap",
		"url", "urlencoding", "uuid",
		"walkdir", "warp", "which", "whoami",
		"xml_rs",
	)
}
