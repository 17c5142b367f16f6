// Package file provides a TOML-backed implementation of the ConfigStore port.
//
// Configuration lives at ~/.mathtrail/config.toml. Nested tables are
// flattened to dot-notation keys, so
//
//	[content]
//	dir = "/srv/corpus"
//
// is read as "content.dir". Recognised keys:
//
//   - content.dir: theory content directory
//   - storage.data_dir: SQLite index directory
//   - resolver.cache_size: LRU resolution cache capacity
//   - theory.default: theory assumed when none is given
package file
