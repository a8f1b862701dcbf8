/*
Package config provides typed access to loosely-structured configuration
for artifact storage and retention.

Configuration arrives as YAML or JSON and is held as a map[string]any.
The Config wrapper adds typed accessors with defaults so callers never
deal with type assertions:

	cfg, err := config.FromFile("retention.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	store, err := storage.FromConfig(cfg.Sub("storage"))

A storage section looks like:

	storage:
	  backend: sqlite
	  path: ./artifacts.db

Missing keys and type mismatches fall back to the accessor's default
value rather than erroring, which keeps partial configs usable.
*/
package config
