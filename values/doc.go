// Package values loads template context values from files. YAML
// (.yaml, .yml) and JSON (.json) files must hold a top-level mapping;
// any other file is read as a properties file of key=value lines.
// LoadFiles merges several files, later ones overriding earlier ones.
package values
