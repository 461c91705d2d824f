// Package templating renders ${name} templates against a date-aware
// context. Every render starts from a default context holding today's
// and yesterday's UTC dates (yyyy-MM-dd) and overlays caller-supplied
// variables on top. Substitution is done by valyala/fasttemplate with
// "${" and "}" delimiters.
//
// The Renderer type owns the clock used for the default context; the
// package-level functions use a Renderer backed by wall-clock time.
// The Engine type drives a full expansion from template, values files
// and key=value variables to an output file.
package templating
