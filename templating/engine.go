package templating

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"

	"github.com/byte4ever/datetemplate/values"
)

// Engine expands template files using values files and
// explicit key=value variables.
type Engine struct {
	// Renderer renders the template. Nil means the
	// wall-clock package renderer.
	Renderer *Renderer

	// ValuesFiles are loaded in order, later files
	// overriding earlier ones.
	ValuesFiles []string
}

// Context returns the caller context for a render: values
// files first, then vars parsed with TemplateContext on top.
// The default date entries are not included.
func (en *Engine) Context(vars []string) (map[string]any, error) {
	const errCtx = "building context"

	ctx, err := values.LoadFiles(en.ValuesFiles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	maps.Copy(ctx, TemplateContext(vars))

	return ctx, nil
}

// Expand reads a template, renders it, and writes the
// result. If tplPath is empty it reads stdin; if outPath is
// empty it writes to stdout. If executable is true the
// output file receives mode 0777 instead of 0666.
//
// The output file is created only after a successful
// render, so a failing template never truncates it.
func (en *Engine) Expand(
	tplPath string,
	outPath string,
	vars []string,
	executable bool,
) error {
	const errCtx = "expanding template"

	ctx, err := en.Context(vars)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tplContent, err := readTemplate(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	result, err := en.renderer().RenderTemplate(
		string(tplContent), ctx,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := writeOutput(
		outPath, result, executable,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug(
		"template expanded",
		"template", tplPath,
		"output", outPath,
		"variables", len(ctx),
	)

	return nil
}

func (en *Engine) renderer() *Renderer {
	if en.Renderer == nil {
		return defaultRenderer
	}

	return en.Renderer
}

// readTemplate reads the template from a file path. If
// tplPath is empty it reads from stdin.
func readTemplate(tplPath string) ([]byte, error) {
	const errCtx = "reading template"

	if tplPath != "" {
		content, err := os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return content, nil
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: reading stdin: %w", errCtx, err,
		)
	}

	return content, nil
}

// writeOutput writes result to outPath, or to stdout when
// outPath is empty.
func writeOutput(
	outPath string,
	result string,
	executable bool,
) error {
	const errCtx = "writing output"

	if outPath == "" {
		if _, err := os.Stdout.WriteString(result); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	var perm os.FileMode = 0o666
	if executable {
		perm = 0o777
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		outPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := fi.WriteString(result); err != nil {
		_ = fi.Close() //nolint:errcheck // write error wins

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := fi.Close(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
