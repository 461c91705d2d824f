package templating

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"
	"k8s.io/utils/clock"
)

const (
	startTag = "${"
	endTag   = "}"

	// DateLayout formats the default context dates.
	DateLayout = "2006-01-02"

	// TodayKey and YesterdayKey name the default context
	// entries.
	TodayKey     = "today"
	YesterdayKey = "yesterday"
)

var defaultRenderer = NewRenderer(nil)

// Renderer renders templates against a default context
// computed from its clock. A Renderer is immutable and safe
// for concurrent use.
type Renderer struct {
	clk clock.PassiveClock
}

// NewRenderer returns a Renderer reading time from clk. A
// nil clk means wall-clock time.
func NewRenderer(clk clock.PassiveClock) *Renderer {
	if clk == nil {
		clk = clock.RealClock{}
	}

	return &Renderer{clk: clk}
}

// DefaultContext returns a new map holding today's and
// yesterday's UTC dates. It is recomputed on every call.
func (re *Renderer) DefaultContext() map[string]any {
	now := re.clk.Now().UTC()

	return map[string]any{
		TodayKey:     now.Format(DateLayout),
		YesterdayKey: now.Add(-24 * time.Hour).Format(DateLayout),
	}
}

// RenderTemplate merges ctx over the default context and
// substitutes every ${name} placeholder in tpl. Failures are
// returned as *TemplateError.
func (re *Renderer) RenderTemplate(
	tpl string,
	ctx map[string]any,
) (string, error) {
	merged := re.DefaultContext()
	maps.Copy(merged, ctx)

	ft, err := fasttemplate.NewTemplate(tpl, startTag, endTag)
	if err != nil {
		return "", &TemplateError{
			Err: fmt.Errorf("%w: %w", ErrMalformedTemplate, err),
		}
	}

	out, err := ft.ExecuteFuncStringWithErr(
		func(w io.Writer, tag string) (int, error) {
			return writeValue(w, tag, merged)
		},
	)
	if err != nil {
		var te *TemplateError
		if errors.As(err, &te) {
			return "", te
		}

		return "", &TemplateError{Err: err}
	}

	return out, nil
}

// Render is RenderTemplate with no caller context.
func (re *Renderer) Render(tpl string) (string, error) {
	return re.RenderTemplate(tpl, nil)
}

// RenderTemplate renders tpl with wall-clock defaults and
// ctx on top.
func RenderTemplate(
	tpl string,
	ctx map[string]any,
) (string, error) {
	return defaultRenderer.RenderTemplate(tpl, ctx)
}

// Render renders tpl against the default context only.
func Render(tpl string) (string, error) {
	return defaultRenderer.Render(tpl)
}

// DefaultContext returns the wall-clock default context.
func DefaultContext() map[string]any {
	return defaultRenderer.DefaultContext()
}

// TemplateContext builds a context from "key=value" entries,
// splitting on the first "=" only. Entries without "=" are
// dropped. The result is never nil.
func TemplateContext(values []string) map[string]any {
	ctx := make(map[string]any, len(values))

	for _, vl := range values {
		key, val, ok := strings.Cut(vl, "=")
		if ok {
			ctx[key] = val
		}
	}

	return ctx
}

// writeValue resolves one placeholder against ctx and writes
// its formatted value.
func writeValue(
	w io.Writer,
	tag string,
	ctx map[string]any,
) (int, error) {
	name := strings.TrimSpace(tag)

	if !validName(name) {
		return 0, &TemplateError{
			Name: name,
			Err:  ErrMalformedTemplate,
		}
	}

	val, ok := lookup(ctx, name)
	if !ok {
		return 0, &TemplateError{
			Name: name,
			Err:  ErrUndefinedVariable,
		}
	}

	return io.WriteString(w, formatValue(val))
}

// lookup finds name verbatim first, then walks nested maps
// along its dotted segments.
func lookup(ctx map[string]any, name string) (any, bool) {
	if val, ok := ctx[name]; ok {
		return val, true
	}

	head, rest, dotted := strings.Cut(name, ".")
	if !dotted {
		return nil, false
	}

	val, ok := ctx[head]
	if !ok {
		return nil, false
	}

	switch nested := val.(type) {
	case map[string]any:
		return lookup(nested, rest)
	case map[string]string:
		str, found := nested[rest]
		return str, found
	default:
		return nil, false
	}
}

func formatValue(val any) string {
	switch vl := val.(type) {
	case nil:
		return "null"
	case string:
		return vl
	case []byte:
		return string(vl)
	case fmt.Stringer:
		return vl.String()
	default:
		return fmt.Sprint(vl)
	}
}

// validName reports whether name is one or more identifiers
// joined by dots.
func validName(name string) bool {
	if name == "" {
		return false
	}

	for _, seg := range strings.Split(name, ".") {
		if seg == "" {
			return false
		}

		for i, r := range seg {
			switch {
			case r == '_' || r == '$':
			case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			case i > 0 && '0' <= r && r <= '9':
			default:
				return false
			}
		}
	}

	return true
}
