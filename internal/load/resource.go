package load

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"flexmap/internal/diagnostic"
	"flexmap/internal/document"
	"flexmap/internal/match"
	"flexmap/internal/metamodel"
	"flexmap/internal/model"
)

// Resource loads documents against a fixed set of packages and keeps the result
// of the last load. It is not safe for concurrent use.
type Resource struct {
	packages   []*metamodel.Package
	global     *metamodel.Registry
	config     Config
	similarity match.Similarity

	registry *metamodel.Registry
	contents []*model.Instance
	diags    diagnostic.Diagnostics
	trace    map[*model.Instance]int
	scripts  []string
}

// Option configures a Resource.
type Option func(*Resource)

// WithPackages makes pkgs available to every load.
func WithPackages(pkgs ...*metamodel.Package) Option {
	return func(r *Resource) {
		r.packages = append(r.packages, pkgs...)
	}
}

// WithRegistry sets the registry searched by the nsuri directive.
// Defaults to metamodel.DefaultRegistry.
func WithRegistry(reg *metamodel.Registry) Option {
	return func(r *Resource) {
		r.global = reg
	}
}

// WithConfig sets the base options of every load.
func WithConfig(cfg Config) Option {
	return func(r *Resource) {
		r.config = cfg
	}
}

// WithSimilarity replaces the fuzzy similarity strategy.
func WithSimilarity(s match.Similarity) Option {
	return func(r *Resource) {
		r.similarity = s
	}
}

// NewResource creates a resource.
func NewResource(opts ...Option) *Resource {
	r := &Resource{
		global:     metamodel.DefaultRegistry,
		config:     DefaultConfig(),
		similarity: match.LongestCommonSubstring{},
		trace:      make(map[*model.Instance]int),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.registry = metamodel.NewRegistry(r.packages...)

	return r
}

// LoadFile opens path and loads it.
func (r *Resource) LoadFile(path string, options map[string]string) error {
	f, err := os.Open(path)
	if err != nil {
		r.reset()

		code := errbuilder.CodeInternal
		if errors.Is(err, os.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}

		return errbuilder.New().
			WithCode(code).
			WithMsg(fmt.Sprintf("failed to open document %s", path)).
			WithCause(err)
	}
	defer f.Close()

	return r.Load(f, options)
}

// Load replaces the contents of the resource with the graph read from in.
// options are applied before any in-document directive. A malformed document
// returns an error and leaves the resource empty apart from one syntax_error
// diagnostic; every other problem is reported through Diagnostics.
func (r *Resource) Load(in io.Reader, options map[string]string) error {
	loadID := uuid.New().String()
	r.reset()

	log.Debug().Str("load_id", loadID).Int("options", len(options)).Msg("load started")

	doc, err := document.Parse(in)
	if err != nil {
		var se *document.SyntaxError
		if errors.As(err, &se) {
			r.diags.AddError(diagnostic.CodeSyntaxError, se.Msg, se.Line)
		}

		log.Debug().Str("load_id", loadID).Err(err).Msg("load aborted")

		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("malformed document: %s", err)).
			WithCause(err)
	}

	b := newBuilder(r, &r.diags)

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		b.applyOption(k, options[k], 0)
	}

	document.Walk(doc, b)

	r.registry = b.registry
	r.contents = b.contents
	r.trace = b.trace
	r.scripts = b.scripts

	log.Debug().
		Str("load_id", loadID).
		Int("roots", len(r.contents)).
		Int("instances", len(r.trace)).
		Int("diagnostics", r.diags.Len()).
		Int("scripts", len(r.scripts)).
		Msg("load finished")

	return nil
}

func (r *Resource) reset() {
	r.registry = metamodel.NewRegistry(r.packages...)
	r.contents = nil
	r.diags.Reset()
	r.trace = make(map[*model.Instance]int)
	r.scripts = nil
}

// Contents returns the top-level instances in document order.
func (r *Resource) Contents() []*model.Instance {
	return append([]*model.Instance(nil), r.contents...)
}

// AllContents returns every instance in document order.
func (r *Resource) AllContents() []*model.Instance {
	return model.AllContents(r.contents)
}

// Diagnostics returns every diagnostic of the last load in emission order.
func (r *Resource) Diagnostics() []diagnostic.Diagnostic {
	return r.diags.All()
}

// Warnings returns the warning diagnostics of the last load.
func (r *Resource) Warnings() []diagnostic.Diagnostic {
	return r.diags.Warnings()
}

// Errors returns the error diagnostics of the last load.
func (r *Resource) Errors() []diagnostic.Diagnostic {
	return r.diags.Errors()
}

// Line returns the line of the opening tag that created inst.
func (r *Resource) Line(inst *model.Instance) (int, bool) {
	line, ok := r.trace[inst]

	return line, ok
}

// Scripts returns the text of the eol directives, in document order.
func (r *Resource) Scripts() []string {
	return append([]string(nil), r.scripts...)
}

// Packages returns the packages usable by the last load, including those
// registered through nsuri directives.
func (r *Resource) Packages() []*metamodel.Package {
	return r.registry.Packages()
}
