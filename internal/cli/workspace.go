package cli

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"flexmap/internal/config"
	"flexmap/internal/load"
	"flexmap/internal/match"
	"flexmap/internal/metamodel"
)

// workspace holds the schemas and settings every document of one invocation
// is loaded against.
type workspace struct {
	registry   *metamodel.Registry
	packages   []*metamodel.Package
	similarity match.Similarity
	options    map[string]string
}

func newWorkspace(ctx context.Context, cfg *config.Config, flagOptions map[string]string) (*workspace, error) {
	similarity, err := match.StrategyByName(cfg.Similarity)
	if err != nil {
		return nil, err
	}

	w := &workspace{
		registry:   metamodel.NewRegistry(),
		similarity: similarity,
		options:    cfg.Merge(flagOptions),
	}

	for _, path := range cfg.Schemas {
		assert.NotEmpty(ctx, path, "schema path must be set")

		pkg, err := metamodel.LoadFile(path, w.registry)
		if err != nil {
			return nil, err
		}

		w.registry.Register(pkg)
		w.packages = append(w.packages, pkg)

		log.Debug().Str("schema", path).Str("nsuri", pkg.NsURI).Int("classes", len(pkg.Classifiers)).Msg("schema loaded")
	}

	return w, nil
}

func (w *workspace) newResource() *load.Resource {
	return load.NewResource(
		load.WithPackages(w.packages...),
		load.WithRegistry(w.registry),
		load.WithSimilarity(w.similarity),
	)
}

func (a *app) workspace(ctx context.Context) (*workspace, error) {
	return newWorkspace(ctx, a.cfg, a.opts.Options)
}
