package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/meander/internal/api"
	"github.com/matzehuels/meander/pkg/cache"
	"github.com/matzehuels/meander/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr        string
	redisAddr   string
	redisDB     int
	keyPrefix   string
	noCache     bool
	timeout     time.Duration
	maxBodySize int64
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:        ":8080",
		keyPrefix:   "meander:v1:",
		timeout:     30 * time.Second,
		maxBodySize: 64 << 10,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the generator over HTTP. Artifacts are cached in Redis when
--redis is set, otherwise in the local cache directory.`,
		Example: `  meander serve --addr :8080
  meander serve --redis localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the shared artifact cache")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.keyPrefix, "key-prefix", opts.keyPrefix, "prefix for Redis cache keys")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")
	cmd.Flags().Int64Var(&opts.maxBodySize, "max-body", opts.maxBodySize, "maximum request body size in bytes")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var (
		store cache.Cache
		keyer cache.Keyer
	)
	switch {
	case opts.redisAddr != "" && !opts.noCache:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     opts.redisAddr,
			Password: redisPassword(),
			DB:       opts.redisDB,
		})
		if err != nil {
			return err
		}
		store = rc
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), opts.keyPrefix)
		logger.Info("using redis cache", "addr", opts.redisAddr, "db", opts.redisDB)
	default:
		local, err := newCache(opts.noCache)
		if err != nil {
			return err
		}
		store = local
	}

	runner := pipeline.NewRunner(store, keyer, logger)
	defer runner.Close()

	srv := api.New(runner, logger,
		api.WithTimeout(opts.timeout),
		api.WithMaxBody(opts.maxBodySize),
	)
	return srv.ListenAndServe(ctx, opts.addr)
}
