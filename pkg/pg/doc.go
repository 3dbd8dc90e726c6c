// Package pg provides PostgreSQL connection management for the pgstore
// persistence backend: env-driven configuration, connect with retry,
// a readiness healthcheck and goose-based schema migrations.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//	storage := pgstore.New(pool)
package pg
