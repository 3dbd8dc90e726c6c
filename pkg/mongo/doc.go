// Package mongo provides MongoDB connection management for the mongostore
// persistence backend: env-driven configuration, connect with retry and a
// readiness healthcheck.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.ConnectDatabase(ctx, cfg, "shop")
//	if err != nil {
//		return err
//	}
//	storage := mongostore.New(db)
package mongo
