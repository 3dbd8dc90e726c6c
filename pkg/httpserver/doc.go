// Package httpserver is a small wrapper around net/http used by the
// notification daemon: graceful shutdown on context cancel or SIGINT/SIGTERM,
// env-driven timeouts and probe handlers for orchestrators.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run wraps listen errors with ErrStart and Shutdown wraps shutdown errors
// with ErrShutdown; inspect them with errors.Is.
package httpserver
