// Package pgstore persists notifications and preferences in PostgreSQL.
// It implements both notifier.Storage and notifier.PreferenceStorage, so a
// single pool backs optimistic notification persistence and durable
// preferences:
//
//	storage := pgstore.New(pool)
//	engine := notifier.NewEngine(tp,
//		notifier.WithStorage(storage),
//		notifier.WithPreferenceStorage(storage),
//	)
//
// Apply the schema with pg.Migrate pointed at this package's migrations
// directory.
package pgstore
