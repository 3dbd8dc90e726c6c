// Package mongostore persists notifications and preferences in MongoDB.
// It is a drop-in alternative to pgstore for deployments already running
// Mongo:
//
//	storage := mongostore.New(client.Database("shop"))
//	if err := storage.EnsureIndexes(ctx); err != nil {
//		return err
//	}
//	engine := notifier.NewEngine(tp,
//		notifier.WithStorage(storage),
//		notifier.WithPreferenceStorage(storage),
//	)
package mongostore
