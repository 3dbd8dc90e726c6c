// Package transport provides notifier.Transport implementations: an
// in-process Memory transport for single-binary deployments and tests, and
// a Redis pub/sub transport for fan-out across processes.
//
// Both expose a Publish method for the server side of the feed and
// implement TriggerDemo for manual verification:
//
//	tp := transport.NewRedis(redisClient)
//	engine := notifier.NewEngine(tp)
//
//	// elsewhere, e.g. after creating an invoice:
//	_ = tp.Publish(ctx, userID, notifier.Notification{
//		Type:     notifier.TypeSuccess,
//		Category: notifier.CategoryInvoice,
//		Title:    "Invoice paid",
//	})
package transport
