// Package async provides small primitives for asynchronous work: a typed
// Future for awaitable computations and Fire for best-effort side effects
// whose failures are logged rather than returned.
//
// Fire is used throughout the notification engine for persistence calls,
// sound playback and demo triggers, where the contract is "never block,
// never surface the error":
//
//	async.Fire(ctx, log, "persist notification", func(ctx context.Context) error {
//		return storage.Create(ctx, identity, n)
//	})
package async
