// Package logger provides a slog.Logger factory with sane defaults and
// typed attribute helpers shared by the notification engine and its
// adapters.
//
// The factory defaults to JSON output at info level; development setups
// switch to readable text logs:
//
//	log := logger.New(logger.WithDevelopment("notifykit"))
//	logger.SetAsDefault(log)
//
// Attribute helpers keep log keys consistent across packages:
//
//	log.LogAttrs(ctx, slog.LevelWarn, "Failed to persist notification",
//		logger.Identity(identity),
//		logger.NotificationID(n.ID),
//		logger.Error(err),
//	)
package logger
