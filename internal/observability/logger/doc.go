// Package logger wraps zap with a process-wide singleton, context
// propagation, and typed field helpers shared across layers.
//
// Usage:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: "info"})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(
//		logger.Layer("service"),
//		logger.Component("auth.otp"),
//		logger.Op("Issue"),
//	)
//	log.Info("otp issued", logger.Email(email))
package logger
