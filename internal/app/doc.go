// Package app wires the CreatorPulse HTTP server together: telemetry,
// the analysis and health services, the middleware chain and the router.
// It also owns the server lifecycle and graceful shutdown.
//
// # Middleware Order
//
//	RequestID → RealIP → OTel → request logging → Recoverer →
//	SecureHeaders → CORS → RateLimiter → Timeout
//
// /metrics is mounted outside the chain so scrapes do not count against the
// rate limit.
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
package app
