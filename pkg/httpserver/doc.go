// Package httpserver runs the HTTP listener with graceful shutdown.
//
//	srv := httpserver.NewFromConfig(cfg,
//	    httpserver.WithLogger(log),
//	    httpserver.WithDrainHook(func(ctx context.Context, _ *slog.Logger) error {
//	        return registry.Shutdown(ctx) // end SSE streams
//	    }),
//	    httpserver.WithStopHook(func(ctx context.Context, _ *slog.Logger) error {
//	        return eventLog.Close(ctx)
//	    }),
//	)
//	err := srv.Run(ctx, router)
//
// Run returns when ctx is canceled, on SIGINT/SIGTERM, or when the listener
// fails. Drain hooks fire as shutdown starts; stop hooks after the server has
// stopped serving. LivenessHandler and ReadinessHandler back the health routes.
package httpserver
