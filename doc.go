// Package candidature is a small HTTP service that relays job applications
// by email.
//
// A submission is a multipart form carrying the applicant's details, an
// optional photo, an optional CV and up to five certificates. The service
// streams the files into temporary storage, checks the required fields,
// renders an HTML notification and hands it to the configured mail provider
// with the files attached. Temporary files are removed before the response
// is written, whatever the outcome.
//
// # Quick Start
//
// The server binary lives in cmd/server and is configured from the
// environment. The pieces can also be assembled by hand:
//
//	svc := application.NewService(
//	    application.NewReceiver(store),
//	    application.NewComposer(),
//	    application.NewDispatcher(mail, store, []string{"hr@example.com"}),
//	    application.NewCleaner(store),
//	)
//
//	app := candidature.New(
//	    candidature.WithLogger(log),
//	    candidature.WithErrorHandler(middlewares.ErrorHandler(application.StatusCode)),
//	    candidature.WithHandlers(application.NewHandler(svc)),
//	)
//
//	if err := app.Run(":5000", candidature.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	func (h *Handler) Routes(r candidature.Router) {
//	    r.POST("/api/send-application", h.submit)
//	}
//
// A handler returns an error instead of writing a failure response. The
// [ErrorHandler] turns it into the {success:false, message} envelope.
//
// # Shutdown
//
// The server handles SIGINT/SIGTERM for graceful shutdown. Startup and
// shutdown hooks start and stop background work such as the stale upload
// sweep:
//
//	err := app.Run(addr,
//	    candidature.StartupHook(sweeper.StartFunc()),
//	    candidature.ShutdownHook(sweeper.Shutdown()),
//	)
package candidature
