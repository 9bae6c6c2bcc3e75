// Package health provides the liveness and readiness HTTP handlers.
//
// [LivenessHandler] answers {"status":"OK","message":"..."} for as long as the
// process serves requests. [ReadinessHandler] runs a set of named [Checks]
// through a [Checker], in parallel under one timeout, and answers 200 or 503.
//
//	r.Get("/health", health.LivenessHandler("Server is running"))
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "storage": store.Healthcheck,
//	    "mailer":  mail.Healthcheck,
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Readiness responds with plain text by default. Request JSON with an
// Accept: application/json header or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "storage": {"status": "unhealthy", "error": "storage: upload directory: no such file or directory"}
//	  }
//	}
package health
