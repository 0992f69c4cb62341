// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package api provides the HTTP REST API layer for Shoprec.

Key Components:

  - Router: chi route configuration and middleware stack
  - Handler: request handlers for recommendation and session endpoints
  - Response formatting: models.APIResponse envelopes with request metadata
  - Error handling: service errors mapped to status codes and error codes

Endpoints:

	GET    /api/v1/health/live
	GET    /api/v1/health/ready
	GET    /metrics

	GET    /api/v1/products/{productID}/similar?k=&session=
	POST   /api/v1/recommendations/similar
	POST   /api/v1/recommendations/personalized
	GET    /api/v1/recommendations/config

	GET    /api/v1/sessions/{sessionID}/recommendations?k=&explain=
	GET    /api/v1/sessions/{sessionID}/signals
	DELETE /api/v1/sessions/{sessionID}
	POST   /api/v1/sessions/{sessionID}/views
	POST   /api/v1/sessions/{sessionID}/cart
	PUT    /api/v1/sessions/{sessionID}/cart/{key}
	DELETE /api/v1/sessions/{sessionID}/cart/{key}
	DELETE /api/v1/sessions/{sessionID}/cart
	POST   /api/v1/sessions/{sessionID}/wishlist/{productID}

Requests without an inline catalog rank against the configured catalog
source. The k parameter selects the list size; 0 or absent uses the
engine default and values above the configured maximum are clamped.

Middleware Stack:

Global: request ID with logging context, RealIP, Recoverer, CORS.
The /api/v1 group adds httprate rate limiting, security headers and
Prometheus request metrics. Session routes also put the session ID into
the logging context.
*/
package api
