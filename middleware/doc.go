// Copyright (c) 2025 The Matdaan Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by every handler.

# Request Logging

WithLogging wraps a handler and emits structured start/complete log lines
with method, path, and duration.

# JSON Helpers

JSONResponse and ErrorResponse write JSON bodies with the right status code;
ErrorResponse uses the standard models.ErrorResponse envelope. ParseJSONBody
decodes a request body and closes it.

# CORS

CORS reflects the request origin and answers preflight OPTIONS requests so
the polling-booth frontend can call the API cross-origin.
*/
package middleware
