// Package httputil centralizes JSON request decoding and response writing for
// the webhook handlers, so every endpoint answers with the same error shape
// and logging.
package httputil
