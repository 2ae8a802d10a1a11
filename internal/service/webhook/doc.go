// Package webhook implements the delivery-event pipeline for the email
// provider's webhook: signature verification, envelope normalization,
// event-history merging, and the unsubscribe cascade.
//
// The pipeline runs once per webhook delivery, request-scoped, with no
// in-process state. Store access goes through the repository interfaces
// defined in repository.go so tests can substitute fakes. The service layer
// never imports net/http or database/sql directly.
package webhook
