// Package reply implements ingestion of inbound email replies: locate the
// lead behind the sender address, record the reply as a message, and flip the
// lead's status to responded.
//
// The status flip is best-effort; recording the reply is the primary effect.
package reply
