// Package email is the outbound mail boundary. The core only ever talks to
// the Sender interface; the Postmark client backs it in production and
// DevSender writes messages to disk for local development.
//
// Delivery failure is its own condition (ErrSendFailed) distinct from store
// failures: callers that have already persisted state (a created account, an
// issued reset token) must not roll back on a failed send, they degrade to a
// "created, but email not sent" response and offer a resend path.
package email
