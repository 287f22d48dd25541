// Package electionservice manages the election catalog: elections, the
// customers participating in them, and the form attachments that connect
// elections to the form-intake context.
//
// Assignment and attachment are replace-set operations: each call installs a
// complete new association set. Forms and webhooks are owned by other
// services and appear here only as read projections.
package electionservice
