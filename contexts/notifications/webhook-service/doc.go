// Package webhookservice owns outbound notifications inside the
// notifications context: the webhook registry, the delivery audit log, and
// the dispatcher that fans committed form events out to subscriber
// endpoints.
//
// Delivery is best effort and at-most-once. Each matching webhook gets
// exactly one bounded HTTP attempt per event; failures are recorded, never
// retried, and never influence the lifecycle transition that produced the
// event.
package webhookservice
