// Package intakeservice implements dynamic form intake inside the
// form-intake context.
//
// The module owns form definitions and their question schemas, answer
// validation, and the submission lifecycle (submit/approve). Lifecycle
// transitions publish events consumed by the notifications context. Business
// rules live in the domain and application layers; infrastructure stays
// behind ports and adapters.
package intakeservice
