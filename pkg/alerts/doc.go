// Package alerts defines the expiration alert domain model consumed by the
// notification engine.
//
// Alerts are produced by an upstream expiration tracker and describe a single
// product approaching or past its expiration date, classified by Type and
// Severity. The engine never mutates an Alert; every derived value (batch
// composites, notification payloads) is a new object.
//
// Type and Severity are closed enums: every switch over them in this module
// covers all values, so an unmapped key can never silently fall through to a
// default branch.
package alerts
