// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go; highlight merging and region mapping are delegated
// to the highlight and iiif packages.
package services
