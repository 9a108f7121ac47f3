// Package vehicle provides the Vehicle aggregate: fleet registration, the
// approval workflow and availability for pickups.
//
// Availability:
//
//	pending ──(approve)──> available ──(claim)──> in_use ──(release)──> available
//	              ▲            │
//	              └─(reject)───┘
//
// Only approved, available vehicles can be claimed by a pickup.
package vehicle
