// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - AccessGate: role and ownership checks for every dispatch action
//   - OrderDispatcher: advances an order together with its bound vehicle
package services
