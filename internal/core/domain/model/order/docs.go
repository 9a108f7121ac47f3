// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding customer, addresses, assignment and vehicle binding
//   - Status: the closed set of lifecycle states and the legal edges between them
//
// Key business rules:
//   - Orders are created pending, whatever the caller asks for
//   - Approval binds an agent. Non-terminal orders may be reassigned without a status change
//   - Only the assigned agent may advance an order, one edge at a time:
//     approved -> picked_up -> in_transit -> delivered
//   - A vehicle is bound at pickup and kept after delivery for history
//   - Delivered is terminal
package order
