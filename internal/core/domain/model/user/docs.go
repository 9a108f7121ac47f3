// Package user provides the User aggregate and the closed set of roles used by
// the access gate.
//
// Signup creates agent_pending or owner_pending users. Only an admin promotes a
// user to admin, agent or owner, and only non-pending users may authenticate.
package user
