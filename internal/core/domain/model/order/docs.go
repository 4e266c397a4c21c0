// Package order holds the fuel order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root carrying customer, station, fuel, quantity,
//     cost, delivery point, contact phone, status and version
//   - Status: the lifecycle enum and the Transition function
//   - Placed, StatusChanged, DriverAssigned: domain events recorded on mutation
//
// Key business rules:
//   - Lifecycle is PENDING -> IN_PROGRESS -> COMPLETED, with CANCELLED reachable
//     from either active status
//   - COMPLETED and CANCELLED are terminal
//   - Every accepted mutation bumps the version by exactly one
//   - Re-requesting the current active status changes nothing
package order
