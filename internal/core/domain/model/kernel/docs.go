// Package kernel provides the value objects shared by every aggregate of the
// fuel delivery domain.
//
// The package includes:
//   - UUID: identifiers for orders, accounts, stations, fuel types and chat messages
//   - GeoPoint: a validated delivery destination (latitude, longitude, optional address)
//   - Phone: an E.164 contact number
//   - DomainEvent and EventRecorder: facts recorded by aggregates and published after commit
//
// Value objects are immutable; their zero values fail Validate so that a struct
// literal cannot masquerade as a checked value.
package kernel
