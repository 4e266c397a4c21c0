// Package services contains domain services: rules that span an aggregate
// and facts held outside it, such as who owns the station behind an order.
package services
