// Package ports declares the interfaces the application core needs from the
// outside world: order and message persistence, the transaction boundary,
// the account directory, the post-commit event publisher and the realtime
// notification hub.
package ports
