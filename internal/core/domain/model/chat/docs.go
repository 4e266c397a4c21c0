// Package chat models direct messages between users and the conversation
// (unordered user pair) they belong to.
package chat
