// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SessionStore: per-session key-value persistence for credentials and
//     the tenant cache
//   - ConsentBroker: out-of-band OAuth consent capability
//   - TokenRefresher: OAuth2 refresh-token exchange
//   - Caller: resilient HTTP access to the downstream issue tracker
//   - AuthResolver: per-call credential strategy resolution
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
