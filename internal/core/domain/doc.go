// Package domain defines the core business entities for the JSM agent.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Outcome: the tri-state result (success / error / pending) every
//     access-layer operation produces
//   - CredentialRecord: the serialized OAuth credential kept in the
//     session store
//   - AuthScheme: the immutable OAuth2 flow description
//   - Tenant / TenantMap: resolved remote deployments
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
