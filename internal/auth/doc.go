// Package auth holds the authentication and authorization core: password
// hashing, access/refresh token issuance and verification, and the ownership
// check applied before a resource is mutated.
package auth
