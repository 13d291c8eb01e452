/*
Package token provides issuance, verification and revocation of signed bearer credentials
and the role-based gate that protects API routes.

Credentials are compact JWS strings (JWT) signed with a single shared HMAC secret. The
claims payload is open: callers put whatever they need in it and the service adds the
reserved time fields iat and exp.

# Architecture

The module follows the same layering as the rest of the service:
  - domain: Claims, ExpiryDirective, RevokedToken, error taxonomy and Authorize
  - service: TokenSigner backed by golang-jwt (HS256, HS384, HS512)
  - repository: in-memory revocation ledger
  - usecase: Issue, VerifyAndAuthenticate, Revoke and the optional ledger pruner
  - http: gin handlers, DTOs, authentication/authorization middleware and rate limiting

# Verification Order

A presented credential passes two gates:
  - Revocation: a credential found in the ledger is rejected with ErrRevokedToken
  - Cryptography: structure, then signature, then exp and nbf

The revocation gate always runs first, so a revoked credential reports "revoked" even when
it is also expired or has been tampered with.

# Failure Reasons

Malformed and bad-signature credentials share the caller-facing message "token is invalid
or malformed" but keep distinct codes (malformed_token, invalid_signature) for logs and
metrics.

# Revocation Ledger

The ledger lives in process memory and is lost on restart. Entries are kept for the
lifetime of the process. When REVOCATION_PRUNE_ENABLED is set, a background worker drops
entries whose own exp has passed; such credentials then report ErrExpiredToken instead of
ErrRevokedToken and are never accepted again.
*/
package token
