package jwtx

import "errors"

var (
	// ErrMalformed indicates the token could not be parsed at all.
	ErrMalformed = errors.New("jwtx: malformed token")

	// ErrSignature indicates the signature did not verify against any
	// known key.
	ErrSignature = errors.New("jwtx: invalid signature")

	// ErrUnknownKID indicates the token's key id is not in the key set.
	ErrUnknownKID = errors.New("jwtx: unknown key id")

	// ErrIssuer indicates an issuer mismatch.
	ErrIssuer = errors.New("jwtx: issuer mismatch")

	// ErrAudience indicates none of the expected audiences were present.
	ErrAudience = errors.New("jwtx: audience mismatch")

	// ErrExpired indicates the token is past its expiry.
	ErrExpired = errors.New("jwtx: token expired")

	// ErrNotYetValid indicates the token's nbf is in the future.
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Verifier validates a compact JWT and returns its claims. Implementations
// pin the acceptable algorithms; callers never choose the algorithm from the
// token header.
type Verifier interface {
	Verify(token string) (*Claims, error)
}
