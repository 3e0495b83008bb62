package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates access JWTs (RS256).
type TokenIssuer interface {
	IssueAccessToken(userID, email string, expiresInSeconds int64) (string, error)
	// ValidateAccessToken returns the userID and email claims of a valid token.
	ValidateAccessToken(tokenString string) (userID, email string, err error)
}
