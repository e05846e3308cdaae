package testutil

// FixedTokenGenerator returns the same run token every time.
//
// This enables deterministic script execution and golden snapshot
// comparison. The same script with the same FixedTokenGenerator produces
// byte-identical result output.
//
// Unlike script.FixedGenerator which returns tokens in sequence, this
// generator always returns the same token. This is the right shape for
// script runs, which consume exactly one token each.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a new fixed run token generator.
//
// The token is typically set in the script YAML:
//
//	run_token: "test-run-00000000-0000-0000-0000-000000000001"
//
// If token is empty, Generate() returns "test-run-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-run-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed run token.
//
// Implements script.TokenGenerator interface.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
