// Package domain defines authentication and authorization domain models.
// Services authenticate with a shared secret and receive a short-lived signed
// credential carrying their role; roles gate access to vault operations.
package domain

// Role defines the access level of a service.
type Role string

const (
	// VisitorRole can authenticate but is never authorized for vault operations.
	VisitorRole Role = "VISITOR"

	// TokenizerRole can exchange values for tokens.
	TokenizerRole Role = "TOKENIZER"

	// DetokenizerRole can tokenize and resolve tokens back to values.
	DetokenizerRole Role = "DETOKENIZER"
)

// Roles lists all known roles.
var Roles = []Role{VisitorRole, TokenizerRole, DetokenizerRole}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case VisitorRole, TokenizerRole, DetokenizerRole:
		return true
	}
	return false
}
