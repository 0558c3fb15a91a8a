// Package identity resolves request credentials to a caller principal.
// Two token shapes circulate: locally minted session tokens and structured
// Google ID tokens (or session cookies) from the storefront's client SDK.
package identity

import "strings"

// CredentialKind tags what shape a raw credential string has.
type CredentialKind int

const (
	// KindUnrecognized is anything that matches no known token shape.
	KindUnrecognized CredentialKind = iota

	// KindLocal is a locally minted token: auth_<millis>_<uid>.
	KindLocal

	// KindStructured is a three-segment dot-delimited token (a JWT shape,
	// though no signature check is implied by the classification).
	KindStructured
)

// Credential is a classified raw token.
type Credential struct {
	Kind CredentialKind
	Raw  string

	// UID is populated for local tokens only.
	UID string
}

// localPrefix marks tokens this service minted itself.
const localPrefix = "auth_"

// ParseCredential classifies a raw token string. It never errors; a shape
// that matches nothing comes back as KindUnrecognized and fails later with
// a format error.
func ParseCredential(raw string) Credential {
	if strings.HasPrefix(raw, localPrefix) {
		// SplitN keeps underscores inside the uid intact. A malformed
		// local token keeps its kind with an empty UID so the failure
		// is reported as a local token failure, not a decode failure.
		parts := strings.SplitN(raw, "_", 3)
		if len(parts) == 3 && parts[2] != "" {
			return Credential{Kind: KindLocal, Raw: raw, UID: parts[2]}
		}
		return Credential{Kind: KindLocal, Raw: raw}
	}

	if strings.Count(raw, ".") == 2 {
		return Credential{Kind: KindStructured, Raw: raw}
	}

	return Credential{Kind: KindUnrecognized, Raw: raw}
}
