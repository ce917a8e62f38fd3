package domain

// Credential carries the auth material for one private registry. The engine
// treats it as opaque beyond injecting it into sandbox manifest text; storage
// and retrieval belong to the caller.
type Credential struct {
	// RegistryURL is the index/registry URL the credential applies to.
	RegistryURL string

	Username string
	Password string
}
