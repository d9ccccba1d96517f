package token

import "sync"

// Dialect packages extend the token set at load time: postgres registers
// SERIAL, JSONB, HSTORE and friends so the lexer can classify them without
// the builtin table knowing every engine's vocabulary. Dynamic IDs start
// above maxBuiltin, which is how IsDynamic tells the two ranges apart.
var (
	registryMu sync.RWMutex
	nextID     = TokenType(maxBuiltin)
	dynNames   = make(map[TokenType]string)
	dynTypes   = make(map[string]TokenType)
)

// Register allocates a token type for a dialect keyword. The name is
// expected upper-cased; registering the same name twice yields two distinct
// types with the later one winning lookups.
func Register(name string) TokenType {
	registryMu.Lock()
	defer registryMu.Unlock()

	nextID++
	t := nextID
	dynNames[t] = name
	dynTypes[name] = t
	return t
}

// getDynamicName returns the registered name of a dynamic token type.
func getDynamicName(t TokenType) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name, ok := dynNames[t]
	return name, ok
}

// LookupDynamicKeyword resolves an upper-cased word to its registered token
// type. It returns IDENT and false for unregistered words.
func LookupDynamicKeyword(name string) (TokenType, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if t, ok := dynTypes[name]; ok {
		return t, true
	}
	return IDENT, false
}

// IsDynamic reports whether the token type was allocated by Register.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}

// RegisteredTokens returns a snapshot of the dynamic token table, keyed by
// token type.
func RegisteredTokens() map[TokenType]string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make(map[TokenType]string, len(dynNames))
	for t, name := range dynNames {
		out[t] = name
	}
	return out
}
