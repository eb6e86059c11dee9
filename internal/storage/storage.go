// internal/storage/storage.go
package storage

// Snapshot keys. All three are cleared together on logout.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyCart  = "cart"
)

// Store is the local snapshot store: the client-side mirror of session and
// cart state. Reads and writes are synchronous and treated as always
// succeeding; backend failures are logged and surface as absent values.
type Store interface {
	// Get returns the stored value for key and whether it was present
	Get(key string) ([]byte, bool)

	// Set stores value under key, replacing any previous value
	Set(key string, value []byte)

	// Delete removes key if present
	Delete(key string)

	// ClearAll removes every snapshot key
	ClearAll()
}

// TokenSource adapts a Store to the API client's token lookup
type TokenSource struct {
	Store Store
}

// Token returns the persisted bearer token, or "" when logged out
func (t TokenSource) Token() string {
	value, ok := t.Store.Get(KeyToken)
	if !ok {
		return ""
	}
	return string(value)
}
