package interfaces

// ConfigStore provides path-addressed key/value access to the device's local
// configuration store. Paths use backslash-separated segments regardless of
// the backing implementation so that store paths read the same way they do
// on an enrolled device.
//
// Implementations are expected to be safe for sequential use only; the
// reconciler is a single-threaded batch tool and takes no locks.
type ConfigStore interface {
	// Get returns the string value stored under name at path. It returns
	// ErrKeyNotFound if the path does not exist and ErrValueNotFound if the
	// path exists but carries no such value.
	Get(path, name string) (string, error)

	// Set writes value under name at path, creating the path and the value
	// if absent and overwriting any existing value.
	Set(path, name, value string) error

	// List returns the names of the immediate child keys of path, sorted
	// ascending. It returns ErrKeyNotFound if the path does not exist.
	List(path string) ([]string, error)
}

// CertStore is an enumerable view of the machine personal certificate store.
type CertStore interface {
	// Enumerate returns all certificate records in the store. Order is not
	// guaranteed; callers needing determinism must sort.
	Enumerate() ([]CertificateRecord, error)
}
