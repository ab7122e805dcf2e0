package favorites

// MemoryStorage is a volatile Storage for tests.
type MemoryStorage struct {
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	return m.values[key], nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.values[key] = value
	return nil
}
