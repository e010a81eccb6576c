package filestore

// FakeFileStore records stored keys in memory, used in handler tests.
type FakeFileStore struct {
	Stored map[string][]byte
}

func NewFakeFileStore() *FakeFileStore {
	return &FakeFileStore{Stored: map[string][]byte{}}
}

func (f *FakeFileStore) Store(data []byte, ext string) (key string, err error) {
	key = "fake" + ext
	f.Stored[key] = data
	return key, nil
}

func (f *FakeFileStore) GetUrlFromKey(key string) string {
	return "https://fake.store/" + key
}

func (f *FakeFileStore) CleanUp() {}
