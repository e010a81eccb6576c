package filestore

import (
	"os"
	"path/filepath"

	"github.com/EmmanuellaOsikoya/melodymatch/utils"
	"github.com/pkg/errors"
)

const (
	TmpFileDirPrefix = "_tmp_file_store_"
)

// LocalFileStore keeps images in a temp folder, used for development runs
// without AWS credentials.
type LocalFileStore struct {
	bucket     string
	folderName string
}

func NewLocalFileStore(bucket string) (*LocalFileStore, error) {
	folderName, err := CreateFolder(bucket)
	if err != nil {
		return nil, err
	}

	return &LocalFileStore{
		bucket:     bucket,
		folderName: folderName,
	}, nil
}

func CreateFolder(bucket string) (string, error) {
	folderName := TmpFileDirPrefix + bucket
	err := os.MkdirAll(folderName, os.ModePerm)
	if err != nil && os.IsExist(err) {
		return folderName, nil
	}
	return folderName, err
}

func DeleteFolder(folderName string) error {
	return os.RemoveAll(folderName)
}

func (s *LocalFileStore) GenerateKey(data []byte, ext string) (string, error) {
	key, err := utils.TextToMd5Hash(string(data))
	if err != nil {
		return "", err
	}
	if len(key) == 0 {
		return "", errors.New("generate empty file key, invalid")
	}
	return key + ext, nil
}

func (s *LocalFileStore) Store(data []byte, ext string) (key string, err error) {
	key, err = s.GenerateKey(data, ext)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.folderName, key), data, 0644); err != nil {
		return "", err
	}
	return key, nil
}

func (s *LocalFileStore) GetUrlFromKey(key string) string {
	return filepath.Join(s.folderName, key)
}

func (s *LocalFileStore) CleanUp() {
	DeleteFolder(s.folderName)
}
