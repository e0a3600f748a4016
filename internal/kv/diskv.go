package kv

import (
	"encoding/base64"
	"errors"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// Disk is a file-backed KV using diskv. Keys are base64-encoded on disk so
// the namespace separator and other punctuation never reach the filesystem.
type Disk struct {
	d *diskv.Diskv
}

// NewDisk opens (creating if needed) a diskv store rooted at basePath.
func NewDisk(basePath string) *Disk {
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
		Transform:    func(string) []string { return nil },
	})}
}

func encodeKey(key string) string {
	return base64.URLEncoding.EncodeToString([]byte(key))
}

func (s *Disk) Get(key string) ([]byte, bool, error) {
	val, err := s.d.Read(encodeKey(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

func (s *Disk) Set(key string, value []byte) error {
	return s.d.Write(encodeKey(key), value)
}

func (s *Disk) Remove(key string) error {
	err := s.d.Erase(encodeKey(key))
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
