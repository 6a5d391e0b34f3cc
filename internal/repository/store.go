package repository

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"ai_tutor_crm_backend/internal/util"
)

// Store 持久化协作方的最小契约：整表快照保存，文件缺失时返回空集合。
type Store[T any] interface {
	Save(items []T) error
	Load() ([]T, error)
}

// FileStore 行式平面文件存储，一行一条记录，编解码由调用方注入
type FileStore[T any] struct {
	path   string
	encode func(T) (string, error)
	decode func(string) (T, error)
	mu     sync.Mutex
}

func NewFileStore[T any](path string, encode func(T) (string, error), decode func(string) (T, error)) *FileStore[T] {
	return &FileStore[T]{path: path, encode: encode, decode: decode}
}

// NewJSONFileStore JSON-lines 存储，适用于带嵌套集合的实体
func NewJSONFileStore[T any](path string) *FileStore[T] {
	return NewFileStore(path,
		func(item T) (string, error) {
			b, err := json.Marshal(item)
			return string(b), err
		},
		func(line string) (T, error) {
			var item T
			err := json.Unmarshal([]byte(line), &item)
			return item, err
		},
	)
}

func (s *FileStore[T]) Save(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return util.NewFileError("could not create data directory: " + err.Error())
	}

	f, err := os.Create(s.path)
	if err != nil {
		return util.NewFileError("could not open file for writing: " + s.path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, item := range items {
		line, err := s.encode(item)
		if err != nil {
			return util.NewFileError("could not encode record: " + err.Error())
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return util.NewFileError("could not write record: " + err.Error())
		}
	}
	return w.Flush()
}

func (s *FileStore[T]) Load() ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// 文件尚不存在等同于空集合
			return nil, nil
		}
		return nil, util.NewFileError("could not open file for reading: " + s.path)
	}
	defer f.Close()

	var items []T
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		item, err := s.decode(line)
		if err != nil {
			return nil, util.NewFileError("could not decode record: " + err.Error())
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, util.NewFileError("could not read file: " + err.Error())
	}
	return items, nil
}

// NoopStore 测试和纯内存运行用的空实现
type NoopStore[T any] struct{}

func (NoopStore[T]) Save(items []T) error { return nil }
func (NoopStore[T]) Load() ([]T, error)   { return nil, nil }
