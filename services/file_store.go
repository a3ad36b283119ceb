package services

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists uploaded report and template files by path. The core
// never inspects file contents.
type FileStore interface {
	// Save stores an uploaded report file under branch/year/template and
	// returns the stored path.
	Save(file *multipart.FileHeader, branchName string, year int, templateName string) (string, error)
	// SaveTemplate stores a template's blank form file.
	SaveTemplate(file *multipart.FileHeader) (string, error)
	Read(path string) ([]byte, error)
	Delete(path string) error
}

// LocalFileStore keeps files on the local disk under a single root directory.
type LocalFileStore struct {
	root string
}

func NewLocalFileStore(root string) (*LocalFileStore, error) {
	if root == "" {
		root = "./uploads"
	}
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalFileStore{root: root}, nil
}

func (s *LocalFileStore) Save(file *multipart.FileHeader, branchName string, year int, templateName string) (string, error) {
	dir := filepath.Join(s.root, "reports", sanitize(branchName), strconv.Itoa(year), sanitize(templateName))
	name := sanitize(branchName) + "_" + storedName(file.Filename)
	return s.write(file, dir, name)
}

func (s *LocalFileStore) SaveTemplate(file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.root, "templates")
	return s.write(file, dir, storedName(file.Filename))
}

func (s *LocalFileStore) write(file *multipart.FileHeader, dir, name string) (string, error) {
	if file == nil || file.Size == 0 {
		return "", ErrEmptyFile
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	fullPath := filepath.Join(dir, name)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", fullPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write %s: %w", fullPath, err)
	}
	return fullPath, nil
}

func (s *LocalFileStore) Read(path string) ([]byte, error) {
	clean, err := s.insideRoot(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(clean)
}

func (s *LocalFileStore) Delete(path string) error {
	clean, err := s.insideRoot(path)
	if err != nil {
		return err
	}
	if err := os.Remove(clean); err != nil {
		if os.IsNotExist(err) {
			log.Printf("file already missing: %s", clean)
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", clean, err)
	}
	return nil
}

// insideRoot rejects paths that escape the upload root.
func (s *LocalFileStore) insideRoot(path string) (string, error) {
	clean := filepath.Clean(path)
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(clean)
	if err != nil {
		return "", err
	}
	if abs != rootAbs && !strings.HasPrefix(abs, rootAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside the upload root", path)
	}
	return clean, nil
}

// storedName appends a short uuid to the base filename so concurrent uploads
// with the same name never collide on disk.
func storedName(original string) string {
	ext := filepath.Ext(original)
	base := sanitize(strings.TrimSuffix(filepath.Base(original), ext))
	return base + "_" + uuid.NewString()[:8] + ext
}

func sanitize(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_", " ", "_")
	return replacer.Replace(name)
}
