package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns the source files loaded during one run.
// It is not safe for concurrent mutation: load everything first, then hand
// *File values to workers.
type FileSet struct {
	files   []File
	baseDir string // base for relative display paths
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates a FileSet that displays paths relative to baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]File, 0),
		baseDir: baseDir,
	}
}

// BaseDir returns the base directory, falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores content under path and returns a new FileID.
// It always creates a new FileID even if the path was added before.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return id
}

// Load reads a file from disk, strips a UTF-8 BOM, normalises CRLF and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file, such as standard input, with the
// FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Len returns the number of files added so far.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Path display modes accepted by FormatPath. PathAsIs keeps the path as it
// was loaded.
const (
	PathAsIs     = ""
	PathAbsolute = "absolute"
	PathRelative = "relative"
	PathBasename = "basename"
	PathAuto     = "auto"
)

// ValidPathMode reports whether FormatPath understands mode.
func ValidPathMode(mode string) bool {
	switch mode {
	case PathAsIs, PathAbsolute, PathRelative, PathBasename, PathAuto:
		return true
	}
	return false
}

// FormatPath renders the file path for display. Unknown modes and virtual
// files keep the path as loaded.
func (f *File) FormatPath(mode, baseDir string) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathAbsolute:
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path

	case PathRelative:
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path

	case PathBasename:
		return BaseName(f.Path)

	case PathAuto:
		// short or already relative paths are shown as is
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil && !filepath.IsAbs(rel) {
			return rel
		}
		return BaseName(f.Path)

	default:
		return f.Path
	}
}
