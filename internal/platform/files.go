package platform

import (
	"fmt"
	"io"
	"mime"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/google/uuid"

	"github.com/ytget/source-editor/internal/model"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// Hidden files are skipped when staging a directory
const hiddenFilePrefix = "."

// Extensions missing from Go's built-in MIME table on systems without
// /etc/mime.types.
var fallbackMIMETypes = map[string]string{
	".txt":  model.MIMETypeText,
	".doc":  model.MIMETypeMSWord,
	".docx": model.MIMETypeDOCX,
	".pdf":  model.MIMETypePDF,
}

// DetectMIMEType returns the MIME type for a file name without parameters,
// or "" when unknown.
func DetectMIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if mediaType, _, err := mime.ParseMediaType(t); err == nil {
			return mediaType
		}
		return t
	}
	return fallbackMIMETypes[ext]
}

// StageLocalFile builds a staged file for a path on disk. The MIME type is
// derived from the extension; unknown extensions give an empty type.
func StageLocalFile(path string) (model.StagedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.StagedFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return model.StagedFile{}, fmt.Errorf("%s is a directory", path)
	}

	return model.StagedFile{
		ID:       uuid.NewString(),
		Name:     info.Name(),
		Size:     info.Size(),
		MIMEType: DetectMIMEType(path),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// StageDirectory stages every regular, non-hidden file directly inside dir,
// sorted by name.
func StageDirectory(dir string) ([]model.StagedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), hiddenFilePrefix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	files := make([]model.StagedFile, 0, len(names))
	for _, name := range names {
		f, err := StageLocalFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// StagePaths stages each path in order.
func StagePaths(paths []string) ([]model.StagedFile, error) {
	files := make([]model.StagedFile, 0, len(paths))
	for _, p := range paths {
		f, err := StageLocalFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// RevealInFileManager opens the system file manager at the given file
func RevealInFileManager(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam+absPath).Run()
	case OSLinux:
		return revealLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// revealLinux opens the parent directory; selecting the file is not
// standardized across Linux file managers.
func revealLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// DefaultExportDir returns the user's Downloads directory, falling back to
// the working directory.
func DefaultExportDir() string {
	if xdg.UserDirs.Download != "" {
		return xdg.UserDirs.Download
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
