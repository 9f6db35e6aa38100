package repodoc

// FileContent represents one retrieved documentation file.
// Path is the canonical locator: a repository-relative path for GitHub
// sources, the page URL for websites.
type FileContent struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Content string `json:"content"`
	Size    int    `json:"size"`
}

// NewFileContent returns a FileContent sized by its content when the source
// reported no size.
func NewFileContent(name, path, content string, size int) *FileContent {
	if size <= 0 {
		size = len(content)
	}
	return &FileContent{
		Name:    name,
		Path:    path,
		Content: content,
		Size:    size,
	}
}

// Validate returns an error if the file contains invalid fields.
func (f *FileContent) Validate() error {
	if f.Name == "" {
		return Errorf(EINVALID, "file name required")
	}
	if f.Path == "" {
		return Errorf(EINVALID, "file path required")
	}
	return nil
}
