package unimath

// ContentType represents the type of content.
type ContentType int

const (
	// ContentTypeText represents highlighted text.
	ContentTypeText ContentType = iota
	// ContentTypeFile represents a file attachment such as a stylesheet.
	ContentTypeFile
)

// String returns the string representation of ContentType.
func (ct ContentType) String() string {
	switch ct {
	case ContentTypeText:
		return "text"
	case ContentTypeFile:
		return "file"
	default:
		return "unknown"
	}
}

// Source types recorded in ContentTrace.
const (
	SourceExpression = "expression"
	SourceStylesheet = "stylesheet"
)

// ContentTrace tracks the source and metadata of content.
type ContentTrace struct {
	SourceType string
	Extra      map[string]interface{}
}

// Content represents one piece of output produced by Document.
type Content interface {
	GetContentType() ContentType
	GetContentTrace() ContentTrace
}

// Text represents a chunk of rendered expressions with highlight entities.
type Text struct {
	Text         string
	Entities     []Entity
	ContentTrace ContentTrace
}

// GetContentType returns ContentTypeText.
func (t *Text) GetContentType() ContentType {
	return ContentTypeText
}

// GetContentTrace returns the content trace.
func (t *Text) GetContentTrace() ContentTrace {
	return t.ContentTrace
}

// File represents a file attachment.
type File struct {
	FileName     string
	FileData     []byte
	ContentTrace ContentTrace
}

// GetContentType returns ContentTypeFile.
func (f *File) GetContentType() ContentType {
	return ContentTypeFile
}

// GetContentTrace returns the content trace.
func (f *File) GetContentTrace() ContentTrace {
	return f.ContentTrace
}

// Stylesheet returns the CSS for FormatHTML output as a file.
func Stylesheet(opts ...Option) *File {
	options := applyOptions(opts...)
	t := options.theme()
	return &File{
		FileName: "unimath-" + t.Name() + ".css",
		FileData: []byte(CSS(WithTheme(t))),
		ContentTrace: ContentTrace{
			SourceType: SourceStylesheet,
			Extra: map[string]interface{}{
				"theme": t.Name(),
			},
		},
	}
}
