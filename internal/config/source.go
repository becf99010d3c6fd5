package config

// SourceKind tags where a document is loaded from.
type SourceKind int

const (
	SourceLocalFile SourceKind = iota
	SourceRemoteURL
)

func (k SourceKind) String() string {
	switch k {
	case SourceLocalFile:
		return "file"
	case SourceRemoteURL:
		return "url"
	default:
		return "unknown"
	}
}

// Source is either a local file path or a remote URL.
type Source struct {
	Kind     SourceKind
	Location string
}

// LocalFile returns a Source that reads path from disk.
func LocalFile(path string) Source {
	return Source{Kind: SourceLocalFile, Location: path}
}

// RemoteURL returns a Source that fetches url over HTTP.
func RemoteURL(url string) Source {
	return Source{Kind: SourceRemoteURL, Location: url}
}

func (s Source) String() string {
	return s.Kind.String() + ":" + s.Location
}
