package remote

// Entry kinds as reported by the git trees API
const (
	KindBlob = "blob"
	KindTree = "tree"
)

// RepoMetadata describes a remote repository
type RepoMetadata struct {
	Owner         string   `json:"owner" yaml:"owner"`
	Name          string   `json:"name" yaml:"name"`
	FullName      string   `json:"full_name" yaml:"full_name"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Language      string   `json:"language,omitempty" yaml:"language,omitempty"`
	DefaultBranch string   `json:"default_branch,omitempty" yaml:"default_branch,omitempty"`
	Stars         int      `json:"stars" yaml:"stars"`
	License       string   `json:"license,omitempty" yaml:"license,omitempty"`
	Topics        []string `json:"topics,omitempty" yaml:"topics,omitempty"`
	HTMLURL       string   `json:"html_url,omitempty" yaml:"html_url,omitempty"`
}

// TreeEntry is one path of a recursive tree listing
type TreeEntry struct {
	Path string `json:"path" yaml:"path"`
	Kind string `json:"kind" yaml:"kind"`
	Size int64  `json:"size,omitempty" yaml:"size,omitempty"` // 0 for trees or when unknown
	SHA  string `json:"sha,omitempty" yaml:"sha,omitempty"`
}

// IsBlob reports whether the entry is a file
func (e TreeEntry) IsBlob() bool {
	return e.Kind == KindBlob
}

// FetchedFile is decoded file content fetched during a run
type FetchedFile struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// RateStatus is the last quota reported by the API
type RateStatus struct {
	Limit     int
	Remaining int
	Reset     int64 // unix seconds, 0 when unknown
}
