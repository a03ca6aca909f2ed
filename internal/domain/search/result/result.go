package result

// Result is the outcome of one photo search.
type Result struct {
	imagePaths []string
	userQuery  string
	labels     []string
}

// New creates a search result. Nil slices are normalised to empty ones.
func New(imagePaths []string, userQuery string, labels []string) Result {
	if imagePaths == nil {
		imagePaths = []string{}
	}
	if labels == nil {
		labels = []string{}
	}
	return Result{imagePaths: imagePaths, userQuery: userQuery, labels: labels}
}

// Empty returns a result with no matches for the given query.
func Empty(userQuery string, labels []string) Result {
	return New(nil, userQuery, labels)
}

// ImagePaths returns the matched photo URLs.
func (r *Result) ImagePaths() []string { return r.imagePaths }

// UserQuery returns the raw query text.
func (r *Result) UserQuery() string { return r.userQuery }

// Labels returns the labels extracted from the query.
func (r *Result) Labels() []string { return r.labels }
