package mime

import "path"

// Extension maps file extensions of static resources to their content types. Everything
// else is served as Default.
var Extension = map[string]string{
	".css": CSS,
	".js":  JS,
}

// ByPath returns a content type for the file path by its extension.
func ByPath(filename string) string {
	if contentType, found := Extension[path.Ext(filename)]; found {
		return contentType
	}

	return Default
}
