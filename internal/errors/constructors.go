package errors

// Convenience constructors for the error kinds the build pipeline reports.

// Content loading errors

func LoadFailed(path string, cause error) *BuildError {
	return Wrap(cause, CategoryLoad, SeverityFatal, "content file unreadable").
		WithContext("path", path)
}

func ParseFailed(path string, cause error) *BuildError {
	return Wrap(cause, CategoryParse, SeverityFatal, "malformed front-matter").
		WithContext("path", path)
}

func ValidationFailed(path, field, reason string) *BuildError {
	return New(CategoryValidation, SeverityFatal, "metadata validation failed").
		WithContext("path", path).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Configuration errors

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

// Assembly errors

func SlugConflict(slug, path, otherPath string) *BuildError {
	return New(CategoryConflict, SeverityFatal, "duplicate slug").
		WithContext("slug", slug).
		WithContext("path", path).
		WithContext("conflicts_with", otherPath)
}

func WriteFailed(path string, cause error) *BuildError {
	return Wrap(cause, CategoryWrite, SeverityFatal, "output write failed").
		WithContext("path", path)
}

// Network errors (stats fetching only; never fatal to a build)

func FetchFailed(url string, cause error) *BuildError {
	return Wrap(cause, CategoryNetwork, SeverityWarning, "stats fetch failed").
		WithContext("url", url)
}

// Internal errors

func InternalError(message string, cause error) *BuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
