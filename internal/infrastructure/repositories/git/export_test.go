package git

// TagNames exports tagNames for testing.
var TagNames = tagNames //nolint:gochecknoglobals // test export
