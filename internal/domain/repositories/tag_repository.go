package repositories

import "context"

// TagRepository lists the tag names published by a remote Git repository.
// Implementations return an error for any failure; callers treat every error
// as "no tags available".
type TagRepository interface {
	FetchTags(ctx context.Context, repositoryURL string) ([]string, error)
}

// TagRepositoryFactory builds a TagRepository authenticated with the given
// token. An empty token means anonymous access.
type TagRepositoryFactory func(token string) TagRepository
