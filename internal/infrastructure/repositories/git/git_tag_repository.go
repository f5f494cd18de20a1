package git

import (
	"context"
	"fmt"
	"slices"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
)

const (
	remoteName = "origin"
	// tokenUsername is accepted by GitHub, GitLab and Azure DevOps alike when
	// the password is a personal access token.
	tokenUsername = "x-access-token"
)

// GitTagRepository lists remote tags the way `git ls-remote --tags --refs`
// does, without a local clone.
type GitTagRepository struct {
	token string
}

// NewGitTagRepository creates a tag source. The token, when set, is sent as
// basic-auth password to https remotes only.
func NewGitTagRepository(token string) repositories.TagRepository {
	return &GitTagRepository{token: token}
}

// FetchTags returns the short names of every tag advertised by the remote.
func (r *GitTagRepository) FetchTags(ctx context.Context, repositoryURL string) ([]string, error) {
	remote := gogit.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: remoteName,
		URLs: []string{repositoryURL},
	})

	refs, err := remote.ListContext(ctx, &gogit.ListOptions{
		Auth:          r.authFor(repositoryURL),
		PeelingOption: gogit.IgnorePeeled,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list remote refs of %s: %w", repositoryURL, err)
	}

	tags := tagNames(refs)
	logger.Debugf("[git] %s advertises %d tags", repositoryURL, len(tags))
	return tags, nil
}

func (r *GitTagRepository) authFor(repositoryURL string) transport.AuthMethod {
	if r.token == "" || !strings.HasPrefix(strings.ToLower(repositoryURL), "https://") {
		return nil
	}
	return &http.BasicAuth{Username: tokenUsername, Password: r.token}
}

// tagNames keeps tag references only and returns their short names, sorted
// and without duplicates.
func tagNames(refs []*plumbing.Reference) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == nil || !ref.Name().IsTag() {
			continue
		}
		names = append(names, ref.Name().Short())
	}
	slices.Sort(names)
	return slices.Compact(names)
}
