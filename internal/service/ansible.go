package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/caverna/vbump/internal/domain"
)

// AnsibleTagPrefix is forced for Ansible roles when no prefix is configured.
const AnsibleTagPrefix = "v"

// TagLister enumerates repository tags for tag-derived flavors.
type TagLister interface {
	ListTags(ctx context.Context) ([]string, error)
}

// ansibleSource infers the version of an Ansible role from git tags. Roles
// carry no local version file, so there is nothing to write; version
// changes happen only through tagging.
type ansibleSource struct {
	tags      TagLister
	tagPrefix string
}

// NewAnsibleSource creates the version source for an Ansible role. An empty
// prefix selects AnsibleTagPrefix.
func NewAnsibleSource(tags TagLister, tagPrefix string) VersionSource {
	if tagPrefix == "" {
		tagPrefix = AnsibleTagPrefix
	}
	return &ansibleSource{tags: tags, tagPrefix: tagPrefix}
}

func (s *ansibleSource) Flavor() domain.Flavor { return domain.FlavorAnsible }

func (s *ansibleSource) Path() string { return "" }

// Extract returns the greatest parseable tag after stripping the prefix, or
// nil when no tag qualifies.
func (s *ansibleSource) Extract(ctx context.Context) (*domain.Version, error) {
	tags, err := s.tags.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate tags: %w", err)
	}
	candidates := make([]string, 0, len(tags))
	for _, tag := range tags {
		candidates = append(candidates, strings.TrimPrefix(tag, s.tagPrefix))
	}
	return domain.MaxVersion(candidates), nil
}

func (s *ansibleSource) Write(_ context.Context, _ *domain.Version) error {
	return fmt.Errorf("%w: ansible role versions live in git tags", domain.ErrUnknownFlavorOperation)
}
