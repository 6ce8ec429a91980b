package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/caverna/vbump/internal/domain"
)

// vsnPattern matches the {vsn, "X.Y.Z"} entry of an application resource
// file. Only the quoted value is rewritten; everything around it survives.
var vsnPattern = regexp.MustCompile(`(\{\s*vsn\s*,\s*")([^"]*)("\s*\})`)

// erlangSource reads and rewrites the vsn entry of the single application
// resource file matched during detection. All other lines are preserved
// verbatim on write.
type erlangSource struct {
	fs   afero.Fs
	path string
}

// NewErlangSource creates the version source for an Erlang application. The
// path is the resource file located by ErlangResourceFile.
func NewErlangSource(fsys afero.Fs, path string) VersionSource {
	return &erlangSource{fs: fsys, path: path}
}

func (s *erlangSource) Flavor() domain.Flavor { return domain.FlavorErlang }

func (s *erlangSource) Path() string { return s.path }

func (s *erlangSource) Extract(_ context.Context) (*domain.Version, error) {
	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}
	idx := findVsnLine(lines)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMalformedResourceFile, s.path)
	}
	m := vsnPattern.FindStringSubmatch(lines[idx])
	return domain.ParseVersion(m[2])
}

func (s *erlangSource) Write(_ context.Context, v *domain.Version) error {
	lines, err := s.readLines()
	if err != nil {
		return err
	}
	idx := findVsnLine(lines)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrMalformedResourceFile, s.path)
	}
	lines[idx] = vsnPattern.ReplaceAllString(lines[idx], "${1}"+v.String()+"${3}")
	data := []byte(strings.Join(lines, "\n"))
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *erlangSource) readLines() ([]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return strings.Split(string(data), "\n"), nil
}

func findVsnLine(lines []string) int {
	for i, line := range lines {
		if vsnPattern.MatchString(line) {
			return i
		}
	}
	return -1
}
