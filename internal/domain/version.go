package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version wraps semver.Version with the bump and augmentation operations
// shared by all project flavors.
type Version struct {
	*semver.Version
}

// ParseVersion parses a canonical version string.
func ParseVersion(s string) (*Version, error) {
	v, err := semver.StrictNewVersion(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	return &Version{v}, nil
}

// String returns the canonical MAJOR.MINOR.PATCH[-PRE][+BUILD] form.
func (v *Version) String() string {
	return v.Version.String()
}

// BumpKind selects which field Bump advances.
type BumpKind int

const (
	BumpPatch BumpKind = iota
	BumpMinor
	BumpMajor
	BumpPre
)

var bumpKindNames = map[BumpKind]string{
	BumpPatch: "patch",
	BumpMinor: "minor",
	BumpMajor: "major",
	BumpPre:   "pre",
}

func (k BumpKind) String() string {
	if name, ok := bumpKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("BumpKind(%d)", int(k))
}

// ParseBumpKind maps a CLI argument to a BumpKind. Only the four canonical
// names are accepted.
func ParseBumpKind(s string) (BumpKind, error) {
	for kind, name := range bumpKindNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown bump kind %q (want patch, minor, major or pre)", s)
}

// Bump returns the next version for the given kind. Patch, minor and major
// bumps reset all lower fields and drop prerelease and build metadata. A pre
// bump starts or increments a single numeric prerelease counter.
func (v *Version) Bump(kind BumpKind) (*Version, error) {
	switch kind {
	case BumpPatch:
		return &Version{semver.New(v.Major(), v.Minor(), v.Patch()+1, "", "")}, nil
	case BumpMinor:
		return &Version{semver.New(v.Major(), v.Minor()+1, 0, "", "")}, nil
	case BumpMajor:
		return &Version{semver.New(v.Major()+1, 0, 0, "", "")}, nil
	case BumpPre:
		return v.bumpPrerelease()
	default:
		return nil, fmt.Errorf("unknown bump kind %v", kind)
	}
}

func (v *Version) bumpPrerelease() (*Version, error) {
	pre := v.Prerelease()
	if pre == "" {
		return &Version{semver.New(v.Major(), v.Minor(), v.Patch(), "1", v.Metadata())}, nil
	}
	if strings.Contains(pre, ".") {
		return nil, fmt.Errorf("%w: %q has more than one part", ErrUnsupportedPrerelease, pre)
	}
	n, err := strconv.ParseUint(pre, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not numeric", ErrUnsupportedPrerelease, pre)
	}
	next := strconv.FormatUint(n+1, 10)
	return &Version{semver.New(v.Major(), v.Minor(), v.Patch(), next, v.Metadata())}, nil
}

// AppendBuild appends the given parts to the build metadata sequence,
// creating it when absent. Existing parts are never replaced. Empty parts
// are skipped.
func (v *Version) AppendBuild(parts ...string) (*Version, error) {
	meta := appendParts(v.Metadata(), parts)
	next, err := v.Version.SetMetadata(meta)
	if err != nil {
		return nil, fmt.Errorf("%w: build metadata %q", ErrInvalidVersion, meta)
	}
	return &Version{&next}, nil
}

// AppendPrerelease appends the given parts to the prerelease sequence,
// creating it when absent. The same composition rule as AppendBuild.
func (v *Version) AppendPrerelease(parts ...string) (*Version, error) {
	pre := appendParts(v.Prerelease(), parts)
	next, err := v.Version.SetPrerelease(pre)
	if err != nil {
		return nil, fmt.Errorf("%w: prerelease %q", ErrInvalidVersion, pre)
	}
	return &Version{&next}, nil
}

func appendParts(existing string, parts []string) string {
	joined := existing
	for _, p := range parts {
		if p == "" {
			continue
		}
		if joined == "" {
			joined = p
		} else {
			joined += "." + p
		}
	}
	return joined
}

// MaxVersion parses each candidate and returns the greatest one, ordered
// lexicographically on the canonical string form. Candidates that do not
// parse are silently excluded. Returns nil when nothing parses.
func MaxVersion(candidates []string) *Version {
	var parsed []*Version
	for _, c := range candidates {
		v, err := ParseVersion(c)
		if err != nil {
			continue
		}
		parsed = append(parsed, v)
	}
	if len(parsed) == 0 {
		return nil
	}
	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].String() < parsed[j].String()
	})
	return parsed[len(parsed)-1]
}
