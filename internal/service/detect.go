package service

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/caverna/vbump/internal/domain"
)

const (
	nodeManifestName   = "package.json"
	ansibleMetaPath    = "meta/main.yml"
	erlangResourceGlob = "src/*.app.src"
)

// Detect determines the project flavor from directory contents. The checks
// run in fixed priority order: Node manifest, Ansible role metadata, Erlang
// application resource file, Plain. Detection is deterministic and
// exclusive; the first hit wins.
func Detect(fsys afero.Fs, dir string) (domain.Flavor, error) {
	exists, err := afero.Exists(fsys, filepath.Join(dir, nodeManifestName))
	if err != nil {
		return 0, err
	}
	if exists {
		return domain.FlavorNode, nil
	}
	if isAnsibleRole(fsys, dir) {
		return domain.FlavorAnsible, nil
	}
	if _, ok := ErlangResourceFile(fsys, dir); ok {
		return domain.FlavorErlang, nil
	}
	return domain.FlavorPlain, nil
}

// isAnsibleRole reports whether dir carries role metadata. The file must
// parse as a YAML mapping; a stray meta/main.yml of any other shape does
// not turn the project into a role.
func isAnsibleRole(fsys afero.Fs, dir string) bool {
	data, err := afero.ReadFile(fsys, filepath.Join(dir, ansibleMetaPath))
	if err != nil {
		return false
	}
	var meta map[string]any
	return yaml.Unmarshal(data, &meta) == nil && meta != nil
}

// ErlangResourceFile returns the single application resource file under
// src/, if exactly one exists. Zero or multiple matches fall through so
// detection can continue.
func ErlangResourceFile(fsys afero.Fs, dir string) (string, bool) {
	sub := afero.NewIOFS(afero.NewBasePathFs(fsys, dir))
	matches, err := doublestar.Glob(sub, erlangResourceGlob)
	if err != nil || len(matches) != 1 {
		return "", false
	}
	return filepath.Join(dir, filepath.FromSlash(matches[0])), true
}
