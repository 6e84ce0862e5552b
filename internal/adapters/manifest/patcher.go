// Package manifest applies target profiles to resource manifests on disk.
package manifest

import (
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/fxdev/internal/core/domain"
	"go.trai.ch/fxdev/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestPatcher = (*Patcher)(nil)

// Patcher rewrites fxmanifest.lua in place.
type Patcher struct{}

// NewPatcher creates a manifest patcher.
func NewPatcher() *Patcher {
	return &Patcher{}
}

// Patch rewrites the manifest under root towards the profile and reports
// whether the file changed. A resource without a manifest is left untouched.
// The file is only written when the patched content differs.
func (p *Patcher) Patch(root string, profile domain.TargetProfile) (bool, error) {
	manifestPath := domain.ManifestPath(root)

	// #nosec G304 -- the path is derived from the resource root
	content, err := os.ReadFile(manifestPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		readErr := zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
		return false, zerr.With(readErr, "path", manifestPath)
	}

	patched := domain.PatchManifest(string(content), profile)
	if patched == string(content) {
		return false, nil
	}

	if err := os.WriteFile(manifestPath, []byte(patched), domain.FilePerm); err != nil {
		writeErr := zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
		return false, zerr.With(writeErr, "path", manifestPath)
	}

	return true, nil
}

// Fingerprint hashes the manifest content under root. A missing manifest
// hashes like an empty one, so removal and recreation are both observable.
func (p *Patcher) Fingerprint(root string) (uint64, error) {
	manifestPath := domain.ManifestPath(root)

	// #nosec G304 -- the path is derived from the resource root
	content, err := os.ReadFile(manifestPath)
	if os.IsNotExist(err) {
		return xxhash.Sum64(nil), nil
	}
	if err != nil {
		readErr := zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
		return 0, zerr.With(readErr, "path", manifestPath)
	}

	return xxhash.Sum64(content), nil
}
