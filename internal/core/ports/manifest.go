package ports

import "go.trai.ch/fxdev/internal/core/domain"

// ManifestPatcher keeps the resource manifest in sync with a target profile.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestPatcher interface {
	// Patch rewrites the manifest under root towards the profile. It reports
	// whether the file was modified. A missing manifest is not an error and
	// leaves the resource untouched.
	Patch(root string, profile domain.TargetProfile) (bool, error)

	// Fingerprint returns a content hash of the manifest under root, used to
	// skip change notifications for writes that did not alter the content.
	Fingerprint(root string) (uint64, error)
}
