// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/clean-bible/pkg/types"
)

// ManifestSuffix is appended to the base name for the manifest file.
const ManifestSuffix = "_manifest.yaml"

// ManifestPath returns where the manifest for baseName lives in outputDir.
func ManifestPath(outputDir, baseName string) string {
	return filepath.Join(outputDir, baseName+ManifestSuffix)
}

// WriteManifest writes m to path as YAML, replacing any existing file.
func WriteManifest(path string, m types.Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return writeFile(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) (types.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, err
	}
	var m types.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return types.Manifest{}, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}
