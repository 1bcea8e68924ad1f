package repository

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"golang.org/x/mod/modfile"
)

// Detector derives project metadata used to qualify summary entity names.
type Detector struct {
	fs afs.Service
}

// NewDetector creates a project detector.
func NewDetector() *Detector {
	return &Detector{fs: afs.New()}
}

// ModulePath reads go.mod under baseURL and returns the declared module
// path. Extractors that emit unqualified names can use it as the qualifier
// prefix so entities from different projects never collide in a merged
// graph.
func (d *Detector) ModulePath(ctx context.Context, baseURL string) (string, error) {
	URL := url.Join(baseURL, "go.mod")
	data, err := d.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", fmt.Errorf("failed to read %v: %w", URL, err)
	}
	file, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse %v: %w", URL, err)
	}
	if file.Module == nil {
		return "", fmt.Errorf("no module declaration in %v", URL)
	}
	return file.Module.Mod.Path, nil
}
