package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/filex"
	"github.com/dmitrijs2005/worldcovers/internal/netx"
)

// imageDir is where downloaded images are saved, relative to the working
// directory.
const imageDir = "images"

// Image downloads the image of a catalog record, or of one of the
// contributor's submissions, into ./images.
func (a *App) Image(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: image <id>")
	}
	id := args[0]

	m, err := a.findMarking(ctx, id)
	if err != nil {
		return err
	}
	if !m.HasImage() {
		a.println("This entry has no image")
		return nil
	}

	dir, err := filex.EnsureSubDir(imageDir)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	ct, _, err := netx.Download(ctx, a.downloader, m.ImageURL, tmp, common.MaxImageSize)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("download image: %w", err)
	}

	dest := filepath.Join(dir, filex.SafeName(imageName(m.ImageURL), id+extension(ct)))
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return err
	}
	a.printf("Image saved to: %s\n", dest)
	return nil
}

func (a *App) findMarking(ctx context.Context, id string) (catalog.Marking, error) {
	if e, ok := a.search.Entry(id); ok {
		return e.Base(), nil
	}
	rec, err := a.catalogService.Record(ctx, id)
	if err == nil {
		return rec.Marking, nil
	}
	if a.isLoggedIn() {
		if sub, serr := a.submissionService.Get(ctx, id); serr == nil {
			return sub.Marking, nil
		}
	}
	return catalog.Marking{}, err
}

// imageName is the last path segment of an image URL.
func imageName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}

func extension(contentType string) string {
	exts, _ := mime.ExtensionsByType(contentType)
	if len(exts) == 0 {
		return ""
	}
	return exts[0]
}
