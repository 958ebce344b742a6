package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/client/client"
	"github.com/dmitrijs2005/worldcovers/internal/client/services"
	"github.com/dmitrijs2005/worldcovers/internal/fallback"
	"github.com/dmitrijs2005/worldcovers/internal/refdata"
)

// getMultiline is a test seam for GetMultiline.
var getMultiline = GetMultiline

type formPrompt struct {
	prompt    string
	field     func(*catalog.SubmissionForm) *string
	multiline bool
	hint      refdata.Resource
}

var contributeForm = []formPrompt{
	{prompt: "State (required)", field: func(f *catalog.SubmissionForm) *string { return &f.State }},
	{prompt: "Town (required)", field: func(f *catalog.SubmissionForm) *string { return &f.Town }},
	{prompt: "First seen year (required)", field: func(f *catalog.SubmissionForm) *string { return &f.FirstSeen }},
	{prompt: "Last seen year", field: func(f *catalog.SubmissionForm) *string { return &f.LastSeen }},
	{prompt: "Type (required)", field: func(f *catalog.SubmissionForm) *string { return &f.Type }, hint: refdata.PostmarkShapes},
	{prompt: "Color (required)", field: func(f *catalog.SubmissionForm) *string { return &f.Color }, hint: refdata.Colors},
	{prompt: "Dimensions", field: func(f *catalog.SubmissionForm) *string { return &f.Dimensions }},
	{prompt: "Manuscript", field: func(f *catalog.SubmissionForm) *string { return &f.Manuscript }},
	{prompt: "Rarity", field: func(f *catalog.SubmissionForm) *string { return &f.Rarity }},
	{prompt: "Description", field: func(f *catalog.SubmissionForm) *string { return &f.Description }, multiline: true},
	{prompt: "Citation references", field: func(f *catalog.SubmissionForm) *string { return &f.CitationReferences }, multiline: true},
}

// Contribute collects a new marking and submits it for review.
func (a *App) Contribute(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrUnauthorized
	}

	var form catalog.SubmissionForm
	for _, p := range contributeForm {
		if p.hint != "" {
			a.printHint(ctx, p.hint)
		}
		var (
			v   string
			err error
		)
		if p.multiline {
			v, err = getMultiline(a.reader, p.prompt, a.out)
		} else {
			v, err = getSimpleText(a.reader, p.prompt, a.out)
		}
		if err != nil {
			return err
		}
		*p.field(&form) = v
	}

	path, err := getSimpleText(a.reader, "Image file (optional, PNG/JPEG/WebP/TIFF up to 10 MB)", a.out)
	if err != nil {
		return err
	}

	var img *services.ImageFile
	if path = strings.TrimSpace(path); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		fi, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat image: %w", err)
		}
		img = &services.ImageFile{Name: path, Size: fi.Size(), Body: f}
	}

	res, err := a.submissionService.Submit(ctx, form, img)
	if err != nil {
		return err
	}

	a.printf("Submitted %q for review (id %s)\n", res.Submission.Name, res.Submission.ID)
	if res.Warning != "" {
		a.printf("Warning: %s\n", res.Warning)
	}
	return nil
}

// printHint shows the known choices of a form field. Failures are silent;
// the field accepts free text.
func (a *App) printHint(ctx context.Context, r refdata.Resource) {
	res := a.catalogService.Options(ctx, r)
	if res.State != fallback.Success || len(res.Items) == 0 {
		return
	}
	a.printOptions("Choices", res.Items)
}
