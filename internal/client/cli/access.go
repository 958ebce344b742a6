package cli

import (
	"context"

	"github.com/dmitrijs2005/worldcovers/internal/client/client"
)

// RequestAccess collects the request-access form and sends it.
func (a *App) RequestAccess(ctx context.Context) error {
	var req client.AccessRequest
	prompts := []struct {
		prompt string
		field  *string
	}{
		{"Salutation (optional)", &req.Salutation},
		{"First name (required)", &req.FirstName},
		{"Last name (required)", &req.LastName},
		{"Email (required)", &req.Email},
		{"Phone number (optional)", &req.PhoneNumber},
		{"Organization (optional)", &req.Organization},
		{"Country (required)", &req.Country},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.prompt, a.out)
		if err != nil {
			return err
		}
		*p.field = v
	}
	comments, err := getMultiline(a.reader, "Comments (optional)", a.out)
	if err != nil {
		return err
	}
	req.Comments = comments

	if err := a.accessService.RequestAccess(ctx, req); err != nil {
		return err
	}
	a.println("Thank you! Your request has been received and will be reviewed.")
	return nil
}
