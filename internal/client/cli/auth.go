package cli

import "context"

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and signs in. The password byte
// slice is wiped by the auth service.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in; use logout first")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	name := s.FullName
	if name == "" {
		name = s.Email
	}
	a.printf("Welcome, %s!\n", name)
	return nil
}

// Logout signs out and closes the dashboard.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not logged in")
		return nil
	}
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.dashboard.Unmount()
	a.println("Logged out")
	return nil
}

