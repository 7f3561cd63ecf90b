// ABOUTME: Staff authentication CLI commands
// ABOUTME: Login, signup, logout, and session status with hidden password prompts
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/harperreed/phonestore/app"
	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/outcome"
	"github.com/harperreed/phonestore/session"
)

// readPassword prompts on stdout and reads without echo. Tests replace it.
var readPassword = func(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(passwordBytes), nil
}

// AuthLoginCommand signs a staff member in.
func AuthLoginCommand(ctx context.Context, sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("auth login", flag.ContinueOnError)
	email := fs.String("email", "", "Staff email")
	password := fs.String("password", "", "Password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("--email is required")
	}
	if *password == "" {
		pw, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		*password = pw
	}

	res := sf.Session.Login(ctx, session.Credentials{Email: *email, Password: *password})
	if !res.OK() {
		return fmt.Errorf("%s", res.Message)
	}

	_, _ = fmt.Fprintf(out, "✓ Signed in as %s (%s)\n", displayName(*res.User), res.User.Role)
	return nil
}

// AuthSignupCommand submits an account request for administrator approval.
func AuthSignupCommand(ctx context.Context, sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("auth signup", flag.ContinueOnError)
	name := fs.String("name", "", "Full name")
	email := fs.String("email", "", "Email")
	phone := fs.String("phone", "", "Phone number")
	password := fs.String("password", "", "Password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	details := session.SignupDetails{
		FullName:        *name,
		Email:           *email,
		PhoneNumber:     *phone,
		Password:        *password,
		ConfirmPassword: *password,
	}
	if *password == "" {
		pw, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		strength := session.PasswordStrength(pw)
		_, _ = fmt.Fprintf(out, "Strength: %s\n", strength.Label)

		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}
		details.Password = pw
		details.ConfirmPassword = confirm
	}

	res := sf.Session.Signup(ctx, details)
	if res.Status != outcome.StatusSuccess {
		return fmt.Errorf("%s", res.Message)
	}
	_, _ = fmt.Fprintf(out, "✓ %s\n", res.Message)
	return nil
}

// AuthLogoutCommand ends the current session.
func AuthLogoutCommand(sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("auth logout", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	sf.Session.Logout()
	_, _ = fmt.Fprintln(out, "✓ Signed out")
	return nil
}

// AuthStatusCommand shows who is signed in and when the session expires.
func AuthStatusCommand(sf *app.Storefront, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("auth status", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := sf.Session.Session()
	if s == nil {
		_, _ = fmt.Fprintln(out, "Not signed in")
		return nil
	}
	_, _ = fmt.Fprintf(out, "Signed in:  %s <%s>\n", displayName(*s.User), s.User.Email)
	_, _ = fmt.Fprintf(out, "Role:       %s\n", s.User.Role)
	_, _ = fmt.Fprintf(out, "Expires:    %s\n", s.IssuedAt.Add(models.SessionTTL).Local().Format("2006-01-02 15:04"))
	return nil
}

func displayName(u models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
