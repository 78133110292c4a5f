// Package adminsetup implements the interactive prompt that creates the
// admin account or resets its password.
package adminsetup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/folio/internal/common"
	servermodels "github.com/dmitrijs2005/folio/internal/server/models"
	"golang.org/x/term"
)

// ErrPasswordMismatch is returned when the confirmation differs.
var ErrPasswordMismatch = common.Invalid("Passwords do not match!")

type AdminCreator interface {
	CreateAdmin(ctx context.Context, email, password string) (*servermodels.User, error)
}

type Setup struct {
	reader *bufio.Reader
	out    io.Writer
	users  AdminCreator

	// password reads one secret line; swapped out in tests.
	password func() (string, error)
}

// New returns a Setup reading answers from in. When in is a terminal the
// passwords are read without echo.
func New(in io.Reader, out io.Writer, users AdminCreator) *Setup {
	s := &Setup{
		reader: bufio.NewReader(in),
		out:    out,
		users:  users,
	}
	s.password = s.readLine

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		s.password = func() (string, error) {
			pw, err := term.ReadPassword(fd)
			defer common.WipeByteArray(pw)
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(pw), nil
		}
	}
	return s
}

// Run asks for the email and the password twice, then saves the account.
func (s *Setup) Run(ctx context.Context) (*servermodels.User, error) {
	fmt.Fprint(s.out, "Enter admin email: ")
	email, err := s.readLine()
	if err != nil {
		return nil, fmt.Errorf("error reading email: %w", err)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, common.Invalid("Email is required")
	}

	fmt.Fprint(s.out, "Enter admin password: ")
	password, err := s.password()
	if err != nil {
		return nil, fmt.Errorf("error reading password: %w", err)
	}

	fmt.Fprint(s.out, "Confirm password: ")
	confirm, err := s.password()
	if err != nil {
		return nil, fmt.Errorf("error reading password: %w", err)
	}

	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	u, err := s.users.CreateAdmin(ctx, email, password)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "Admin user created successfully: %s\n", u.Email)
	return u, nil
}

func (s *Setup) readLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
