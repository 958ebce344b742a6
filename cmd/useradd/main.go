// Command useradd creates a contributor account once a login request has
// been granted.
//
//	useradd -email ann@example.com -name "Ann Smith" [-d dsn] [-c config.yaml]
//
// The password is read from the terminal without echo, or from the first
// line of stdin when stdin is not a terminal.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/dmitrijs2005/worldcovers/internal/flagx"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
	"github.com/dmitrijs2005/worldcovers/internal/server/config"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/worldcovers/internal/server/services"
)

type registerFunc func(ctx context.Context, email, fullName, password string) (*models.User, error)

var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	us := services.NewUserService(db, rm, cfg, logging.NewJSON(os.Stderr, cfg.LogLevel))
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, us.Register); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, args []string, in *os.File, out io.Writer, register registerFunc) error {
	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "account email")
	name := fs.String("name", "", "full name shown as submitter")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-email", "-name"})); err != nil {
		return err
	}
	if strings.TrimSpace(*email) == "" {
		return errors.New("-email is required")
	}

	password, err := promptPassword(in, out)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	u, err := register(ctx, *email, *name, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created user %s (%s)\n", u.Email, u.ID)
	return nil
}

func promptPassword(in *os.File, out io.Writer) (string, error) {
	fd := int(in.Fd())
	if isTerminal(fd) {
		fmt.Fprint(out, "Password: ")
		b, err := readPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
