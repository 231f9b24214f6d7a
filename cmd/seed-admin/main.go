// Command seed-admin creates, resets or deletes an administrator directly in
// the store. Administrators are never created through the public API.
//
//	seed-admin -email professor@university.edu -name "Jane Doe"
//	seed-admin -email professor@university.edu -reset
//	seed-admin -email professor@university.edu -delete
//
// The password is read from -password, then $ADMIN_PASSWORD, then prompted
// for without echo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/scholarfolio/portfolio-api/internal/app"
	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
	"github.com/scholarfolio/portfolio-api/internal/core/service"
	"github.com/scholarfolio/portfolio-api/internal/pkg/config"
	"github.com/scholarfolio/portfolio-api/internal/pkg/security"
	"github.com/scholarfolio/portfolio-api/pkg/logger"
)

const minPasswordLength = 6

func main() {
	var (
		email    = flag.String("email", "", "administrator email (required)")
		name     = flag.String("name", "", "display name, required when creating")
		password = flag.String("password", "", "password; prompted for when empty")
		reset    = flag.Bool("reset", false, "set a new password for an existing administrator")
		remove   = flag.Bool("delete", false, "delete the administrator")
	)
	flag.Parse()

	if err := run(*email, *name, *password, *reset, *remove); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(email, name, password string, reset, remove bool) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("-email is required")
	}
	if reset && remove {
		return errors.New("-reset and -delete are mutually exclusive")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadForTool(ctx)
	if err != nil {
		return err
	}
	if cfg.Store != config.StoreMongo {
		return errors.New("seed-admin needs STORE=mongo; the memory store lives inside the server process")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	stores, err := app.OpenStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.Close(context.Background())

	admins := service.NewAdminService(stores.Admins, security.NewBcryptHasher(cfg.BcryptCost), log)

	switch {
	case remove:
		admin, err := admins.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if err := admins.Delete(ctx, admin.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted admin %s (%s)\n", admin.Email, admin.ID)

	case reset:
		admin, err := admins.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		pw, err := readPassword(password)
		if err != nil {
			return err
		}
		in := ports.UpdateAdminInput{Password: &pw}
		if name = strings.TrimSpace(name); name != "" {
			in.Name = &name
		}
		if _, err := admins.Update(ctx, admin.ID, in); err != nil {
			return err
		}
		fmt.Printf("Password reset for %s\n", admin.Email)

	default:
		if strings.TrimSpace(name) == "" {
			return errors.New("-name is required when creating an admin")
		}
		pw, err := readPassword(password)
		if err != nil {
			return err
		}
		admin, err := admins.Create(ctx, ports.CreateAdminInput{Name: name, Email: email, Password: pw})
		if errors.Is(err, domain.ErrAdminExists) {
			return fmt.Errorf("an admin with email %s already exists, use -reset to change the password", email)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Created admin %s (%s) with ID %s\n", admin.Name, admin.Email, admin.ID)
	}
	return nil
}

func readPassword(flagValue string) (string, error) {
	pw := flagValue
	if pw == "" {
		pw = os.Getenv("ADMIN_PASSWORD")
	}
	if pw == "" {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", errors.New("no password given and stdin is not a terminal")
		}
		fmt.Print("Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		pw = string(b)
	}
	if len(pw) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return pw, nil
}
