// Command authd-local exercises the local-only backend: all account and
// session state is kept in an embedded BadgerDB on this machine, with no
// server involved.
//
// Usage:
//
//	authd-local signup -username alice -email alice@example.com -password pw
//	authd-local login  -username alice -password pw
//	authd-local me
//	authd-local logout
//	authd-local delete -username alice
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sahjnr/authd/pkg/domain"
	"github.com/sahjnr/authd/pkg/localstore"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	dataDir := fs.String("data", defaultDataDir(), "local store directory")
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := localstore.Open(*dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	switch command {
	case "signup":
		account, err := store.Signup(ctx, *username, *email, *password)
		if err != nil {
			return err
		}
		return printAccount(account)

	case "login":
		account, err := store.Login(ctx, *username, *password)
		if err != nil {
			return err
		}
		return printAccount(account)

	case "me":
		account, err := store.Profile(ctx)
		if errors.Is(err, domain.ErrNoActiveSession) {
			fmt.Println("not logged in")
			return nil
		}
		if err != nil {
			return err
		}
		return printAccount(account)

	case "logout":
		if err := store.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	case "delete":
		if err := store.DeleteAccount(ctx, *username); err != nil {
			return err
		}
		fmt.Println("account deleted")
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printAccount(account *domain.Account) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(account.View())
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".authd-local"
	}
	return filepath.Join(home, ".authd-local")
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: authd-local <signup|login|me|logout|delete> [flags]")
}
