// Package commands implements the CLI subcommands that run instead of the
// HTTP server.
package commands

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/vamostennis/newsletter/internal/auth"
)

// HashPassword handles the hash-password subcommand: it prompts for the
// operator credentials and writes the auth file consumed by the server's
// Basic Auth gate.
func HashPassword(args []string) {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	file := fs.String("file", auth.DefaultCredentialsFile, "Path to the credentials file")
	overwrite := fs.Bool("overwrite", false, "Overwrite an existing credentials file")
	insecureUnmask := fs.Bool("insecure-unmask-password", false, "Show password as plain text (INSECURE!)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: newsletter hash-password [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates a credentials file with an Argon2id hashed password.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	fmt.Print("Enter username: ")
	var username string
	if _, err := fmt.Scanln(&username); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading username: %v\n", err)
		os.Exit(1)
	}
	if username == "" {
		fmt.Fprintln(os.Stderr, "Username cannot be empty")
		os.Exit(1)
	}

	var password, confirm string
	if *insecureUnmask {
		fmt.Fprintln(os.Stderr, "⚠️  WARNING: Password will be visible on screen!")
		fmt.Print("Enter password:   ")
		if _, err := fmt.Scanln(&password); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
			os.Exit(1)
		}
		fmt.Print("Confirm password: ")
		if _, err := fmt.Scanln(&confirm); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading password confirmation: %v\n", err)
			os.Exit(1)
		}
	} else {
		password = readPasswordWithMask("Enter password:   ")
		confirm = readPasswordWithMask("Confirm password: ")
	}

	if password == "" {
		fmt.Fprintln(os.Stderr, "Password cannot be empty")
		os.Exit(1)
	}
	if password != confirm {
		fmt.Fprintln(os.Stderr, "Passwords do not match")
		os.Exit(1)
	}

	if err := auth.WriteFile(*file, username, password, *overwrite); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Credentials file created: %s (user: %s)\n", *file, username)
}

// readPasswordWithMask reads password input and displays asterisks.
func readPasswordWithMask(prompt string) string {
	fmt.Print(prompt)

	oldState, err := term.GetState(int(syscall.Stdin))
	if err != nil {
		// Fall back to hidden input if we can't set raw mode
		password, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(password)
	}
	defer term.Restore(int(syscall.Stdin), oldState)

	if _, err := term.MakeRaw(int(syscall.Stdin)); err != nil {
		password, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(password)
	}

	var password []byte
	reader := bufio.NewReader(os.Stdin)

	for {
		char, _, err := reader.ReadRune()
		if err != nil {
			break
		}

		switch char {
		case '\n', '\r': // Enter
			fmt.Println()
			return string(password)
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Print("\b \b")
			}
		case 3: // Ctrl+C
			fmt.Println()
			os.Exit(1)
		default:
			if char >= 32 && char <= 126 {
				password = append(password, byte(char))
				fmt.Print("*")
			}
		}
	}

	fmt.Println()
	return string(password)
}
