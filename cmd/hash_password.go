package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/marcus/modalkit/internal/config"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash a password for the demo's user list",
	Long: `Reads a password and prints its bcrypt hash.

The password is read without echo from a terminal, or as one line from
standard input otherwise. With --user the hash is stored in
.modalkit/config.json instead of printed. --remove --user deletes a stored
user without reading a password.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		cost, _ := cmd.Flags().GetInt("cost")
		remove, _ := cmd.Flags().GetBool("remove")
		if user != "" && !strings.Contains(user, "@") {
			return fmt.Errorf("invalid email %q", user)
		}

		if remove {
			if user == "" {
				return errors.New("--remove needs --user")
			}
			if err := config.RemoveUser(getBaseDir(), user); err != nil {
				return fmt.Errorf("remove user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "REMOVED %s\n", strings.ToLower(user))
			return nil
		}

		password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		if user == "" {
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		}
		if err := config.SetUser(getBaseDir(), user, string(hash)); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "STORED %s\n", strings.ToLower(user))
		return nil
	},
}

func init() {
	hashPasswordCmd.Flags().String("user", "", "Store the hash for this email in the config")
	hashPasswordCmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	hashPasswordCmd.Flags().Bool("remove", false, "Delete the stored hash for --user")
	rootCmd.AddCommand(hashPasswordCmd)
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return nonEmpty(string(b))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return nonEmpty(strings.TrimRight(line, "\r\n"))
}

func nonEmpty(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	return password, nil
}
