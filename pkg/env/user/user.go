package user

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Env holds the users allowed to ask questions. An empty list disables
// authorization altogether.
type Env struct {
	Users []string
}

func NewUserEnv() *Env {
	return &Env{}
}

func (u *Env) Populate() error {
	if path := os.Getenv("USERS_FILE_PATH"); path != "" {
		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("unable to read users file: %w", err)
		}
		defer func() { _ = file.Close() }()

		scanner := bufio.NewScanner(file)
		scanner.Split(bufio.ScanLines)
		for scanner.Scan() {
			if s := strings.TrimSpace(scanner.Text()); s != "" && !strings.HasPrefix(s, "#") {
				u.Users = append(u.Users, s)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("unable to scan users file: %w", err)
		}

		return nil
	}

	if users := os.Getenv("AUTHORIZED_USERS"); users != "" {
		for _, entry := range strings.Split(users, ",") {
			if s := strings.TrimSpace(entry); s != "" {
				u.Users = append(u.Users, s)
			}
		}
	}

	return nil
}

func (u *Env) Enabled() bool {
	return len(u.Users) > 0
}

func (u *Env) IsAuthorized(name string) bool {
	if !u.Enabled() {
		return true
	}
	for _, user := range u.Users {
		if user == name {
			return true
		}
	}
	return false
}
