package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Load reads a secret value from a file, trimming surrounding whitespace.
// The name is used in error messages to give context about the secret.
func Load(name, file string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "secret"
	}

	file = strings.TrimSpace(file)
	if file == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}

	return secret, nil
}
