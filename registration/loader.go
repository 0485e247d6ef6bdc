package registration

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* Seed loading: registrations declared in YAML, applied at startup
 * Lets a deployment ship with known subscribers without calling the API
 */

// SeedFile represents the structure of the seed YAML
type SeedFile struct {
	Webhooks []SeedWebhook `yaml:"webhooks"`
}

// SeedWebhook represents a single registration in the YAML file
type SeedWebhook struct {
	URL     string            `yaml:"url"`
	Events  []string          `yaml:"events"`
	Secret  string            `yaml:"secret"`
	Headers map[string]string `yaml:"headers"`
}

// LoadSeed reads and parses a seed file
func LoadSeed(path string) (SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("reading seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return SeedFile{}, fmt.Errorf("parsing seed file: %w", err)
	}
	return seed, nil
}

// Apply registers every seed entry not already present (matched by URL).
// Returns the number of registrations created.
func (s SeedFile) Apply(ctx context.Context, svc UseCase) (int, error) {
	existing, err := svc.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing registrations: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, reg := range existing {
		known[reg.URL] = true
	}

	created := 0
	for _, wh := range s.Webhooks {
		if known[wh.URL] {
			continue
		}
		if _, err := svc.Register(ctx, wh.URL, wh.Events, wh.Secret, wh.Headers); err != nil {
			return created, fmt.Errorf("registering %s: %w", wh.URL, err)
		}
		created++
	}
	return created, nil
}
