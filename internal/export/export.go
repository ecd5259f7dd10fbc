// ABOUTME: Serializes an ExtractionResult to a JSON or YAML file.
// ABOUTME: Output is deterministic and written atomically via temp file.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/coroshub/coroshub/internal/models"
)

// Format selects the output serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name from the CLI.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format: %s (use json or yaml)", s)
	}
}

// Marshal renders the result in the given format. The document root is
// the activity array itself. Field order follows the struct
// declarations, so the same result always renders to the same bytes.
func Marshal(result *models.ExtractionResult, format Format) ([]byte, error) {
	activities := result.Activities
	if activities == nil {
		activities = []models.Activity{}
	}

	switch format {
	case FormatYAML:
		return yaml.Marshal(activities)
	default:
		return json.MarshalIndent(activities, "", "  ")
	}
}

// Write serializes the result to destination. The file appears only
// after a successful full serialization: bytes go to a temp file in the
// destination directory first, then rename into place. A missing
// directory or unwritable path surfaces as the wrapped filesystem error.
func Write(result *models.ExtractionResult, destination string, format Format) error {
	data, err := Marshal(result, format)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	tmp := filepath.Join(
		filepath.Dir(destination),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(destination), uuid.NewString()[:8]),
	)
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	if err := os.Rename(tmp, destination); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
