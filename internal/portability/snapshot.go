// Package portability moves tracked data in and out of the store: snapshot
// export and import (JSON, YAML, optionally age-encrypted) and the
// spreadsheet report.
package portability

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"filippo.io/age"
	"filippo.io/age/armor"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/logger"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/storage"
	"github.com/julianstephens/myroutine/internal/validation"
)

var (
	ErrWrongPassphrase  = errors.New("wrong passphrase")
	ErrPassphraseNeeded = errors.New("snapshot is encrypted, a passphrase is required")
	ErrUnknownFormat    = errors.New("unknown snapshot format")
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

type ExportOptions struct {
	Format     Format
	Passphrase string // encrypts the output with age when set
}

// BuildSnapshot collects the exportable keys from repo.
func BuildSnapshot(repo *storage.Repository, now time.Time) (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.RoutineData, err = repo.DayRecords(); err != nil {
		return snap, err
	}
	if snap.Goals, err = repo.Goals(); err != nil {
		return snap, err
	}
	if snap.Habits, err = repo.Habits(); err != nil {
		return snap, err
	}
	if snap.Templates, err = repo.Templates(); err != nil {
		return snap, err
	}
	prefs, err := repo.Preferences()
	if err != nil {
		return snap, err
	}
	snap.Config = &prefs
	snap.ExportDate = now.UTC().Format(time.RFC3339)
	snap.Version = constants.SchemaVersion
	return snap, nil
}

// Export writes a snapshot of repo to w.
func Export(repo *storage.Repository, w io.Writer, opts ExportOptions, now time.Time) (models.Snapshot, error) {
	snap, err := BuildSnapshot(repo, now)
	if err != nil {
		return snap, err
	}
	data, err := Encode(snap, opts.Format)
	if err != nil {
		return snap, err
	}
	if opts.Passphrase != "" {
		if data, err = encrypt(data, opts.Passphrase); err != nil {
			return snap, err
		}
	}
	if _, err := w.Write(data); err != nil {
		return snap, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return snap, nil
}

func Encode(snap models.Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// IsEncrypted reports whether data is an armored age file.
func IsEncrypted(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte(armor.Header))
}

// Decode reads a snapshot in any supported encoding. Encrypted input needs
// the passphrase it was exported with.
func Decode(data []byte, passphrase string) (*models.Snapshot, error) {
	if IsEncrypted(data) {
		if passphrase == "" {
			return nil, ErrPassphraseNeeded
		}
		plain, err := decrypt(data, passphrase)
		if err != nil {
			return nil, err
		}
		data = plain
	}

	snap := &models.Snapshot{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, snap); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
		}
		return snap, nil
	}
	if err := yaml.Unmarshal(trimmed, snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot YAML: %w", err)
	}
	return snap, nil
}

// Import validates snap and replaces the stored data with it in one write.
// Blocking problems leave the store untouched and return an error matching
// errors.ErrImportValidation. The result lists every issue found, warnings
// included.
func Import(repo *storage.Repository, snap *models.Snapshot) (validation.ValidationResult, error) {
	result := validation.New().ValidateSnapshot(snap)
	if err := result.Err(); err != nil {
		return result, err
	}

	values := map[string]any{constants.KeyRoutineData: snap.RoutineData}
	if snap.Goals != nil {
		values[constants.KeyGoals] = snap.Goals
	}
	if snap.Habits != nil {
		values[constants.KeyHabits] = snap.Habits
	}
	if snap.Config != nil {
		values[constants.KeyPreferences] = snap.Config
	}
	if snap.Templates != nil {
		values[constants.KeyTemplates] = snap.Templates
	}

	if err := repo.PutMany(values); err != nil {
		return result, err
	}
	logger.Info("Imported snapshot", "days", len(snap.RoutineData), "version", snap.Version, "exported", snap.ExportDate)
	return result, nil
}

func encrypt(plain []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)
	w, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing age encryption: %w", err)
	}
	if _, err := w.Write(plain); err != nil {
		return nil, fmt.Errorf("encrypting snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}
	return buf.Bytes(), nil
}

func decrypt(data []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age identity: %w", err)
	}
	r, err := age.Decrypt(armor.NewReader(bytes.NewReader(data)), identity)
	if err != nil {
		// age has no typed error for a bad passphrase
		msg := err.Error()
		if strings.Contains(msg, "no identity matched") || strings.Contains(msg, "incorrect") {
			return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
		}
		return nil, fmt.Errorf("failed to decrypt snapshot: %w", err)
	}
	plain, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt snapshot: %w", err)
	}
	return plain, nil
}
