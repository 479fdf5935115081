package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"marketer/internal/domain"
)

// contactsFile is the on-disk envelope. Older files that hold a bare
// contact array (no envelope) still load; saves always write version 1.
type contactsFile struct {
	Version  int              `json:"version"`
	Contacts []domain.Contact `json:"contacts"`
}

func readContactsFile(path string) ([]domain.Contact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	trimmed := bytes.TrimLeft(b, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var contacts []domain.Contact
		if err := json.Unmarshal(b, &contacts); err != nil {
			return nil, err
		}
		return contacts, nil
	}

	var f contactsFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return f.Contacts, nil
}

// writeContactsFile overwrites the contact file wholesale. The write
// goes through a temp file and rename so a crash mid-write cannot
// leave a half-written file behind.
func writeContactsFile(path string, contacts []domain.Contact) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f := contactsFile{Version: 1, Contacts: contacts}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".contacts-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
