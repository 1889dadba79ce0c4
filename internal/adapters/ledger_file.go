package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rhcos-prune/internal/ports"
	"rhcos-prune/internal/types"
)

// LedgerFileAdapter persists the deletion ledger as a single JSON
// document. A missing file is an empty ledger; an unreadable one is
// fatal, since guessing at ledger state risks double-deletion.
type LedgerFileAdapter struct {
	Path string
}

func NewLedgerFileAdapter(path string) LedgerFileAdapter {
	return LedgerFileAdapter{Path: path}
}

func (a LedgerFileAdapter) Load() (types.Ledger, error) {
	if strings.TrimSpace(a.Path) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("ledger path is empty")
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Ledger{}, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read ledger %s", a.Path)).
			WithCause(err)
	}
	ledger := types.Ledger{}
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("ledger %s is corrupt", a.Path)).
			WithCause(err)
	}
	return ledger, nil
}

// Save writes to a temporary file in the ledger's directory and
// renames it into place, so the ledger is never observed half-written.
func (a LedgerFileAdapter) Save(ledger types.Ledger) error {
	if strings.TrimSpace(a.Path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("ledger path is empty")
	}
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode ledger").
			WithCause(err)
	}
	dir := filepath.Dir(a.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(a.Path)+".tmp-")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temporary ledger file").
			WithCause(err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write temporary ledger file").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close temporary ledger file").
			WithCause(err)
	}
	if err := os.Rename(tmpPath, a.Path); err != nil {
		os.Remove(tmpPath)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to replace ledger %s", a.Path)).
			WithCause(err)
	}
	return nil
}

var _ ports.LedgerStorePort = LedgerFileAdapter{}
