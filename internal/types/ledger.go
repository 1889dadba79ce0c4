package types

// LedgerEntry records deletion progress for one image staged by a
// prior reconciliation. Entries are unique per (build, region, image)
// and Deleted only ever transitions false to true.
type LedgerEntry struct {
	Region  string `json:"region"`
	Image   string `json:"image"`
	Deleted bool   `json:"deleted"`
}

// Ledger maps a build id to its staged images. It is the single source
// of truth for which builds have already been reconciled.
type Ledger map[string][]LedgerEntry

// KnownBuilds returns the set of build ids present in the ledger,
// staged or already deleted.
func (l Ledger) KnownBuilds() map[string]struct{} {
	known := make(map[string]struct{}, len(l))
	for build := range l {
		known[build] = struct{}{}
	}
	return known
}

// Knows reports whether the ledger has any entry for the build.
func (l Ledger) Knows(buildID string) bool {
	_, ok := l[buildID]
	return ok
}

// Stage appends entries for the given images, preserving input order
// and skipping refs already recorded for the build.
func (l Ledger) Stage(buildID string, refs []ImageRef) {
	existing := map[ImageRef]struct{}{}
	for _, entry := range l[buildID] {
		existing[ImageRef{Region: entry.Region, Image: entry.Image}] = struct{}{}
	}
	for _, ref := range refs {
		if _, ok := existing[ref]; ok {
			continue
		}
		existing[ref] = struct{}{}
		l[buildID] = append(l[buildID], LedgerEntry{Region: ref.Region, Image: ref.Image})
	}
}

// MarkDeleted records a completed deletion. It never clears a Deleted
// flag that is already set.
func (l Ledger) MarkDeleted(buildID string, region string, image string) {
	entries := l[buildID]
	for i := range entries {
		if entries[i].Region == region && entries[i].Image == image {
			entries[i].Deleted = true
			return
		}
	}
}

// PendingCount returns the number of entries not yet deleted.
func (l Ledger) PendingCount() int {
	pending := 0
	for _, entries := range l {
		for _, entry := range entries {
			if !entry.Deleted {
				pending++
			}
		}
	}
	return pending
}
