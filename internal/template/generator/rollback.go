package generator

import (
	"os"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/baasman/cakecutter/internal/logging"
)

// rollbackTracker records what a run created so a failed run can be undone.
type rollbackTracker struct {
	fs          afero.Fs
	destination string
	// destinationExisted is true when the destination was present before the run.
	destinationExisted bool
	// created lists paths in creation order.
	created []string
}

func newRollbackTracker(fs afero.Fs, destination string, existed bool) *rollbackTracker {
	return &rollbackTracker{
		fs:                 fs,
		destination:        destination,
		destinationExisted: existed,
	}
}

func (t *rollbackTracker) record(path string) {
	t.created = append(t.created, path)
}

// rollback removes the destination when the run created it. Otherwise only
// the paths this run created are removed, most recent first, so children
// go before their parents. Pre-existing files that were overwritten keep
// their new content.
func (t *rollbackTracker) rollback() error {
	logger := logging.GetLogger("generator")

	if !t.destinationExisted {
		logger.Info().Str("destination", t.destination).Msg("Removing partially generated project")
		if err := t.fs.RemoveAll(t.destination); err != nil {
			return newGeneratorError(GeneratorIOFailed, "failed to remove partial project", t.destination, err)
		}
		return nil
	}

	logger.Info().
		Str("destination", t.destination).
		Int("paths", len(t.created)).
		Msg("Removing paths created by this run")

	var errs error
	for i := len(t.created) - 1; i >= 0; i-- {
		path := t.created[i]
		if err := t.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = multierr.Append(errs, newGeneratorError(GeneratorIOFailed, "failed to remove created path", path, err))
		}
	}
	return errs
}
