package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/pullview/internal/source"
	"github.com/five82/pullview/internal/state"
)

const preloadTimeout = 3 * time.Second

// preload fetches the source once before the UI starts. Failures are
// recorded in the store and left for the user to retry with a pull.
func preload(ctx context.Context, store *state.Store, src source.Source, log *logrus.Entry) {
	ctx, cancel := context.WithTimeout(ctx, preloadTimeout)
	defer cancel()

	lines, err := src.Fetch(ctx)
	store.Update(lines, err)
	if err != nil {
		log.WithError(err).WithField("source", src.Name()).Warn("initial fetch failed")
		return
	}
	log.WithFields(logrus.Fields{
		"source": src.Name(),
		"lines":  len(lines),
	}).Debug("initial fetch complete")
}
