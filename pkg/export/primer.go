package export

import (
	"context"
	"time"

	"folio/pkg/page"
	"folio/pkg/profile"

	"github.com/go-co-op/gocron/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PrimeLater schedules a one-time deferred job that writes both export
// files shortly after process start, so the site generator has data to pick
// up before the first edit. The delay gives the storage backend time to
// settle. The returned scheduler is already started; the caller shuts it
// down on exit.
func PrimeLater(
	delay time.Duration,
	profiles *profile.Repository,
	pages *page.Repository,
	exporter *Exporter,
	log *logrus.Logger,
) (scheduler gocron.Scheduler, err error) {
	scheduler, err = gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		err = errors.Wrap(err, "failed to create export scheduler")
		return scheduler, err
	}

	_, err = scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(time.Now().Add(delay))),
		gocron.NewTask(func() {
			Prime(context.Background(), profiles, pages, exporter, log)
		}),
	)
	if err != nil {
		err = errors.Wrap(err, "failed to schedule export prime job")
		return scheduler, err
	}

	scheduler.Start()
	log.WithField("delay", delay).Debug("export prime job scheduled")
	return scheduler, err
}

// Prime writes both export files immediately. Failures are logged and
// swallowed: priming is a best-effort side effect.
func Prime(
	ctx context.Context,
	profiles *profile.Repository,
	pages *page.Repository,
	exporter *Exporter,
	log *logrus.Logger,
) {
	profileDoc, err := profiles.Load(ctx)
	if err != nil {
		log.WithError(err).Error("export prime: failed to load profile")
	} else if exportErr := exporter.ExportProfile(profileDoc); exportErr != nil {
		log.WithError(exportErr).Error("export prime: failed to export profile")
	}

	pageDoc, err := pages.Load(ctx)
	if err != nil {
		log.WithError(err).Error("export prime: failed to load layout")
		return
	}
	if pageDoc == nil {
		// Never configured; nothing to materialize for the layout yet.
		return
	}
	if exportErr := exporter.ExportPage(*pageDoc); exportErr != nil {
		log.WithError(exportErr).Error("export prime: failed to export layout")
	}
}
