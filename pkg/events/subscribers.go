package events

import (
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"github.com/artem13815/jobboard/pkg/metrics"
)

// SubscribeObservers attaches the metrics and logging subscribers.
func SubscribeObservers(bus EventBus.Bus) error {
	if err := bus.Subscribe(TopicJobCreated, func(e JobCreated) {
		metrics.JobsPostedCounter.Inc()
		log.WithFields(log.Fields{"job_id": e.JobID, "posted_by": e.PostedBy}).Info("job posted")
	}); err != nil {
		return err
	}
	if err := bus.Subscribe(TopicApplicationSubmitted, func(e ApplicationSubmitted) {
		metrics.ApplicationsCounter.WithLabelValues("pending").Inc()
		log.WithFields(log.Fields{
			"application_id": e.ApplicationID,
			"job_id":         e.JobID,
			"applicant_id":   e.ApplicantID,
		}).Info("application submitted")
	}); err != nil {
		return err
	}
	return bus.Subscribe(TopicApplicationStatusChanged, func(e ApplicationStatusChanged) {
		metrics.ApplicationsCounter.WithLabelValues(e.Status).Inc()
		log.WithFields(log.Fields{
			"application_id": e.ApplicationID,
			"status":         e.Status,
		}).Info("application decided")
	})
}
