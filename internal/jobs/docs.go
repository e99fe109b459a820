// Package jobs provides scheduled background tasks for the dispatch engine.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds resolution) and
// managed through JobManager:
//
//	jobManager := jobs.NewJobManager(offerNextOrderHandler, flagStuckCouriersHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// 1. DispatchTickJob - every second; offers the most urgent gated order to an
// eligible courier. The dispatch gate has no per-order timers, so a frequent
// tick is what turns "gate opens at T" into an offer shortly after T.
//
// 2. StuckCourierScanJob - every 30 seconds; flags busy couriers with no
// active order on the change feed for operator repair.
//
// # Error Handling
//
// The tick ignores expected business outcomes (no offerable order, no online
// couriers); everything else is logged. The scan logs every error, since any
// failure there hides stuck couriers from operators.
package jobs
