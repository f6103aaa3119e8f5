package cmd

import (
	"errors"

	"go.uber.org/zap"

	"github.com/papapumpkin/starfolio/internal/loader"
	"github.com/papapumpkin/starfolio/internal/portfolio"
	"github.com/papapumpkin/starfolio/internal/telemetry"
)

// loadStats is the Data payload of a load_done event.
type loadStats struct {
	Companies int `json:"companies"`
	Projects  int `json:"projects"`
	Warnings  int `json:"warnings"`
}

// loadEvent describes the outcome of one pipeline load.
func loadEvent(res *loader.Result, err error) telemetry.Event {
	if err != nil {
		evt := telemetry.Event{Kind: telemetry.KindLoadFailed, Message: err.Error()}
		var ve *portfolio.ValidationError
		if errors.As(err, &ve) {
			evt.Rule = string(ve.Rule)
			evt.Source = ve.SourceFile
			evt.Message = ve.Message
		}
		return evt
	}
	stats := loadStats{Companies: len(res.Portfolios), Warnings: len(res.Warnings)}
	for _, p := range res.Portfolios {
		stats.Projects += len(p.Projects)
	}
	return telemetry.Event{Kind: telemetry.KindLoadDone, Data: stats}
}

func buildEvent(paths []string) telemetry.Event {
	return telemetry.Event{Kind: telemetry.KindBuildDone, Data: map[string][]string{"files": paths}}
}

// record appends evt to the event log. A write failure is logged, never
// returned.
func (e *env) record(evt telemetry.Event) {
	if err := e.events.Emit(evt); err != nil {
		e.logger.Warn("failed to record event", zap.String("kind", evt.Kind), zap.Error(err))
	}
}
