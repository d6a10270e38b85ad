package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pelinbingl/emlak"
)

// Ensure LoggingAssembler implements emlak.Assembler.
var _ emlak.Assembler = (*LoggingAssembler)(nil)

// LoggingAssembler wraps an Assembler, logging each listing and the
// heuristics warnings it produced.
type LoggingAssembler struct {
	next   emlak.Assembler
	logger *slog.Logger
}

// NewLoggingAssembler creates a new LoggingAssembler.
func NewLoggingAssembler(next emlak.Assembler, logger *slog.Logger) *LoggingAssembler {
	return &LoggingAssembler{next: next, logger: logger}
}

// Assemble delegates to the wrapped assembler and logs the outcome.
func (a *LoggingAssembler) Assemble(ctx context.Context, source, html string) (asm *emlak.Assembly, err error) {
	defer func(begin time.Time) {
		if err != nil {
			a.logger.Error("assemble",
				"source", source,
				"code", emlak.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}

		a.logger.Info("assemble",
			"source", source,
			"listing_id", asm.Listing.ListingID,
			"title", asm.Listing.Title,
			"images", asm.Listing.ImageCount,
			"defaulted", countTier(asm.Tiers, emlak.TierDefault),
			"duration", time.Since(begin),
		)
		for _, w := range asm.Warnings {
			a.logger.Warn("assemble heuristic", "source", source, "warning", w)
		}
		for _, c := range emlak.Columns() {
			if tier, ok := asm.Tiers[emlak.Field(c)]; ok {
				a.logger.Debug("field resolved", "source", source, "field", c, "tier", tier.String())
			}
		}
	}(time.Now())
	return a.next.Assemble(ctx, source, html)
}

func countTier(tiers map[emlak.Field]emlak.Tier, tier emlak.Tier) int {
	var n int
	for _, t := range tiers {
		if t == tier {
			n++
		}
	}
	return n
}
