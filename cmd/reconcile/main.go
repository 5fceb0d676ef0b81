// Command reconcile audits the denormalized member balances and tiers
// against the ledgers. The ledger is the source of truth; any drift means
// a write path bypassed the guarded primitives and must be investigated.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/agripoint/loyalty-api/internal/config"
	"github.com/agripoint/loyalty-api/internal/domain/ledger"
	"github.com/agripoint/loyalty-api/internal/domain/tier"
	"github.com/agripoint/loyalty-api/internal/pkg/database"
	"github.com/agripoint/loyalty-api/internal/pkg/logger"
)

type profileRow struct {
	ID          uuid.UUID `db:"id"`
	Tier        string    `db:"tier"`
	TotalPoints int64     `db:"total_points"`
	TotalCoins  int64     `db:"total_coins"`
}

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ledgerRepo := ledger.NewRepository(db)

	settings, err := tier.NewRepository(db).List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load tier settings")
	}

	profiles := []profileRow{}
	if err := db.SelectContext(ctx, &profiles, `SELECT id, tier, total_points, total_coins FROM member_profiles ORDER BY created_at`); err != nil {
		log.Fatal().Err(err).Msg("Failed to list member profiles")
	}

	drift := 0
	for _, p := range profiles {
		pointSum, err := ledgerRepo.SumLedger(ctx, p.ID, ledger.CurrencyPoints)
		if err != nil {
			log.Fatal().Err(err).Str("member_id", p.ID.String()).Msg("Failed to sum points ledger")
		}
		coinSum, err := ledgerRepo.SumLedger(ctx, p.ID, ledger.CurrencyCoins)
		if err != nil {
			log.Fatal().Err(err).Str("member_id", p.ID.String()).Msg("Failed to sum coins ledger")
		}

		if pointSum != p.TotalPoints {
			drift++
			log.Error().
				Str("member_id", p.ID.String()).
				Int64("balance", p.TotalPoints).
				Int64("ledger_sum", pointSum).
				Msg("points balance drift")
		}
		if coinSum != p.TotalCoins {
			drift++
			log.Error().
				Str("member_id", p.ID.String()).
				Int64("balance", p.TotalCoins).
				Int64("ledger_sum", coinSum).
				Msg("coins balance drift")
		}

		if want := tier.Resolve(p.TotalPoints, settings); string(want) != p.Tier {
			drift++
			log.Error().
				Str("member_id", p.ID.String()).
				Str("stored_tier", p.Tier).
				Str("resolved_tier", string(want)).
				Int64("total_points", p.TotalPoints).
				Msg("tier drift")
		}
	}

	if drift > 0 {
		log.Error().Int("findings", drift).Int("members", len(profiles)).Msg("reconcile found drift")
		os.Exit(1)
	}
	log.Info().Int("members", len(profiles)).Msg("reconcile clean")
}
