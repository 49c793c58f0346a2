package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/billing"
	"server/internal/infra"
)

// orgbilling prints the computed invoice for one organization straight from
// the database, using the same engine the API serves. Useful for support
// work and for verifying what a tenant would be charged before re-enabling
// metered billing.
func main() {
	var (
		orgFlag     string
		meteredFlag bool
		localeFlag  string
	)

	flag.StringVar(&orgFlag, "org", "", "organization ID (UUID)")
	flag.BoolVar(&meteredFlag, "metered", false, "compute under metered pricing regardless of BILLING_ENABLED")
	flag.StringVar(&localeFlag, "locale", "en", "locale for formatted totals")
	flag.Parse()

	orgID := strings.TrimSpace(orgFlag)
	if orgID == "" {
		exitWithError(errors.New("-org is required"))
	}

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}

	mode := cfg.PricingMode()
	if meteredFlag {
		mode = billing.ModeMetered
	}
	engine := billing.NewEngine(mode, cfg.Rates())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		exitWithError(fmt.Errorf("connect database: %w", err))
	}
	defer pool.Close()

	orgs := repo.NewOrganizationRepository(pool)
	members := repo.NewMemberRepository(pool)
	slots := repo.NewSlotPurchaseRepository(pool)
	exemptions := repo.NewExemptionRepository(pool)

	org, err := orgs.GetByID(ctx, orgID)
	if err != nil {
		exitWithError(fmt.Errorf("load organization: %w", err))
	}
	memberRows, err := members.ListByOrg(ctx, orgID)
	if err != nil {
		exitWithError(fmt.Errorf("load members: %w", err))
	}
	exemptionRows, err := exemptions.ListByOrg(ctx, orgID)
	if err != nil {
		exitWithError(fmt.Errorf("load exemptions: %w", err))
	}

	now := time.Now().UTC()
	purchased, periodStart, periodEnd, err := slots.TotalForPeriod(ctx, orgID, now)
	if err != nil {
		exitWithError(fmt.Errorf("load slot purchases: %w", err))
	}

	avail := billing.ResolveSlotAvailability(purchased, memberRows, exemptionRows, now, periodStart, periodEnd)
	result := engine.Calculate(billing.BillingState{
		Members:          memberRows,
		StorageGB:        org.StorageGB,
		FleetMapEnabled:  org.FleetMapEnabled,
		SlotAvailability: &avail,
	})

	out := map[string]any{
		"org_id":        org.ID,
		"org_name":      org.Name,
		"pricing_mode":  engine.Mode(),
		"billing":       result,
		"availability":  avail,
		"monthly_total": billing.FormatAmount(result.Totals.MonthlyTotal, localeFlag),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "orgbilling:", err)
	os.Exit(1)
}
