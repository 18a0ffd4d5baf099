// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP      HTTPConfig
	Ledger    LedgerConfig
	Billing   BillingConfig
	Scheduler SchedulerConfig

	// WebhookSecret, when non-empty, must match the `hmac` query parameter
	// of inbound webhook POSTs. Mismatches are rejected with 401.
	WebhookSecret string
}

// HTTPConfig governs the webhook server.
type HTTPConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LedgerConfig describes the roster store.
type LedgerConfig struct {
	// DBPath is the SQLite database file backing the ledger.
	DBPath string
	// Sheet selects the roster sheet; an alternate sheet isolates tests
	// from the production roster.
	Sheet string
}

// BillingConfig is the fixed billing policy applied by the orchestrator.
type BillingConfig struct {
	// Amount is the flat monthly fee as a decimal string, e.g. "40.00".
	Amount string
	// ExpiryDays is how long a charge stays payable; also sets the due
	// date communicated to members.
	ExpiryDays int
	// TriggerBusinessDay is the Nth business day of the month on which
	// the charge cycle runs.
	TriggerBusinessDay int
	// Description is the payment request text shown to the payer.
	Description string
}

// SchedulerConfig holds cron expressions for the daemon mode.
type SchedulerConfig struct {
	ChargesSpec   string
	PaymentsSpec  string
	RemindersSpec string
	// PaymentsDaysBack is the polling window for the scheduled payments job.
	PaymentsDaysBack int
}

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultShutdownTimeout = 10 * time.Second

	defaultDBPath = "./data/ledger.db"
	defaultSheet  = "Sheet1"

	defaultAmount      = "40.00"
	defaultExpiryDays  = 7
	defaultTriggerDay  = 5
	defaultDescription = "Caixinha Trilha"

	// Daily at 09:00; the trigger-day gate decides whether charges actually run.
	defaultChargesSpec   = "0 9 * * *"
	defaultPaymentsSpec  = "*/30 * * * *"
	defaultRemindersSpec = "0 9 20 * *"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Host:            valueOrDefault("SERVER_HOST", defaultHost),
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Ledger: LedgerConfig{
			DBPath: valueOrDefault("LEDGER_DB_PATH", defaultDBPath),
			Sheet:  valueOrDefault("LEDGER_SHEET", defaultSheet),
		},
		Billing: BillingConfig{
			Amount:             valueOrDefault("CHARGE_AMOUNT", defaultAmount),
			ExpiryDays:         parseIntWithDefault("CHARGE_EXPIRY_DAYS", defaultExpiryDays),
			TriggerBusinessDay: parseIntWithDefault("TRIGGER_BUSINESS_DAY", defaultTriggerDay),
			Description:        valueOrDefault("CHARGE_DESCRIPTION", defaultDescription),
		},
		Scheduler: SchedulerConfig{
			ChargesSpec:      valueOrDefault("CHARGES_SCHEDULE", defaultChargesSpec),
			PaymentsSpec:     valueOrDefault("PAYMENTS_SCHEDULE", defaultPaymentsSpec),
			RemindersSpec:    valueOrDefault("REMINDERS_SCHEDULE", defaultRemindersSpec),
			PaymentsDaysBack: parseIntWithDefault("PAYMENTS_DAYS_BACK", 1),
		},
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	amount, err := decimal.NewFromString(cfg.Billing.Amount)
	if err != nil {
		return Config{}, fmt.Errorf("invalid CHARGE_AMOUNT %q: %w", cfg.Billing.Amount, err)
	}
	if amount.IsNegative() || amount.IsZero() {
		return Config{}, fmt.Errorf("CHARGE_AMOUNT must be positive, got %q", cfg.Billing.Amount)
	}
	// Normalize to two decimal places, the format the payment network expects.
	cfg.Billing.Amount = amount.StringFixed(2)

	if cfg.Billing.TriggerBusinessDay < 1 || cfg.Billing.TriggerBusinessDay > 23 {
		return Config{}, fmt.Errorf("TRIGGER_BUSINESS_DAY %d is out of range", cfg.Billing.TriggerBusinessDay)
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
