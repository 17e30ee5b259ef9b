package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPAddr      string
	DBDSN         string
	JWTIssuer     string
	JWTSecret     string
	JWTTTL        time.Duration
	InternalToken string
	LogLevel      string

	AgentHubURL    string
	AgentFeedURL   string
	AgentToken     string
	AgentTimeout   time.Duration
	SyncSchedule   string
	TradingEnabled bool

	ProfitTargetPct       decimal.Decimal
	MaxLossPct            decimal.Decimal
	BufferCap             decimal.Decimal
	DefaultInitialBalance decimal.Decimal
}

// Pairing and drawdown thresholds ship with the firm-wide defaults; they
// are overridable per deployment, not per account.
const (
	defaultProfitTargetPct = "8"
	defaultMaxLossPct      = "10"
	defaultBufferCap       = "4000"
	defaultInitialBalance  = "100000"
)

func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	var missing []string
	c.HTTPAddr = os.Getenv("HTTP_ADDR")
	if c.HTTPAddr == "" {
		missing = append(missing, "HTTP_ADDR")
	}
	c.DBDSN = os.Getenv("DB_DSN")
	if c.DBDSN == "" {
		missing = append(missing, "DB_DSN")
	}
	c.JWTIssuer = os.Getenv("JWT_ISSUER")
	if c.JWTIssuer == "" {
		missing = append(missing, "JWT_ISSUER")
	}
	c.JWTSecret = os.Getenv("JWT_SECRET")
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	jwtTTL := os.Getenv("JWT_TTL")
	if jwtTTL == "" {
		missing = append(missing, "JWT_TTL")
	} else {
		d, err := time.ParseDuration(jwtTTL)
		if err != nil {
			return c, err
		}
		c.JWTTTL = d
	}
	c.InternalToken = os.Getenv("INTERNAL_API_TOKEN")
	if c.InternalToken == "" {
		missing = append(missing, "INTERNAL_API_TOKEN")
	}
	c.AgentHubURL = strings.TrimRight(os.Getenv("AGENT_HUB_URL"), "/")
	if c.AgentHubURL == "" {
		missing = append(missing, "AGENT_HUB_URL")
	}
	c.AgentFeedURL = strings.TrimSpace(os.Getenv("AGENT_FEED_URL"))
	c.AgentToken = os.Getenv("AGENT_TOKEN")
	agentTimeout := os.Getenv("AGENT_TIMEOUT")
	if agentTimeout == "" {
		c.AgentTimeout = 10 * time.Second
	} else {
		d, err := time.ParseDuration(agentTimeout)
		if err != nil {
			return c, err
		}
		c.AgentTimeout = d
	}
	c.SyncSchedule = os.Getenv("SYNC_SCHEDULE")
	if c.SyncSchedule == "" {
		c.SyncSchedule = "@every 1m"
	}
	tradingEnabled := os.Getenv("TRADING_ENABLED")
	if tradingEnabled == "" {
		c.TradingEnabled = true
	} else {
		b, err := strconv.ParseBool(tradingEnabled)
		if err != nil {
			return c, err
		}
		c.TradingEnabled = b
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	var err error
	c.ProfitTargetPct, err = decimalEnv("PAIRING_PROFIT_TARGET_PCT", defaultProfitTargetPct)
	if err != nil {
		return c, err
	}
	c.MaxLossPct, err = decimalEnv("PAIRING_MAX_LOSS_PCT", defaultMaxLossPct)
	if err != nil {
		return c, err
	}
	c.BufferCap, err = decimalEnv("RISK_BUFFER_CAP", defaultBufferCap)
	if err != nil {
		return c, err
	}
	c.DefaultInitialBalance, err = decimalEnv("DEFAULT_INITIAL_BALANCE", defaultInitialBalance)
	if err != nil {
		return c, err
	}

	if len(missing) > 0 {
		return c, errors.New("missing required env: " + strings.Join(missing, ","))
	}
	return c, nil
}

func decimalEnv(key, fallback string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		raw = fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New("invalid " + key)
	}
	return d, nil
}
