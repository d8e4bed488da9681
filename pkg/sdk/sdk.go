// Package sdk wires configuration, logging and transport into a ready HTTPCaller.
package sdk

import (
	"fmt"

	"github.com/byteplus-sdk/sdk-go/pkg/config"
	"github.com/byteplus-sdk/sdk-go/pkg/core"
	"github.com/byteplus-sdk/sdk-go/pkg/httpclient"
	"github.com/byteplus-sdk/sdk-go/pkg/logger"
)

// NewCaller builds an HTTPCaller from cfg. A nil log disables diagnostics.
// Extra options are applied after the config-derived ones.
func NewCaller(cfg *config.Config, log logger.Logger, opts ...core.CallerOption) (*core.HTTPCaller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	sdkCtx, err := cfg.Context()
	if err != nil {
		return nil, fmt.Errorf("build context: %w", err)
	}

	base := []core.CallerOption{
		core.WithHTTPClient(httpclient.NewRestyClient(cfg.RequestTimeout)),
		core.WithLogger(log),
	}
	caller, err := core.NewHTTPCaller(sdkCtx, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("build caller: %w", err)
	}
	log.DebugObj("sdk caller initialized", "sdk_config", map[string]any{
		"tenant_id":          cfg.TenantID,
		"request_timeout_ms": cfg.RequestTimeoutMs,
	})
	return caller, nil
}

// NewCallerFromEnv loads config (see config.Load), builds a zap logger at the
// configured level and returns the caller with that logger.
func NewCallerFromEnv(path string) (*core.HTTPCaller, *logger.ZapLogger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	caller, err := NewCaller(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	return caller, log, nil
}
