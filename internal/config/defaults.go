package config

const (
	defaultSpoolDir               = "~/.local/share/outbox/spool"
	defaultLogDir                 = "~/.local/share/outbox/logs"
	defaultEventFolder            = "events"
	defaultEventCapacity          = 128
	defaultSessionFolder          = "sessions"
	defaultSessionCapacity        = 128
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultDeliveryPollInterval   = 30
	defaultDeliveryRetryInterval  = 120
	defaultDeliveryConcurrency    = 4
	defaultDeliveryRequestTimeout = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SpoolDir: defaultSpoolDir,
			LogDir:   defaultLogDir,
		},
		Spool: Spool{
			EventFolder:     defaultEventFolder,
			EventCapacity:   defaultEventCapacity,
			SessionFolder:   defaultSessionFolder,
			SessionCapacity: defaultSessionCapacity,
		},
		Delivery: Delivery{
			PollInterval:   defaultDeliveryPollInterval,
			RetryInterval:  defaultDeliveryRetryInterval,
			Concurrency:    defaultDeliveryConcurrency,
			RequestTimeout: defaultDeliveryRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
