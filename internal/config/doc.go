// Package config loads the dashboard configuration.
//
// # Resolution Order
//
//  1. Built-in defaults (see Default)
//  2. The TOML file, ~/.config/churrasco/config.toml unless a path is given
//  3. Environment variables, which win over the file
//
// A missing config file is not an error.
//
// # TOML Format
//
//	refresh_seconds = 60
//
//	[event]
//	date = "2025-12-06"
//	time = "16:00"
//	timezone = "America/Sao_Paulo"
//
//	[payments]
//	months = ["agosto_pago", "setembro_pago", "outubro_pago", "novembro_pago", "dezembro_pago"]
//	value = "63.07"
//	database = "~/.local/share/churrasco/pagamentos.db"
//	table = "pagamentos"
//
//	[items]
//	path = "~/.local/share/churrasco/data.json"
//	seed = "~/.local/share/churrasco/seed_data.json"
//
//	[log]
//	file = "~/.local/share/churrasco/churrasco.log"
//	level = "info"
//
// # Environment
//
// EVENT_DATE, EVENT_TIME, EVENT_TZ, PAYMENT_MONTHS (comma separated),
// PAYMENT_VALUE, DB_PATH, DB_TABLE, JSON_PATH, SEED_PATH, REFRESH_SECONDS,
// LOG_FILE and LOG_LEVEL override the matching keys. Empty values are
// ignored.
//
// Tilde expansion is applied to every path and relative paths are made
// absolute against the working directory.
package config
