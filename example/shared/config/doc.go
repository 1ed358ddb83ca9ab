// Package config provides database configuration helpers for the journaled collection example.
//
// It contains factory functions for creating PostgreSQL connections with the three
// supported drivers (pgx.Pool, sql.DB, sqlx.DB). The DSN is read from the
// JOURNAL_POSTGRES_DSN environment variable and the driver from ADAPTER_TYPE.
package config
