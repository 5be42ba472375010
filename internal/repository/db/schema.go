package db

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS aquariums (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id),
    name TEXT NOT NULL,
    size_litres REAL,
    device_uid TEXT,
    feeding_volume_grams REAL,
    feeding_period_hours INTEGER,
    active_since TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS sensor_data (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    aquarium_id INTEGER NOT NULL REFERENCES aquariums(id) ON DELETE CASCADE,
    ts TIMESTAMP NOT NULL,
    temperature_c REAL,
    ph REAL
);`,
	`CREATE TABLE IF NOT EXISTS feeding_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    aquarium_id INTEGER NOT NULL REFERENCES aquariums(id) ON DELETE CASCADE,
    ts TIMESTAMP NOT NULL,
    mode TEXT NOT NULL CHECK (mode IN ('AUTO','MANUAL')),
    volume_grams REAL,
    actor TEXT NOT NULL DEFAULT 'system'
);`,
	`CREATE TABLE IF NOT EXISTS schedules (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    aquarium_id INTEGER NOT NULL REFERENCES aquariums(id) ON DELETE CASCADE,
    name TEXT,
    type TEXT NOT NULL CHECK (type IN ('interval','daily_times')),
    interval_hours INTEGER,
    daily_times TEXT,
    feed_volume_grams REAL,
    enabled BOOLEAN NOT NULL DEFAULT 1,
    start_date TIMESTAMP,
    end_date TIMESTAMP
);`,
	`CREATE TABLE IF NOT EXISTS alerts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    aquarium_id INTEGER NOT NULL REFERENCES aquariums(id) ON DELETE CASCADE,
    ts TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL DEFAULT '',
    resolved BOOLEAN NOT NULL DEFAULT 0,
    resolved_at TIMESTAMP
);`,
	`CREATE INDEX IF NOT EXISTS idx_feeding_logs_aquarium_ts ON feeding_logs (aquarium_id, ts);`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_aquarium_type_ts ON alerts (aquarium_id, type, ts);`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username VARCHAR(100) UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS aquariums (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id),
    name TEXT NOT NULL,
    size_litres NUMERIC(6,2),
    device_uid TEXT,
    feeding_volume_grams NUMERIC(7,2),
    feeding_period_hours INTEGER,
    active_since TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS sensor_data (
    id BIGSERIAL PRIMARY KEY,
    aquarium_id BIGINT NOT NULL REFERENCES aquariums(id) ON DELETE CASCADE,
    ts TIMESTAMPTZ NOT NULL,
    temperature_c NUMERIC(5,2),
    ph NUMERIC(4,2)
);`,
	`CREATE TABLE IF NOT EXISTS feeding_logs (
    id BIGSERIAL PRIMARY KEY,
    aquarium_id BIGINT NOT NULL REFERENCES aquariums(id) ON DELETE CASCADE,
    ts TIMESTAMPTZ NOT NULL,
    mode VARCHAR(10) NOT NULL CONSTRAINT ck_feeding_logs_mode CHECK (mode IN ('AUTO','MANUAL')),
    volume_grams NUMERIC(7,2),
    actor VARCHAR(64) NOT NULL DEFAULT 'system'
);`,
	`CREATE TABLE IF NOT EXISTS schedules (
    id BIGSERIAL PRIMARY KEY,
    aquarium_id BIGINT NOT NULL REFERENCES aquariums(id) ON DELETE CASCADE,
    name VARCHAR(100),
    type VARCHAR(20) NOT NULL CONSTRAINT ck_schedules_type CHECK (type IN ('interval','daily_times')),
    interval_hours INTEGER,
    daily_times TEXT,
    feed_volume_grams NUMERIC(7,2),
    enabled BOOLEAN NOT NULL DEFAULT TRUE,
    start_date TIMESTAMPTZ,
    end_date TIMESTAMPTZ
);`,
	`CREATE TABLE IF NOT EXISTS alerts (
    id BIGSERIAL PRIMARY KEY,
    aquarium_id BIGINT NOT NULL REFERENCES aquariums(id) ON DELETE CASCADE,
    ts TIMESTAMPTZ NOT NULL,
    type VARCHAR(50) NOT NULL,
    message TEXT NOT NULL DEFAULT '',
    resolved BOOLEAN NOT NULL DEFAULT FALSE,
    resolved_at TIMESTAMPTZ
);`,
	`CREATE INDEX IF NOT EXISTS idx_feeding_logs_aquarium_ts ON feeding_logs (aquarium_id, ts);`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_aquarium_type_ts ON alerts (aquarium_id, type, ts);`,
}
