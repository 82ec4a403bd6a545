package store

// Bootstrap DDL per backend.
// 테이블 구조는 두 백엔드에서 동일한 의미를 가진다:
//   macro_raw               unique (date, symbol)
//   domestic_market_raw     unique (date, price_type)
//   macro_derived           unique (date, metric)
//   market_premium_derived  unique (date)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS macro_raw (
		id BIGSERIAL PRIMARY KEY,
		date TIMESTAMP NOT NULL,
		symbol TEXT NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		unit TEXT,
		source TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (date, symbol)
	)`,
	`CREATE TABLE IF NOT EXISTS domestic_market_raw (
		id BIGSERIAL PRIMARY KEY,
		date TIMESTAMP NOT NULL,
		price_type TEXT NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		unit TEXT,
		source TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (date, price_type)
	)`,
	`CREATE TABLE IF NOT EXISTS macro_derived (
		id BIGSERIAL PRIMARY KEY,
		date TIMESTAMP NOT NULL,
		metric TEXT NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		calculation_version TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (date, metric)
	)`,
	`CREATE TABLE IF NOT EXISTS market_premium_derived (
		id BIGSERIAL PRIMARY KEY,
		date TIMESTAMP NOT NULL,
		theoretical_price DOUBLE PRECISION NOT NULL,
		physical_price DOUBLE PRECISION NOT NULL,
		premium_amount DOUBLE PRECISION NOT NULL,
		premium_rate DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (date)
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS macro_raw (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TIMESTAMP NOT NULL,
		symbol TEXT NOT NULL,
		value REAL NOT NULL,
		unit TEXT,
		source TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (date, symbol)
	)`,
	`CREATE TABLE IF NOT EXISTS domestic_market_raw (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TIMESTAMP NOT NULL,
		price_type TEXT NOT NULL,
		value REAL NOT NULL,
		unit TEXT,
		source TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (date, price_type)
	)`,
	`CREATE TABLE IF NOT EXISTS macro_derived (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TIMESTAMP NOT NULL,
		metric TEXT NOT NULL,
		value REAL NOT NULL,
		calculation_version TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (date, metric)
	)`,
	`CREATE TABLE IF NOT EXISTS market_premium_derived (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TIMESTAMP NOT NULL,
		theoretical_price REAL NOT NULL,
		physical_price REAL NOT NULL,
		premium_amount REAL NOT NULL,
		premium_rate REAL NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (date)
	)`,
}
