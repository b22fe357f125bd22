package main

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rescate-api/internal/infrastructure/postgres"
	"github.com/jhoicas/rescate-api/pkg/config"
	"github.com/jhoicas/rescate-api/pkg/logger"
)

// Seed de desarrollo: crea el esquema si no existe e inserta un partner demo,
// un cliente demo y algunas bolsas de ejemplo. NO usar en producción.

const schema = `
CREATE TABLE IF NOT EXISTS partners (
	id              BIGSERIAL PRIMARY KEY,
	name            TEXT NOT NULL DEFAULT '',
	address         TEXT NOT NULL DEFAULT '',
	lat             DOUBLE PRECISION NULL,
	lng             DOUBLE PRECISION NULL,
	thumbnail_url   TEXT NOT NULL DEFAULT '',
	email           TEXT NOT NULL DEFAULT '',
	login_username  TEXT NOT NULL DEFAULT '',
	password_hash   TEXT NOT NULL DEFAULT '',
	legacy_password TEXT NULL,
	is_active       BOOLEAN NOT NULL DEFAULT TRUE
);

-- El username de login es único cuando está presente; los partners legacy sin
-- credenciales quedan con '' y no chocan entre sí.
CREATE UNIQUE INDEX IF NOT EXISTS partners_login_username_key
	ON partners (login_username) WHERE login_username <> '';

CREATE TABLE IF NOT EXISTS customers (
	id            BIGSERIAL PRIMARY KEY,
	email         TEXT NOT NULL DEFAULT '',
	full_name     TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL DEFAULT '',
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS customers_email_key ON customers (email);

CREATE TABLE IF NOT EXISTS bags (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	price         NUMERIC(12,2) NOT NULL DEFAULT 0,
	quantity      INTEGER NOT NULL DEFAULT 0,
	pickup_time   TIMESTAMPTZ NULL,
	status        TEXT NOT NULL DEFAULT 'active',
	partner_id    BIGINT NOT NULL REFERENCES partners(id) ON DELETE CASCADE,
	address       TEXT NOT NULL DEFAULT '',
	lat           DOUBLE PRECISION NULL,
	lng           DOUBLE PRECISION NULL,
	thumbnail_url TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS bags_partner_id_idx ON bags (partner_id);
CREATE INDEX IF NOT EXISTS bags_status_idx ON bags (status);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}
	log.Info().Msg("esquema verificado")

	partnerHash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de password del partner demo")
	}

	var partnerID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO partners (name, address, lat, lng, email, login_username, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING id`,
		"Panadería La Espiga", "Calle 45 #12-30, Bogotá", 4.6482837, -74.2478938,
		"espiga@demo.local", "laespiga", string(partnerHash),
	).Scan(&partnerID)
	if err != nil {
		log.Fatal().Err(err).Msg("insertar partner demo")
	}
	log.Info().Int64("partner_id", partnerID).Msg("partner demo creado (usuario: laespiga / demo1234)")

	customerHash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de password del cliente demo")
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO customers (email, full_name, password_hash, is_active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO NOTHING`,
		"cliente@demo.local", "Cliente Demo", string(customerHash),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("insertar cliente demo")
	}
	log.Info().Msg("cliente demo creado (cliente@demo.local / demo1234)")

	pickup := time.Now().Add(6 * time.Hour).UTC()
	bags := []struct {
		name, description, address string
		price                      string
		quantity                   int
	}{
		{"Bolsa sorpresa de panadería", "Pan del día, croissants y algo dulce", "Calle 45 #12-30, Bogotá", "9900", 5},
		{"Bolsa de almuerzo", "Menú del día que no se vendió", "Calle 45 #12-30, Bogotá", "12500", 3},
		{"Bolsa vegetariana", "Ensaladas y wraps del día", "Calle 45 #12-30, Bogotá", "10900", 2},
	}
	for _, b := range bags {
		_, err := pool.Exec(ctx, `
			INSERT INTO bags (name, description, price, quantity, pickup_time, status, partner_id, address)
			VALUES ($1, $2, $3, $4, $5, 'active', $6, $7)`,
			b.name, b.description, b.price, b.quantity, pickup, partnerID, b.address,
		)
		if err != nil {
			log.Fatal().Err(err).Str("bag", b.name).Msg("insertar bolsa demo")
		}
	}
	log.Info().Int("bags", len(bags)).Msg("bolsas demo creadas")

	log.Info().Msg("seed completado")
}
