package testinfra

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var Pool *pgxpool.Pool

func init() {
	Pool = SetupDB()
}

func SetupDB() *pgxpool.Pool {
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:17.2-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections"),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	if err != nil {
		log.Panicf("start postgres: %v", err)
	}

	pgHostPort, err := pgC.Endpoint(ctx, "")
	if err != nil {
		log.Panicf("postgres endpoint: %v", err)
	}
	pgDSN := fmt.Sprintf("postgres://postgres:password@%s/testdb?sslmode=disable", pgHostPort)

	pool, err := pgxpool.New(ctx, pgDSN)
	if err != nil {
		log.Panicf("pgxpool connect: %v", err)
	}

	ok := false
	for i := 0; i < 20; i++ {
		slog.Info("ping db", "try", i)
		ctxPing, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		err = pool.Ping(ctxPing)
		cancel()
		if err == nil {
			ok = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !ok {
		log.Panic("db did not respond after 20 attempts")
	}

	_, err = pool.Exec(ctx, `
		CREATE SCHEMA IF NOT EXISTS negosyo;
		CREATE TABLE IF NOT EXISTS negosyo.creators (
			id UUID PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			referral_code TEXT UNIQUE NOT NULL,
			referred_by UUID REFERENCES negosyo.creators(id),
			balance BIGINT NOT NULL DEFAULT 0,
			total_earnings BIGINT NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL,
			role VARCHAR(20) NOT NULL,
			payout_method TEXT NOT NULL DEFAULT '',
			payout_detail TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS negosyo.submissions (
			id BIGSERIAL PRIMARY KEY,
			creator_id UUID NOT NULL REFERENCES negosyo.creators(id),
			business_name TEXT NOT NULL,
			business_type TEXT NOT NULL DEFAULT '',
			owner_name TEXT NOT NULL DEFAULT '',
			owner_phone TEXT NOT NULL DEFAULT '',
			owner_email TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			photos TEXT[] NOT NULL DEFAULT '{}',
			video_url TEXT,
			audio_url TEXT,
			transcript TEXT,
			status VARCHAR(30) NOT NULL,
			amount BIGINT NOT NULL DEFAULT 0,
			creator_payout BIGINT NOT NULL DEFAULT 0,
			agreed_to_terms BOOLEAN NOT NULL DEFAULT FALSE,
			public_url TEXT,
			payment_session_id TEXT,
			paid_at TIMESTAMPTZ,
			payout_requested_at TIMESTAMPTZ,
			creator_paid_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS negosyo.generated_websites (
			id BIGSERIAL PRIMARY KEY,
			submission_id BIGINT NOT NULL UNIQUE REFERENCES negosyo.submissions(id),
			template_name VARCHAR(40) NOT NULL,
			html TEXT NOT NULL DEFAULT '',
			customizations JSONB NOT NULL DEFAULT '{}',
			legacy_content JSONB,
			status VARCHAR(20) NOT NULL,
			site_id TEXT,
			published_url TEXT,
			published_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS negosyo.website_contents (
			website_id BIGINT PRIMARY KEY REFERENCES negosyo.generated_websites(id),
			content JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS negosyo.outbox (
			id BIGSERIAL PRIMARY KEY,
			event VARCHAR(60) NOT NULL,
			status SMALLINT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS negosyo.mails (
			id BIGSERIAL PRIMARY KEY,
			type VARCHAR(60) NOT NULL,
			recipients TEXT NOT NULL,
			subject TEXT NOT NULL,
			content TEXT NOT NULL,
			sent_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS negosyo.files (
			id UUID PRIMARY KEY,
			url TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	if err != nil {
		log.Panicf("create tables: %v", err)
	}

	return pool
}
