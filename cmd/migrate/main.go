package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS comment_likes CASCADE`,
		`DROP TABLE IF EXISTS comments CASCADE`,
		`DROP TABLE IF EXISTS party_members CASCADE`,
		`DROP TABLE IF EXISTS parties CASCADE`,
		`DROP TABLE IF EXISTS games CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		// Users are provisioned lazily from validated tokens
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(255) PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Games mirror catalog entries referenced by parties and comments
		`CREATE TABLE IF NOT EXISTS games (
			id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			cover_url TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS parties (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			game_id BIGINT NOT NULL REFERENCES games(id),
			leader_id VARCHAR(255) NOT NULL REFERENCES users(id),
			looking_for INTEGER NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			details TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		// Roster rows; the leader holds a row too
		`CREATE TABLE IF NOT EXISTS party_members (
			party_id UUID NOT NULL REFERENCES parties(id) ON DELETE CASCADE,
			user_id VARCHAR(255) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			joined_at TIMESTAMPTZ DEFAULT NOW(),
			PRIMARY KEY (party_id, user_id)
		)`,

		// A comment attaches to a party or directly to a game
		`CREATE TABLE IF NOT EXISTS comments (
			id UUID PRIMARY KEY,
			party_id UUID REFERENCES parties(id) ON DELETE CASCADE,
			game_id BIGINT REFERENCES games(id),
			user_id VARCHAR(255) NOT NULL REFERENCES users(id),
			body TEXT NOT NULL,
			likes INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			CHECK ((party_id IS NULL) <> (game_id IS NULL))
		)`,

		// One like per user per comment; the aggregate lives on comments.likes
		`CREATE TABLE IF NOT EXISTS comment_likes (
			comment_id UUID NOT NULL REFERENCES comments(id) ON DELETE CASCADE,
			user_id VARCHAR(255) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			PRIMARY KEY (comment_id, user_id)
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_parties_date ON parties(date)`,
		`CREATE INDEX IF NOT EXISTS idx_parties_leader_id ON parties(leader_id)`,
		`CREATE INDEX IF NOT EXISTS idx_party_members_user_id ON party_members(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_party_id ON comments(party_id)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_game_id ON comments(game_id)`,
		`CREATE INDEX IF NOT EXISTS idx_comment_likes_user_id ON comment_likes(user_id)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`INSERT INTO users (id, username) VALUES
			('seed-user-1', 'NightOwl'),
			('seed-user-2', 'Vexa'),
			('seed-user-3', 'Brick')
		ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO games (id, name) VALUES
			(3498, 'Grand Theft Auto V'),
			(32, 'Destiny 2'),
			(10213, 'Dota 2')
		ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO parties (id, name, game_id, leader_id, looking_for, date, details) VALUES
			('7b33e6bc-7a7d-4f0e-bd9f-8a2f26a3d001', 'Heist night', 3498, 'seed-user-1', 3, NOW() + INTERVAL '2 days', 'Doing the full setup chain, mics required'),
			('7b33e6bc-7a7d-4f0e-bd9f-8a2f26a3d002', 'Raid sherpa run', 32, 'seed-user-2', 5, NOW() + INTERVAL '5 days', 'First timers welcome, will explain mechanics')
		ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO party_members (party_id, user_id) VALUES
			('7b33e6bc-7a7d-4f0e-bd9f-8a2f26a3d001', 'seed-user-1'),
			('7b33e6bc-7a7d-4f0e-bd9f-8a2f26a3d001', 'seed-user-3'),
			('7b33e6bc-7a7d-4f0e-bd9f-8a2f26a3d002', 'seed-user-2')
		ON CONFLICT DO NOTHING`,

		`INSERT INTO comments (id, party_id, game_id, user_id, body) VALUES
			('9c6f1f7a-42c8-4b3e-9a51-0d1f3c9ab001', '7b33e6bc-7a7d-4f0e-bd9f-8a2f26a3d001', NULL, 'seed-user-3', 'What time are we starting?'),
			('9c6f1f7a-42c8-4b3e-9a51-0d1f3c9ab002', NULL, 10213, 'seed-user-2', 'Anyone up for ranked this weekend?')
		ON CONFLICT (id) DO NOTHING`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	fmt.Printf("  Seeded sample data at %s\n", time.Now().Format(time.RFC3339))
	return nil
}

// getTableName extracts a short label from a DDL statement for logging
func getTableName(query string) string {
	fields := strings.Fields(query)
	for i, f := range fields {
		if strings.ToUpper(f) == "EXISTS" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	if len(fields) > 0 {
		return fields[0]
	}
	return query
}
