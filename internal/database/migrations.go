package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255),
		first_name VARCHAR(100),
		middle_name VARCHAR(100),
		last_name VARCHAR(100),
		role VARCHAR(20) NOT NULL DEFAULT 'MEMBER',
		phone_number VARCHAR(30),
		home_address TEXT,
		marital_status VARCHAR(30),
		profile_image_url VARCHAR(500),
		provider VARCHAR(50),
		provider_id VARCHAR(255),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(provider, provider_id)
	)`,

	`CREATE TABLE IF NOT EXISTS membership_numbers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		year INTEGER NOT NULL,
		membership_number VARCHAR(50) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(profile_id, year)
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS word_entries (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		scripture VARCHAR(255),
		content TEXT NOT NULL,
		entry_date DATE NOT NULL,
		created_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS devotionals (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		scripture VARCHAR(255),
		content TEXT,
		entry_date DATE NOT NULL,
		document_name VARCHAR(255),
		document_path VARCHAR(500),
		document_url VARCHAR(500),
		created_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS sermons (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		preacher VARCHAR(255),
		scripture VARCHAR(255),
		description TEXT,
		video_url VARCHAR(500),
		sermon_date DATE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS audio_messages (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		speaker VARCHAR(255),
		audio_url VARCHAR(500) NOT NULL,
		duration_seconds INTEGER,
		message_date DATE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS sunday_school_outlines (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		outline_date DATE NOT NULL,
		file_name VARCHAR(255) NOT NULL,
		file_path VARCHAR(500) NOT NULL,
		file_url VARCHAR(500) NOT NULL,
		uploaded_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_profiles_role ON profiles(role)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_created_at ON profiles(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_updated_at ON profiles(updated_at)`,
	`CREATE INDEX IF NOT EXISTS idx_membership_numbers_profile_id ON membership_numbers(profile_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_profile_id ON refresh_tokens(profile_id)`,
	`CREATE INDEX IF NOT EXISTS idx_word_entries_entry_date ON word_entries(entry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_devotionals_entry_date ON devotionals(entry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_sermons_sermon_date ON sermons(sermon_date)`,
	`CREATE INDEX IF NOT EXISTS idx_audio_messages_message_date ON audio_messages(message_date)`,
	`CREATE INDEX IF NOT EXISTS idx_outlines_outline_date ON sunday_school_outlines(outline_date)`,

	// Migration: earlier imports recorded roles with inconsistent casing
	`UPDATE profiles SET role = UPPER(role) WHERE role <> UPPER(role)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
