package store

const Schema = `
CREATE TABLE IF NOT EXISTS tracks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,

	-- Caller-supplied metadata
	title TEXT NOT NULL,
	artist TEXT NOT NULL DEFAULT '',
	album TEXT NOT NULL DEFAULT '',
	genre TEXT NOT NULL DEFAULT '',
	cover_url TEXT NOT NULL DEFAULT '',

	-- Storage bookkeeping
	filename TEXT UNIQUE NOT NULL,
	original_filename TEXT NOT NULL,
	content_type TEXT NOT NULL,
	file_size INTEGER NOT NULL,

	created_at DATETIME NOT NULL
);

-- Listing is always newest-first
CREATE INDEX IF NOT EXISTS idx_tracks_created_at ON tracks(created_at DESC);

CREATE INDEX IF NOT EXISTS idx_tracks_filename ON tracks(filename);
`
