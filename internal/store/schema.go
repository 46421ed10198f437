package store

const schema = `
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    name TEXT PRIMARY KEY,
    score REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS mods (
    name TEXT PRIMARY KEY,
    category TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS contributors (
    name TEXT PRIMARY KEY,
    mod_count INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mods_category ON mods(category);
`
