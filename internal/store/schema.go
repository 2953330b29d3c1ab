package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    file_path            TEXT PRIMARY KEY,
    session_id           TEXT NOT NULL,
    project_path         TEXT,
    model                TEXT,
    started_at           TEXT,
    last_activity        TEXT,
    input_tokens         INTEGER,
    output_tokens        INTEGER,
    cache_creation       INTEGER,
    cache_read           INTEGER,
    message_count        INTEGER,
    user_messages        INTEGER,
    assistant_messages   INTEGER,
    latest_context_used  INTEGER,
    context_window       INTEGER,
    file_size            INTEGER NOT NULL,
    file_mtime_ns        INTEGER NOT NULL,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS session_messages (
    file_path            TEXT NOT NULL REFERENCES sessions(file_path) ON DELETE CASCADE,
    seq                  INTEGER NOT NULL,
    timestamp            TEXT,
    model                TEXT,
    input_tokens         INTEGER,
    output_tokens        INTEGER,
    cache_creation       INTEGER,
    cache_read           INTEGER,
    message_type         TEXT,
    PRIMARY KEY (file_path, seq)
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_last_activity ON sessions(last_activity);
`
