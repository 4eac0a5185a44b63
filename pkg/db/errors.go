package db

import "errors"

var (
	ErrEmptyConnString = errors.New("db: empty connection string")
	ErrParseConfig     = errors.New("db: invalid pool configuration")
	ErrConnect         = errors.New("db: could not connect")
	ErrHealthcheck     = errors.New("db: ping failed")
	ErrMigrate         = errors.New("db: migration failed")
	ErrBeginTx         = errors.New("db: begin transaction")
	ErrCommitTx        = errors.New("db: commit transaction")
)
