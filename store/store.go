// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store holds the working set of benchmark records in a SQL
// database.
//
// The default database is an in-memory SQLite instance (see package
// golang.org/x/benchplot/store/sqlite3), so the working set lives
// exactly as long as the process. A DB opened on a persistent
// database sees only the batches it created itself; rows left by
// earlier runs are never read. Records keep the order in which they
// were inserted; every read returns them in that order.
package store

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/benchplot/benchquery"
	"golang.org/x/benchplot/benchrec"
	"golang.org/x/net/context"
)

// DB is the working-set database.
type DB struct {
	sql *sql.DB

	// base is the largest BatchID present when the DB was opened.
	// Reads only see batches above it.
	base int64

	insertBatch  *sql.Stmt
	insertRecord *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := db.QueryRow("SELECT COALESCE(MAX(BatchID), 0) FROM Batches").Scan(&d.base); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Batches (
	BatchID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Label VARCHAR(1024)
);
CREATE TABLE IF NOT EXISTS Records (
	BatchID BIGINT UNSIGNED,
	RecordID BIGINT UNSIGNED,
	GroupName VARCHAR(255),
	Experiment VARCHAR(255),
	Algorithm VARCHAR(255),
	Options VARCHAR(255),
	HasOptions BOOLEAN,
	BaseSize DOUBLE,
	ExperimentSize DOUBLE,
	CPUTime DOUBLE,
	RealTime DOUBLE,
	Iterations DOUBLE,
	TimeUnit VARCHAR(16),
	FullKey VARCHAR(512),
	PRIMARY KEY (BatchID, RecordID),
	FOREIGN KEY (BatchID) REFERENCES Batches(BatchID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements(driverName string) error {
	var err error
	db.insertBatch, err = db.sql.Prepare("INSERT INTO Batches(Label) VALUES (?)")
	if err != nil {
		return err
	}
	db.insertRecord, err = db.sql.Prepare(`INSERT INTO Records(BatchID, RecordID, GroupName, Experiment, Algorithm, Options, HasOptions,
		BaseSize, ExperimentSize, CPUTime, RealTime, Iterations, TimeUnit, FullKey)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	return err
}

// A Batch is the set of records extracted from one input file.
type Batch struct {
	// Label identifies the input the records came from.
	Label string

	id       int64
	recordid int64
	db       *DB
}

// NewBatch starts a new batch of records labeled label.
func (db *DB) NewBatch(ctx context.Context, label string) (*Batch, error) {
	res, err := db.insertBatch.ExecContext(ctx, label)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Batch{Label: label, id: id, db: db}, nil
}

// Insert appends recs to the batch in a single transaction.
func (b *Batch) Insert(ctx context.Context, recs []*benchrec.Record) (err error) {
	tx, err := b.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, b.db.insertRecord)
	next := b.recordid
	for _, r := range recs {
		if _, err = stmt.ExecContext(ctx, b.id, next, r.Group, r.Experiment, r.Algorithm, r.Options, r.HasOptions,
			r.BaseSize, r.ExperimentSize, r.CPUTime, r.RealTime, r.Iterations, r.TimeUnit, r.FullAlgorithmKey); err != nil {
			return err
		}
		next++
	}
	b.recordid = next
	return nil
}

// Records returns every record of the batches created through db, in
// insertion order.
func (db *DB) Records(ctx context.Context) ([]*benchrec.Record, error) {
	rows, err := db.sql.QueryContext(ctx, `SELECT GroupName, Experiment, Algorithm, Options, HasOptions,
		BaseSize, ExperimentSize, CPUTime, RealTime, Iterations, TimeUnit, FullKey
		FROM Records WHERE BatchID > ? ORDER BY BatchID, RecordID`, db.base)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []*benchrec.Record
	for rows.Next() {
		r := new(benchrec.Record)
		if err := rows.Scan(&r.Group, &r.Experiment, &r.Algorithm, &r.Options, &r.HasOptions,
			&r.BaseSize, &r.ExperimentSize, &r.CPUTime, &r.RealTime, &r.Iterations, &r.TimeUnit, &r.FullAlgorithmKey); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Search returns the records that satisfy p, in insertion order.
func (db *DB) Search(ctx context.Context, p *benchquery.Predicate) ([]*benchrec.Record, error) {
	recs, err := db.Records(ctx)
	if err != nil {
		return nil, err
	}
	return p.Select(recs)
}

// CountRecords returns the number of records in the batches created
// through db.
func (db *DB) CountRecords(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Records WHERE BatchID > ?", db.base).Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertBatch.Close(); err != nil {
		return err
	}
	if err := db.insertRecord.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
