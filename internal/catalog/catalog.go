// Package catalog keeps an index of the emitted class files so methods can be
// looked up by name without parsing every document.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"rdoc-scraper/internal/catalog/db"
	"rdoc-scraper/internal/rdoc"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("internal/catalog")

type Config struct {
	// File is a sqlite file path or a libsql:// (or http(s)://) url.
	File      string `json:"file"`
	AuthToken string `json:"auth_token"`
}

func (c Config) Enabled() bool {
	return c.File != ""
}

func (c Config) remote() bool {
	for _, scheme := range []string{"libsql://", "http://", "https://"} {
		if strings.HasPrefix(c.File, scheme) {
			return true
		}
	}
	return false
}

func wrapOpenDB(err error) error {
	return fmt.Errorf("open catalog: %w", err)
}

// OpenDB opens the catalog database and creates the schema if needed.
func OpenDB(config Config) (*sql.DB, error) {
	var (
		database *sql.DB
		err      error
	)
	if config.remote() {
		dsn := config.File
		if config.AuthToken != "" {
			dsn += "?authToken=" + config.AuthToken
		}
		database, err = sql.Open("libsql", dsn)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
	} else {
		if config.File != ":memory:" {
			err = os.MkdirAll(filepath.Dir(config.File), 0777)
			if err != nil {
				return nil, wrapOpenDB(err)
			}
		}
		database, err = sql.Open("sqlite", config.File)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
		database.SetMaxOpenConns(1)
		if config.File != ":memory:" {
			_, err = database.Exec("PRAGMA journal_mode=WAL")
			if err != nil {
				database.Close()
				return nil, wrapOpenDB(err)
			}
		}
	}

	_, err = database.Exec(db.Schema)
	if err != nil {
		database.Close()
		return nil, wrapOpenDB(err)
	}
	return database, nil
}

// Entry is a class together with the file it was written to. The names of the
// node are xml escaped, they are stored unescaped so lookups match what a user types.
type Entry struct {
	Node rdoc.NodeData
	File string
}

type Method struct {
	ClassName   string
	Name        string
	FullName    string
	IsSingleton bool
}

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// Replace swaps every row of the given version for entries in a single
// transaction.
func (s Store) Replace(ctx context.Context, version string, entries []Entry) error {
	ctx, span := tracer.Start(ctx, "Replace")
	defer span.End()

	span.SetAttributes(
		attribute.String("version", version),
		attribute.Int("entries", len(entries)),
	)

	err := s.replace(ctx, version, entries)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s Store) replace(ctx context.Context, version string, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteMethods(ctx, version)
	if err != nil {
		return err
	}
	err = txqry.DeleteClasses(ctx, version)
	if err != nil {
		return err
	}

	for _, e := range entries {
		err = txqry.CreateClass(ctx, db.Class{
			Version:   version,
			Name:      html.UnescapeString(e.Node.Name),
			Namespace: e.Node.Namespace,
			FullName:  html.UnescapeString(e.Node.FullName),
			File:      e.File,
		})
		if err != nil {
			return fmt.Errorf("insert class %s: %w", e.Node.Name, err)
		}

		for _, kind := range []rdoc.MethodKind{rdoc.InstanceMethod, rdoc.ClassMethod} {
			for _, m := range e.Node.Methods(kind) {
				err = txqry.CreateMethod(ctx, db.Method{
					Version:     version,
					ClassName:   html.UnescapeString(e.Node.Name),
					Name:        html.UnescapeString(m.Name),
					FullName:    html.UnescapeString(m.FullName),
					IsSingleton: m.IsSingleton,
				})
				if err != nil {
					return fmt.Errorf("insert method %s: %w", m.FullName, err)
				}
			}
		}
	}

	return tx.Commit()
}

// LookupMethod returns every method of the version with the given name.
func (s Store) LookupMethod(ctx context.Context, version, name string) ([]Method, error) {
	ctx, span := tracer.Start(ctx, "LookupMethod")
	defer span.End()

	rows, err := s.qry.GetMethodsByName(ctx, db.GetMethodsByNameParams{
		Version: version,
		Name:    name,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	methods := make([]Method, len(rows))
	for i, r := range rows {
		methods[i] = Method{
			ClassName:   r.ClassName,
			Name:        r.Name,
			FullName:    r.FullName,
			IsSingleton: r.IsSingleton,
		}
	}
	return methods, nil
}

// ClassFile returns the file the class was written to, sql.ErrNoRows if the
// class is not in the catalog.
func (s Store) ClassFile(ctx context.Context, version, name string) (string, error) {
	row, err := s.qry.GetClass(ctx, db.GetClassParams{
		Version: version,
		Name:    name,
	})
	if err != nil {
		return "", err
	}
	return row.File, nil
}

func (s Store) CountClasses(ctx context.Context, version string) (int64, error) {
	return s.qry.CountClasses(ctx, version)
}
