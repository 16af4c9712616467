package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}

type Class struct {
	Version   string
	Name      string
	Namespace string
	FullName  string
	File      string
}

type Method struct {
	Version     string
	ClassName   string
	Name        string
	FullName    string
	IsSingleton bool
}

const deleteMethods = `-- name: DeleteMethods :exec
delete from method where version = ?
`

func (q *Queries) DeleteMethods(ctx context.Context, version string) error {
	_, err := q.db.ExecContext(ctx, deleteMethods, version)
	return err
}

const deleteClasses = `-- name: DeleteClasses :exec
delete from class where version = ?
`

func (q *Queries) DeleteClasses(ctx context.Context, version string) error {
	_, err := q.db.ExecContext(ctx, deleteClasses, version)
	return err
}

const createClass = `-- name: CreateClass :exec
insert into class(version, name, namespace, full_name, file)
values (?, ?, ?, ?, ?)
`

func (q *Queries) CreateClass(ctx context.Context, arg Class) error {
	_, err := q.db.ExecContext(ctx, createClass,
		arg.Version,
		arg.Name,
		arg.Namespace,
		arg.FullName,
		arg.File,
	)
	return err
}

const createMethod = `-- name: CreateMethod :exec
insert into method(version, class_name, name, full_name, is_singleton)
values (?, ?, ?, ?, ?)
`

func (q *Queries) CreateMethod(ctx context.Context, arg Method) error {
	_, err := q.db.ExecContext(ctx, createMethod,
		arg.Version,
		arg.ClassName,
		arg.Name,
		arg.FullName,
		arg.IsSingleton,
	)
	return err
}

const getMethodsByName = `-- name: GetMethodsByName :many
select version, class_name, name, full_name, is_singleton from method
where version = ? and name = ?
order by class_name, is_singleton, rowid
`

type GetMethodsByNameParams struct {
	Version string
	Name    string
}

func (q *Queries) GetMethodsByName(ctx context.Context, arg GetMethodsByNameParams) ([]Method, error) {
	rows, err := q.db.QueryContext(ctx, getMethodsByName, arg.Version, arg.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Method
	for rows.Next() {
		var i Method
		if err := rows.Scan(
			&i.Version,
			&i.ClassName,
			&i.Name,
			&i.FullName,
			&i.IsSingleton,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getClass = `-- name: GetClass :one
select version, name, namespace, full_name, file from class
where version = ? and name = ?
`

type GetClassParams struct {
	Version string
	Name    string
}

func (q *Queries) GetClass(ctx context.Context, arg GetClassParams) (Class, error) {
	row := q.db.QueryRowContext(ctx, getClass, arg.Version, arg.Name)
	var i Class
	err := row.Scan(
		&i.Version,
		&i.Name,
		&i.Namespace,
		&i.FullName,
		&i.File,
	)
	return i, err
}

const countClasses = `-- name: CountClasses :one
select count(*) from class where version = ?
`

func (q *Queries) CountClasses(ctx context.Context, version string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countClasses, version)
	var count int64
	err := row.Scan(&count)
	return count, err
}
