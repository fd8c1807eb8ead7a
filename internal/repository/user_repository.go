package repository

import (
	"context"
	"strings"

	"thinkabout/internal/database"
	"thinkabout/internal/domain/user"
)

const userColumns = `id, name, email, password_hash, gender, date_of_birth, package, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	pkg := u.Package
	if !pkg.Valid() {
		pkg = user.PackageFree
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, gender, date_of_birth, package)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		u.Name, u.Email, u.PasswordHash, u.Gender, u.DateOfBirth, string(pkg),
	)
	created, err := scanUser(row)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}
	return created, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, u user.User) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users
		 SET name = $1, email = $2, gender = $3, date_of_birth = $4, updated_at = now()
		 WHERE id = $5`,
		u.Name, u.Email, u.Gender, u.DateOfBirth, u.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdatePackage(ctx context.Context, id int64, pkg user.Package) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users SET package = $1, updated_at = now() WHERE id = $2`,
		string(pkg), id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var pkg string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Gender, &u.DateOfBirth, &pkg, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Package = user.Package(strings.TrimSpace(pkg))
	return u, nil
}
