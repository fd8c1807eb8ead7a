package repository

import (
	"context"

	"thinkabout/internal/database"
	"thinkabout/internal/domain/question"
)

const questionColumns = `id, question, choices, user_id, created_at, updated_at`

type PostgresQuestionRepository struct {
	db database.DB
}

func NewPostgresQuestionRepository(db database.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

func (r *PostgresQuestionRepository) Create(ctx context.Context, q question.Question) (question.Question, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO questions (question, choices, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING `+questionColumns,
		q.Text, nonNilChoices(q.Choices), q.UserID,
	)
	return scanQuestion(row)
}

func (r *PostgresQuestionRepository) GetByID(ctx context.Context, id int64) (question.Question, error) {
	row := r.db.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	return scanQuestion(row)
}

func (r *PostgresQuestionRepository) List(ctx context.Context) ([]question.Question, error) {
	rows, err := r.db.Query(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

func (r *PostgresQuestionRepository) ListByUser(ctx context.Context, userID int64) ([]question.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE user_id = $1 ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

func (r *PostgresQuestionRepository) Update(ctx context.Context, q question.Question) (question.Question, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE questions
		 SET question = $1, choices = $2, updated_at = now()
		 WHERE id = $3
		 RETURNING `+questionColumns,
		q.Text, nonNilChoices(q.Choices), q.ID,
	)
	return scanQuestion(row)
}

func (r *PostgresQuestionRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return question.ErrNotFound
	}
	return nil
}

func scanQuestion(row database.Row) (question.Question, error) {
	var q question.Question
	if err := row.Scan(&q.ID, &q.Text, &q.Choices, &q.UserID, &q.CreatedAt, &q.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return question.Question{}, question.ErrNotFound
		}
		return question.Question{}, err
	}
	q.Choices = nonNilChoices(q.Choices)
	return q, nil
}

func collectQuestions(rows database.Rows) ([]question.Question, error) {
	defer rows.Close()

	out := make([]question.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nonNilChoices(c []string) []string {
	if c == nil {
		return []string{}
	}
	return c
}
