package repository

import (
	"context"

	"thinkabout/internal/database"
	"thinkabout/internal/domain/question"
)

type PostgresAnswerRepository struct {
	db database.DB
}

func NewPostgresAnswerRepository(db database.DB) *PostgresAnswerRepository {
	return &PostgresAnswerRepository{db: db}
}

func (r *PostgresAnswerRepository) Create(ctx context.Context, a question.Answer) (question.Answer, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO answers (answer, user_id, question_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, answer, user_id, question_id, created_at`,
		a.Text, a.UserID, a.QuestionID,
	)

	var created question.Answer
	if err := row.Scan(&created.ID, &created.Text, &created.UserID, &created.QuestionID, &created.CreatedAt); err != nil {
		if database.IsForeignKeyViolation(err) {
			return question.Answer{}, question.ErrNotFound
		}
		return question.Answer{}, err
	}
	return created, nil
}

func (r *PostgresAnswerRepository) ListByQuestion(ctx context.Context, questionID int64) ([]question.AnswerWithAuthor, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.answer, a.user_id, a.question_id, a.created_at, u.gender, u.date_of_birth
		 FROM answers a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.question_id = $1
		 ORDER BY a.id ASC`,
		questionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]question.AnswerWithAuthor, 0)
	for rows.Next() {
		var a question.AnswerWithAuthor
		if err := rows.Scan(&a.ID, &a.Text, &a.UserID, &a.QuestionID, &a.CreatedAt, &a.AuthorGender, &a.AuthorDateOfBirth); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnswerRepository) Count(ctx context.Context, questionID int64, text string) (int64, int64, error) {
	var total, matching int64
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE answer = $2)
		 FROM answers
		 WHERE question_id = $1`,
		questionID, text,
	)
	if err := row.Scan(&total, &matching); err != nil {
		return 0, 0, err
	}
	return total, matching, nil
}
