// Package testutil holds in-memory implementations of the repository
// interfaces for handler and usecase tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"thinkabout/internal/domain/question"
	"thinkabout/internal/domain/user"
)

var ErrInjected = errors.New("injected failure")

// Store backs Users, Questions and Answers with shared maps so answer
// listings can join on users like the SQL repositories do.
type Store struct {
	mu sync.Mutex

	nextUserID     int64
	nextQuestionID int64
	nextAnswerID   int64

	users     map[int64]user.User
	questions map[int64]question.Question
	answers   []question.Answer

	// Calls counts every repository method invocation.
	Calls int
	// FailWith, when set, is returned by every repository call.
	FailWith error
}

func NewStore() *Store {
	return &Store{
		users:     map[int64]user.User{},
		questions: map[int64]question.Question{},
	}
}

func (s *Store) Users() *UserRepo         { return &UserRepo{s: s} }
func (s *Store) Questions() *QuestionRepo { return &QuestionRepo{s: s} }
func (s *Store) Answers() *AnswerRepo     { return &AnswerRepo{s: s} }

func (s *Store) enter() error {
	s.mu.Lock()
	s.Calls++
	return s.FailWith
}

// CallCount is safe to read while handlers run.
func (s *Store) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return user.User{}, err
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}
	s.nextUserID++
	now := time.Now().UTC()
	u.ID = s.nextUserID
	if !u.Package.Valid() {
		u.Package = user.PackageFree
	}
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = u
	return u, nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return user.User{}, err
	}
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return user.User{}, err
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return false, err
	}
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, u user.User) error {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return err
	}
	cur, ok := s.users[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	for id, other := range s.users {
		if id != u.ID && other.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	cur.Name, cur.Email, cur.Gender, cur.DateOfBirth = u.Name, u.Email, u.Gender, u.DateOfBirth
	cur.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = cur
	return nil
}

func (r *UserRepo) UpdatePackage(_ context.Context, id int64, pkg user.Package) error {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return err
	}
	cur, ok := s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	cur.Package = pkg
	s.users[id] = cur
	return nil
}

type QuestionRepo struct{ s *Store }

func (r *QuestionRepo) Create(_ context.Context, q question.Question) (question.Question, error) {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return question.Question{}, err
	}
	s.nextQuestionID++
	now := time.Now().UTC()
	q.ID = s.nextQuestionID
	q.Choices = append([]string{}, q.Choices...)
	q.CreatedAt, q.UpdatedAt = now, now
	s.questions[q.ID] = q
	return q, nil
}

func (r *QuestionRepo) GetByID(_ context.Context, id int64) (question.Question, error) {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return question.Question{}, err
	}
	q, ok := s.questions[id]
	if !ok {
		return question.Question{}, question.ErrNotFound
	}
	return q, nil
}

func (r *QuestionRepo) List(_ context.Context) ([]question.Question, error) {
	return r.filter(func(question.Question) bool { return true })
}

func (r *QuestionRepo) ListByUser(_ context.Context, userID int64) ([]question.Question, error) {
	return r.filter(func(q question.Question) bool { return q.UserID == userID })
}

func (r *QuestionRepo) filter(keep func(question.Question) bool) ([]question.Question, error) {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]question.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *QuestionRepo) Update(_ context.Context, q question.Question) (question.Question, error) {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return question.Question{}, err
	}
	cur, ok := s.questions[q.ID]
	if !ok {
		return question.Question{}, question.ErrNotFound
	}
	cur.Text = q.Text
	cur.Choices = append([]string{}, q.Choices...)
	cur.UpdatedAt = time.Now().UTC()
	s.questions[q.ID] = cur
	return cur, nil
}

// Delete cascades to answers, matching the schema.
func (r *QuestionRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return err
	}
	if _, ok := s.questions[id]; !ok {
		return question.ErrNotFound
	}
	delete(s.questions, id)
	kept := s.answers[:0]
	for _, a := range s.answers {
		if a.QuestionID != id {
			kept = append(kept, a)
		}
	}
	s.answers = kept
	return nil
}

type AnswerRepo struct{ s *Store }

func (r *AnswerRepo) Create(_ context.Context, a question.Answer) (question.Answer, error) {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return question.Answer{}, err
	}
	if _, ok := s.questions[a.QuestionID]; !ok {
		return question.Answer{}, question.ErrNotFound
	}
	s.nextAnswerID++
	a.ID = s.nextAnswerID
	a.CreatedAt = time.Now().UTC()
	s.answers = append(s.answers, a)
	return a, nil
}

func (r *AnswerRepo) ListByQuestion(_ context.Context, questionID int64) ([]question.AnswerWithAuthor, error) {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]question.AnswerWithAuthor, 0)
	for _, a := range s.answers {
		if a.QuestionID != questionID {
			continue
		}
		u := s.users[a.UserID]
		out = append(out, question.AnswerWithAuthor{Answer: a, AuthorGender: u.Gender, AuthorDateOfBirth: u.DateOfBirth})
	}
	return out, nil
}

func (r *AnswerRepo) Count(_ context.Context, questionID int64, text string) (int64, int64, error) {
	s := r.s
	err := s.enter()
	defer s.mu.Unlock()
	if err != nil {
		return 0, 0, err
	}
	var total, matching int64
	for _, a := range s.answers {
		if a.QuestionID != questionID {
			continue
		}
		total++
		if a.Text == text {
			matching++
		}
	}
	return total, matching, nil
}

// AnswerCount reports stored answers for a question.
func (s *Store) AnswerCount(questionID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.answers {
		if a.QuestionID == questionID {
			n++
		}
	}
	return n
}

// AttemptStore is an in-memory auth.AttemptStore ignoring ttl.
type AttemptStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{counts: map[string]int64{}}
}

func (a *AttemptStore) GetInt(_ context.Context, key string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts[key], nil
}

func (a *AttemptStore) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts[key]++
	return a.counts[key], nil
}

func (a *AttemptStore) Delete(_ context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.counts, key)
	return nil
}
