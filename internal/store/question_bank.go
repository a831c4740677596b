package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// questionRepo implements QuestionRepo.
type questionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var bankColumns = []string{
	"id", "sequence", "created_at", "category", "subtopic", "kind", "payload", "source",
}

var bankInsertColumns = append(append([]string{}, bankColumns...), "payload_hash")

// PayloadHash identifies a payload for de-duplication. Questions with the
// same kind and payload text are the same question.
func PayloadHash(kind, payload string) string {
	sum := sha256.Sum256([]byte(kind + "\x00" + payload))
	return hex.EncodeToString(sum[:])
}

func (r *questionRepo) SaveQuestion(ctx context.Context, q BankQuestion) (bool, error) {
	if q.Category == "" || q.Subtopic == "" || q.Kind == "" || q.Payload == "" {
		return false, fmt.Errorf("save question: category, subtopic, kind and payload are required")
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return false, fmt.Errorf("next sequence: %w", err)
	}
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(BankQuestionsTable.Name).
		Columns(bankInsertColumns...).
		Values(
			q.ID,
			seqNum,
			q.CreatedAt,
			q.Category,
			q.Subtopic,
			q.Kind,
			q.Payload,
			q.Source,
			PayloadHash(q.Kind, q.Payload),
		).
		OnConflict(
			entsql.ConflictColumns("payload_hash"),
			entsql.DoNothing(),
		).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("save question: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save question: %w", err)
	}
	return n > 0, nil
}

func (r *questionRepo) ListQuestions(ctx context.Context, f BankFilter) ([]BankQuestion, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(bankColumns...).
		From(entsql.Table(BankQuestionsTable.Name)).
		OrderBy("sequence")
	applyBankFilter(sel, f)
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []BankQuestion
	for rows.Next() {
		var q BankQuestion
		if err := rows.Scan(&q.ID, &q.Sequence, &q.CreatedAt, &q.Category, &q.Subtopic, &q.Kind, &q.Payload, &q.Source); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *questionRepo) CountQuestions(ctx context.Context, f BankFilter) (int, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(BankQuestionsTable.Name))
	applyBankFilter(sel, f)

	query, args := sel.Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

func (r *questionRepo) DeleteQuestion(ctx context.Context, id string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(BankQuestionsTable.Name).
		Where(entsql.EQ("id", id)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete question %s: %w", id, err)
	}
	return nil
}

func applyBankFilter(sel *entsql.Selector, f BankFilter) {
	if f.Category != "" {
		sel.Where(entsql.EQ("category", f.Category))
	}
	if f.Subtopic != "" {
		sel.Where(entsql.EQ("subtopic", f.Subtopic))
	}
	if f.Kind != "" {
		sel.Where(entsql.EQ("kind", f.Kind))
	}
}
