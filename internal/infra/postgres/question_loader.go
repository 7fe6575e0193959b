package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quizwhiz-service/internal/domain"
)

// QuestionLoader loads question JSONB rows from Postgres, one row per question,
// indexed by the (exam_type, subject, topic) triple.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context, key domain.TopicKey) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT data FROM questions WHERE exam_type=$1 AND subject=$2 AND topic=$3 ORDER BY id`,
		key.ExamType, key.Subject, key.Topic)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var q domain.Question
		if err := json.Unmarshal(raw, &q); err != nil {
			return nil, fmt.Errorf("unmarshal question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}

// SeedQuestions upserts catalog questions; used by the seed command and tests.
func SeedQuestions(ctx context.Context, pool *pgxpool.Pool, questions []domain.Question) error {
	for _, q := range questions {
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("marshal question %s: %w", q.ID, err)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO questions (id, exam_type, subject, topic, data)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET exam_type=$2, subject=$3, topic=$4, data=$5`,
			q.ID, q.ExamType, q.Subject, q.Topic, data)
		if err != nil {
			return fmt.Errorf("seed question %s: %w", q.ID, err)
		}
	}
	return nil
}
