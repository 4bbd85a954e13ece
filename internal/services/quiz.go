package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/repos"
	"github.com/studyhive/studyhive-backend/internal/scheduler"
	"github.com/studyhive/studyhive-backend/internal/types"
)

const (
	questionsPerLevel      = 10
	questionsPerMixedLevel = 5
)

// Weighted contribution of each level to the overall percentage.
var overallWeights = map[scheduler.Level]float64{
	scheduler.LevelAdvanced:     0.5,
	scheduler.LevelIntermediate: 0.35,
	scheduler.LevelBeginner:     0.15,
}

type QuestionInput struct {
	Subject         string   `json:"subject"`
	Question        string   `json:"question"`
	Choices         []string `json:"choices"`
	CorrectAnswer   string   `json:"correct_answer"`
	DifficultyLevel string   `json:"difficulty_level"`
}

type QuestionView struct {
	Question        string   `json:"question"`
	Choices         []string `json:"choices"`
	CorrectAnswer   string   `json:"correct_answer"`
	DifficultyLevel string   `json:"difficulty_level"`
}

type SubjectResults struct {
	Subject string             `json:"subject"`
	Levels  map[string]*string `json:"levels"`
}

type ResultsSummary struct {
	Overall  map[string]*string `json:"overall"`
	Subjects []SubjectResults   `json:"subjects"`
}

type QuizService interface {
	AddQuestions(ctx context.Context, questions []QuestionInput) error
	GetQuestions(ctx context.Context, subject, level string) ([]QuestionView, error)
	DeleteQuestion(ctx context.Context, questionID uuid.UUID) error
	SaveResult(ctx context.Context, userID uuid.UUID, subject, level, results string) (bool, error)
	GetResultsSummary(ctx context.Context, userID uuid.UUID) (*ResultsSummary, error)
	OverallPercentage(ctx context.Context, userID uuid.UUID) (float64, error)
}

type quizService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.QuizQuestionRepo
	resultRepo   repos.QuizResultRepo
}

func NewQuizService(db *gorm.DB, log *logger.Logger, questionRepo repos.QuizQuestionRepo, resultRepo repos.QuizResultRepo) QuizService {
	return &quizService{
		db:           db,
		log:          log.With("service", "QuizService"),
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
	}
}

func (qs *quizService) AddQuestions(ctx context.Context, questions []QuestionInput) error {
	if len(questions) == 0 {
		return apierr.Validation("expected a list of questions")
	}
	rows := make([]*types.QuizQuestion, 0, len(questions))
	for i, q := range questions {
		if q.Subject == "" || q.Question == "" || q.CorrectAnswer == "" {
			return apierr.Validation("question %d: subject, question and correct_answer are required", i)
		}
		if len(q.Choices) != 4 {
			return apierr.Validation("question %d: exactly 4 choices are required", i)
		}
		if _, err := scheduler.ParseLevel(q.DifficultyLevel); err != nil {
			return err
		}
		rows = append(rows, &types.QuizQuestion{
			ID:              uuid.New(),
			Subject:         q.Subject,
			Question:        q.Question,
			Choice1:         q.Choices[0],
			Choice2:         q.Choices[1],
			Choice3:         q.Choices[2],
			Choice4:         q.Choices[3],
			CorrectAnswer:   q.CorrectAnswer,
			DifficultyLevel: q.DifficultyLevel,
		})
	}
	if _, err := qs.questionRepo.Create(ctx, nil, rows); err != nil {
		return fmt.Errorf("create questions: %w", err)
	}
	return nil
}

func (qs *quizService) GetQuestions(ctx context.Context, subject, level string) ([]QuestionView, error) {
	if subject == "" || level == "" {
		return nil, apierr.Validation("subject and level are required")
	}

	var rows []*types.QuizQuestion
	if level == "Mixed" {
		for _, lv := range []scheduler.Level{scheduler.LevelBeginner, scheduler.LevelIntermediate, scheduler.LevelAdvanced} {
			batch, err := qs.questionRepo.GetBySubjectLevel(ctx, nil, subject, string(lv), questionsPerMixedLevel)
			if err != nil {
				return nil, fmt.Errorf("retrieve questions: %w", err)
			}
			rows = append(rows, batch...)
		}
	} else {
		if _, err := scheduler.ParseLevel(level); err != nil {
			return nil, err
		}
		batch, err := qs.questionRepo.GetBySubjectLevel(ctx, nil, subject, level, questionsPerLevel)
		if err != nil {
			return nil, fmt.Errorf("retrieve questions: %w", err)
		}
		rows = batch
	}

	views := make([]QuestionView, 0, len(rows))
	for _, q := range rows {
		views = append(views, QuestionView{
			Question:        q.Question,
			Choices:         []string{q.Choice1, q.Choice2, q.Choice3, q.Choice4},
			CorrectAnswer:   q.CorrectAnswer,
			DifficultyLevel: q.DifficultyLevel,
		})
	}
	return views, nil
}

func (qs *quizService) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	rows, err := qs.questionRepo.GetByIDs(ctx, nil, []uuid.UUID{questionID})
	if err != nil {
		return fmt.Errorf("retrieve question: %w", err)
	}
	if len(rows) == 0 {
		return apierr.NotFound("quiz question not found")
	}
	return qs.questionRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{questionID})
}

func (qs *quizService) SaveResult(ctx context.Context, userID uuid.UUID, subject, level, results string) (bool, error) {
	if subject == "" || level == "" || results == "" {
		return false, apierr.Validation("subject, level, and results are required")
	}
	if _, err := scheduler.ParseLevel(level); err != nil {
		return false, err
	}
	if _, err := ParsePercent(results); err != nil {
		return false, err
	}
	created, err := qs.resultRepo.Upsert(ctx, nil, &types.QuizResult{
		ID:      uuid.New(),
		UserID:  userID,
		Subject: subject,
		Level:   level,
		Results: results,
	})
	if err != nil {
		return false, fmt.Errorf("save quiz result: %w", err)
	}
	return created, nil
}

func (qs *quizService) GetResultsSummary(ctx context.Context, userID uuid.UUID) (*ResultsSummary, error) {
	rows, err := qs.resultRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("retrieve quiz results: %w", err)
	}

	levels := []scheduler.Level{scheduler.LevelBeginner, scheduler.LevelIntermediate, scheduler.LevelAdvanced}

	bySubject := map[string]map[string]*string{}
	var order []string
	for _, row := range rows {
		if _, ok := bySubject[row.Subject]; !ok {
			bySubject[row.Subject] = map[string]*string{}
			order = append(order, row.Subject)
		}
		results := row.Results
		bySubject[row.Subject][row.Level] = &results
	}
	for _, data := range bySubject {
		for _, lv := range levels {
			if _, ok := data[string(lv)]; !ok {
				data[string(lv)] = nil
			}
		}
	}

	totals := map[scheduler.Level]float64{}
	counts := map[scheduler.Level]int{}
	for _, data := range bySubject {
		for _, lv := range levels {
			val := data[string(lv)]
			if val == nil {
				continue
			}
			pct, err := ParsePercent(*val)
			if err != nil {
				qs.log.Warn("skipping unparseable quiz result", "value", *val, "error", err)
				continue
			}
			totals[lv] += pct
			counts[lv]++
		}
	}

	overall := map[string]*string{}
	for _, lv := range levels {
		if counts[lv] == 0 {
			overall[string(lv)] = nil
			continue
		}
		avg := fmt.Sprintf("%.2f%%", totals[lv]/float64(counts[lv]))
		overall[string(lv)] = &avg
	}

	summary := &ResultsSummary{Overall: overall}
	for _, subject := range order {
		summary.Subjects = append(summary.Subjects, SubjectResults{
			Subject: subject,
			Levels:  bySubject[subject],
		})
	}
	return summary, nil
}

func (qs *quizService) OverallPercentage(ctx context.Context, userID uuid.UUID) (float64, error) {
	rows, err := qs.resultRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return 0, fmt.Errorf("retrieve quiz results: %w", err)
	}

	// Latest score per level across subjects; missing levels count as zero.
	scores := map[scheduler.Level]float64{}
	for _, row := range rows {
		pct, err := ParsePercent(row.Results)
		if err != nil {
			continue
		}
		scores[scheduler.Level(row.Level)] = pct
	}

	var overall float64
	for level, weight := range overallWeights {
		overall += scores[level] * weight
	}
	return overall, nil
}

// ParsePercent converts the stored "NN%" result string into a percentage
// value. A bare number without the percent sign also parses.
func ParsePercent(s string) (float64, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if trimmed == "" {
		return 0, apierr.Validation("empty percentage value")
	}
	pct, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, apierr.Validation("invalid percentage value %q", s)
	}
	if pct < 0 || pct > 100 {
		return 0, apierr.Validation("percentage %v out of range", pct)
	}
	return pct, nil
}
