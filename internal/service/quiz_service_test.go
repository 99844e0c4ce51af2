package service

import (
	"ecolearn_backend/internal/model"
	"encoding/json"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestQuizScore(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    int
	}{
		{"all correct", 2, 2, 100},
		{"half correct", 1, 2, 50},
		{"truncates toward zero", 2, 3, 66},
		{"seven of ten", 7, 10, 70},
		{"none correct", 0, 4, 0},
		{"empty quiz is zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuizScore(tt.correct, tt.total); got != tt.want {
				t.Errorf("QuizScore(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
			}
		})
	}
}

func newTestQuiz(t *testing.T, db *gorm.DB) (*QuizService, *ProgressionService) {
	t.Helper()
	progression := newTestProgression(t, db)
	return NewQuizService(progression.LessonRepo, progression, progression.Cfg), progression
}

func addTestQuestions(t *testing.T, db *gorm.DB, lessonID uint, n int) []model.QuizQuestion {
	t.Helper()
	options, _ := json.Marshal([]string{"right", "wrong"})
	questions := make([]model.QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		q := model.QuizQuestion{
			LessonID: lessonID,
			Question: fmt.Sprintf("question %d", i+1),
			Options:  options,
			Answer:   "right",
			Order:    i + 1,
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("create question: %v", err)
		}
		questions = append(questions, q)
	}
	return questions
}

func submission(questions []model.QuizQuestion, correct int) QuizSubmission {
	answers := make(map[uint]string, len(questions))
	for i, q := range questions {
		if i < correct {
			answers[q.ID] = "right"
		} else {
			answers[q.ID] = "wrong"
		}
	}
	return QuizSubmission{Answers: answers}
}

func TestSubmitQuizFailDoesNotComplete(t *testing.T) {
	db := newTestDB(t)
	quiz, progression := newTestQuiz(t, db)
	user := createTestUser(t, db, "Tara")
	lesson := createTestLesson(t, db, "Ocean Health", 100)
	questions := addTestQuestions(t, db, lesson.ID, 2)

	outcome, err := quiz.SubmitQuiz(user.ID, lesson.ID, submission(questions, 1))
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if outcome.Score != 50 {
		t.Errorf("Score = %d, want 50", outcome.Score)
	}
	if outcome.Passed {
		t.Error("Passed = true, want false")
	}
	if outcome.Completion != nil {
		t.Errorf("Completion = %v, want nil", outcome.Completion)
	}

	fresh, err := progression.UserRepo.FindByID(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Points != 0 {
		t.Errorf("points after failed quiz = %d, want 0", fresh.Points)
	}
}

func TestSubmitQuizPassCompletesLesson(t *testing.T) {
	db := newTestDB(t)
	quiz, _ := newTestQuiz(t, db)
	user := createTestUser(t, db, "Vikram")
	lesson := createTestLesson(t, db, "Solar Power", 150)
	questions := addTestQuestions(t, db, lesson.ID, 2)

	outcome, err := quiz.SubmitQuiz(user.ID, lesson.ID, submission(questions, 2))
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if outcome.Score != 100 || !outcome.Passed {
		t.Fatalf("Score = %d Passed = %v, want 100 true", outcome.Score, outcome.Passed)
	}
	if outcome.Completion == nil {
		t.Fatal("Completion is nil on a pass")
	}
	if outcome.Completion.Outcome != OutcomeOK {
		t.Fatalf("Completion.Outcome = %q, want %q", outcome.Completion.Outcome, OutcomeOK)
	}
	if outcome.Completion.PointsAwarded != 150 {
		t.Errorf("PointsAwarded = %d, want 150", outcome.Completion.PointsAwarded)
	}
}

func TestSubmitQuizPassBoundaryInclusive(t *testing.T) {
	db := newTestDB(t)
	quiz, _ := newTestQuiz(t, db)
	user := createTestUser(t, db, "Anita")
	lesson := createTestLesson(t, db, "Waste Sorting", 100)
	questions := addTestQuestions(t, db, lesson.ID, 10)

	// 7/10 lands exactly on the 70 threshold and must pass.
	outcome, err := quiz.SubmitQuiz(user.ID, lesson.ID, submission(questions, 7))
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if outcome.Score != 70 {
		t.Fatalf("Score = %d, want 70", outcome.Score)
	}
	if !outcome.Passed {
		t.Error("Passed = false at the threshold, want true")
	}

	// 6/10 is one below and must fail.
	outcome, err = quiz.SubmitQuiz(user.ID, lesson.ID, submission(questions, 6))
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Passed {
		t.Error("Passed = true below the threshold, want false")
	}
}

func TestSubmitQuizEmptyLessonFails(t *testing.T) {
	db := newTestDB(t)
	quiz, _ := newTestQuiz(t, db)
	user := createTestUser(t, db, "Rohit")
	lesson := createTestLesson(t, db, "Untitled Draft", 100)

	outcome, err := quiz.SubmitQuiz(user.ID, lesson.ID, QuizSubmission{Answers: map[uint]string{}})
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if outcome.Score != 0 || outcome.Passed {
		t.Errorf("Score = %d Passed = %v, want 0 false", outcome.Score, outcome.Passed)
	}
}

func TestSubmitQuizRepeatPassAlreadyDone(t *testing.T) {
	db := newTestDB(t)
	quiz, progression := newTestQuiz(t, db)
	user := createTestUser(t, db, "Sneha")
	lesson := createTestLesson(t, db, "Composting", 120)
	questions := addTestQuestions(t, db, lesson.ID, 2)

	if _, err := quiz.SubmitQuiz(user.ID, lesson.ID, submission(questions, 2)); err != nil {
		t.Fatal(err)
	}

	outcome, err := quiz.SubmitQuiz(user.ID, lesson.ID, submission(questions, 2))
	if err != nil {
		t.Fatalf("repeat SubmitQuiz: %v", err)
	}
	if !outcome.Passed {
		t.Fatal("repeat attempt should still grade as a pass")
	}
	if outcome.Completion == nil || outcome.Completion.Outcome != OutcomeAlreadyDone {
		t.Fatalf("repeat Completion = %v, want already_done", outcome.Completion)
	}

	fresh, err := progression.UserRepo.FindByID(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Points != 120 {
		t.Errorf("points after repeat pass = %d, want 120", fresh.Points)
	}

	results, err := progression.LessonRepo.FindQuizResults(user.ID, lesson.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("recorded attempts = %d, want 2", len(results))
	}
}
