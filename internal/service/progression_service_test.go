package service

import (
	"ecolearn_backend/internal/model"
	"testing"
	"time"
)

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   int
	}{
		{"zero points is level one", 0, 1},
		{"just below the boundary", 499, 1},
		{"boundary rolls over", 500, 2},
		{"one past the boundary", 501, 2},
		{"mid-range total", 2450, 5},
		{"exact multiple", 4500, 10},
		{"negative clamps to level one", -50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelForPoints(tt.points, 500); got != tt.want {
				t.Errorf("LevelForPoints(%d, 500) = %d, want %d", tt.points, got, tt.want)
			}
		})
	}
}

func TestAwardPointsLevelFromNewTotal(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, "Asha")

	// 450 + 100 crosses the 500 boundary; the reported level must come from
	// the post-update total.
	if err := db.Model(user).Update("points", 450).Error; err != nil {
		t.Fatal(err)
	}

	update, err := svc.AwardPoints(user.ID, 100, "test")
	if err != nil {
		t.Fatalf("AwardPoints: %v", err)
	}
	if update.Points != 550 {
		t.Errorf("Points = %d, want 550", update.Points)
	}
	if update.Level != 2 {
		t.Errorf("Level = %d, want 2", update.Level)
	}

	fresh, err := svc.UserRepo.FindByID(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Points != 550 {
		t.Errorf("stored points = %d, want 550", fresh.Points)
	}
}

func TestAwardPointsEcoLegendOnLevelTen(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, "Ravi")

	if err := db.Model(user).Update("points", 4400).Error; err != nil {
		t.Fatal(err)
	}

	update, err := svc.AwardPoints(user.ID, 100, "test")
	if err != nil {
		t.Fatalf("AwardPoints: %v", err)
	}
	if update.Level != 10 {
		t.Fatalf("Level = %d, want 10", update.Level)
	}
	if len(update.EarnedBadges) != 1 || update.EarnedBadges[0].Name != BadgeEcoLegend {
		t.Fatalf("EarnedBadges = %v, want [%s]", update.EarnedBadges, BadgeEcoLegend)
	}

	// Further awards above the threshold must not re-earn it.
	update, err = svc.AwardPoints(user.ID, 600, "test")
	if err != nil {
		t.Fatal(err)
	}
	if len(update.EarnedBadges) != 0 {
		t.Errorf("EarnedBadges on repeat crossing = %v, want none", update.EarnedBadges)
	}
}

func TestCompleteLessonAwardsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, "Meera")

	lesson, err := svc.LessonRepo.FindByID(1)
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.CompleteLesson(user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	if result.Outcome != OutcomeOK {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomeOK)
	}
	if result.PointsAwarded != lesson.Points {
		t.Errorf("PointsAwarded = %d, want %d", result.PointsAwarded, lesson.Points)
	}
	if result.Points != lesson.Points {
		t.Errorf("Points = %d, want %d", result.Points, lesson.Points)
	}

	repeat, err := svc.CompleteLesson(user.ID, lesson.ID)
	if err != nil {
		t.Fatalf("repeat CompleteLesson: %v", err)
	}
	if repeat.Outcome != OutcomeAlreadyDone {
		t.Fatalf("repeat Outcome = %q, want %q", repeat.Outcome, OutcomeAlreadyDone)
	}
	if repeat.Points != lesson.Points {
		t.Errorf("repeat Points = %d, want unchanged %d", repeat.Points, lesson.Points)
	}
	if repeat.PointsAwarded != 0 {
		t.Errorf("repeat PointsAwarded = %d, want 0", repeat.PointsAwarded)
	}
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, "Kiran")

	result, err := svc.CompleteLesson(user.ID, 9999)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	if result.Outcome != OutcomeNotFound {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomeNotFound)
	}

	fresh, err := svc.UserRepo.FindByID(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Points != 0 {
		t.Errorf("points after unknown lesson = %d, want 0", fresh.Points)
	}
}

func TestFifthLessonEarnsClimateChampion(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, "Nisha")

	extra := createTestLesson(t, db, "Sustainable Farming", 110)
	sixth := createTestLesson(t, db, "Plastic Free Living", 90)

	lessonIDs := []uint{1, 2, 3, 4, extra.ID}
	for i, id := range lessonIDs {
		result, err := svc.CompleteLesson(user.ID, id)
		if err != nil {
			t.Fatalf("CompleteLesson(%d): %v", id, err)
		}
		if result.Outcome != OutcomeOK {
			t.Fatalf("CompleteLesson(%d) outcome = %q", id, result.Outcome)
		}

		if i < len(lessonIDs)-1 {
			if len(result.EarnedBadges) != 0 {
				t.Errorf("lesson %d earned badges early: %v", i+1, result.EarnedBadges)
			}
			continue
		}
		if len(result.EarnedBadges) != 1 || result.EarnedBadges[0].Name != BadgeClimateChampion {
			t.Fatalf("fifth lesson badges = %v, want [%s]", result.EarnedBadges, BadgeClimateChampion)
		}
	}

	// A sixth completion must not re-earn the badge.
	result, err := svc.CompleteLesson(user.ID, sixth.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.EarnedBadges) != 0 {
		t.Errorf("sixth lesson badges = %v, want none", result.EarnedBadges)
	}

	var earnedCount int64
	db.Model(&model.EarnedBadge{}).Where("user_id = ?", user.ID).Count(&earnedCount)
	if earnedCount != 1 {
		t.Errorf("earned badge rows = %d, want 1", earnedCount)
	}
}

func TestClimateChampionRecoversFromMissedAward(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, "Rekha")

	// Five completions are already on record but the badge award never
	// landed. The next completion must pick it up.
	for _, id := range []uint{1, 2, 3, 4} {
		if err := db.Create(&model.LessonCompletion{UserID: user.ID, LessonID: id, CompletedAt: time.Now()}).Error; err != nil {
			t.Fatal(err)
		}
	}
	fifth := createTestLesson(t, db, "Air Quality", 100)
	if err := db.Create(&model.LessonCompletion{UserID: user.ID, LessonID: fifth.ID, CompletedAt: time.Now()}).Error; err != nil {
		t.Fatal(err)
	}

	sixth := createTestLesson(t, db, "Green Transport", 100)
	result, err := svc.CompleteLesson(user.ID, sixth.ID)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	if len(result.EarnedBadges) != 1 || result.EarnedBadges[0].Name != BadgeClimateChampion {
		t.Fatalf("EarnedBadges = %v, want [%s]", result.EarnedBadges, BadgeClimateChampion)
	}

	var earnedCount int64
	db.Model(&model.EarnedBadge{}).Where("user_id = ?", user.ID).Count(&earnedCount)
	if earnedCount != 1 {
		t.Errorf("earned badge rows = %d, want 1", earnedCount)
	}
}

func TestAwardPointsReportsStoredTotal(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, "Suresh")

	// The reported total must come from a re-read of the row, never from an
	// in-memory base plus delta.
	for i, delta := range []int{100, 250, 50} {
		update, err := svc.AwardPoints(user.ID, delta, "test")
		if err != nil {
			t.Fatalf("AwardPoints #%d: %v", i+1, err)
		}

		fresh, err := svc.UserRepo.FindByID(user.ID)
		if err != nil {
			t.Fatal(err)
		}
		if update.Points != fresh.Points {
			t.Errorf("award #%d reported %d points, row holds %d", i+1, update.Points, fresh.Points)
		}
		if update.Level != svc.Level(fresh.Points) {
			t.Errorf("award #%d reported level %d, row derives %d", i+1, update.Level, svc.Level(fresh.Points))
		}
	}
}

func TestJoinChallengeIncrementsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, "Arjun")

	before, err := svc.ChallengeRepo.FindByID(1)
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.JoinChallenge(user.ID, 1)
	if err != nil {
		t.Fatalf("JoinChallenge: %v", err)
	}
	if result.Outcome != OutcomeOK {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomeOK)
	}
	if result.Participants != before.Participants+1 {
		t.Errorf("Participants = %d, want %d", result.Participants, before.Participants+1)
	}

	repeat, err := svc.JoinChallenge(user.ID, 1)
	if err != nil {
		t.Fatalf("repeat JoinChallenge: %v", err)
	}
	if repeat.Outcome != OutcomeAlreadyDone {
		t.Fatalf("repeat Outcome = %q, want %q", repeat.Outcome, OutcomeAlreadyDone)
	}

	after, err := svc.ChallengeRepo.FindByID(1)
	if err != nil {
		t.Fatal(err)
	}
	if after.Participants != before.Participants+1 {
		t.Errorf("stored Participants = %d, want %d", after.Participants, before.Participants+1)
	}

	// A second user moves the counter again.
	other := createTestUser(t, db, "Priya")
	result, err = svc.JoinChallenge(other.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if result.Participants != before.Participants+2 {
		t.Errorf("second user Participants = %d, want %d", result.Participants, before.Participants+2)
	}
}

func TestJoinChallengeUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, "Divya")

	result, err := svc.JoinChallenge(user.ID, 9999)
	if err != nil {
		t.Fatalf("JoinChallenge: %v", err)
	}
	if result.Outcome != OutcomeNotFound {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomeNotFound)
	}
}

func TestEarnBadge(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, "Sanjay")

	badge, err := svc.BadgeRepo.FindByName("Water Warrior")
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.EarnBadge(user.ID, badge.ID)
	if err != nil {
		t.Fatalf("EarnBadge: %v", err)
	}
	if result.Outcome != OutcomeOK {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomeOK)
	}
	if result.Badge == nil || result.Badge.Name != "Water Warrior" {
		t.Fatalf("Badge = %v, want Water Warrior", result.Badge)
	}

	earned, err := svc.BadgeRepo.FindEarnedByUser(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(earned) != 1 {
		t.Fatalf("earned badges = %d, want 1", len(earned))
	}
	if earned[0].EarnedAt.IsZero() {
		t.Error("EarnedAt not set")
	}

	repeat, err := svc.EarnBadge(user.ID, badge.ID)
	if err != nil {
		t.Fatalf("repeat EarnBadge: %v", err)
	}
	if repeat.Outcome != OutcomeAlreadyDone {
		t.Fatalf("repeat Outcome = %q, want %q", repeat.Outcome, OutcomeAlreadyDone)
	}
}

func TestEarnBadgeUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newTestProgression(t, db)
	user := createTestUser(t, db, "Lata")

	result, err := svc.EarnBadge(user.ID, 9999)
	if err != nil {
		t.Fatalf("EarnBadge: %v", err)
	}
	if result.Outcome != OutcomeNotFound {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomeNotFound)
	}
}
