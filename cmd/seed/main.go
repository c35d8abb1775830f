package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"focusdo/internal/config"
	"focusdo/internal/db"
	"focusdo/internal/model"
	"focusdo/internal/repository"
	"focusdo/internal/service"
)

// Sample content for a fresh demo workspace.
var sampleTodos = []service.TodoCreate{
	{
		Title:           "Plan the week",
		Notes:           "Review calendar\nPick three priorities",
		Priority:        model.PriorityUrgent,
		EstimateMinutes: 30,
		Tags:            []string{"planning"},
	},
	{
		Title:           "Write project report",
		Notes:           "Draft first, polish later",
		Priority:        model.PriorityDefault,
		EstimateMinutes: 90,
		Tags:            []string{"work", "writing"},
	},
	{
		Title:           "Read one chapter",
		Priority:        model.PriorityLow,
		EstimateMinutes: 25,
		Tags:            []string{"reading"},
	},
}

func main() {
	email := flag.String("email", "demo@local", "email of the seeded user")
	password := flag.String("password", "secret123", "password of the seeded user")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Todo{},
		&model.Step{},
		&model.Pomodoro{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	todoRepo := repository.NewTodoRepository(gormDB)
	pomodoroRepo := repository.NewPomodoroRepository(gormDB)
	todoService := service.NewTodoService(todoRepo)

	user, err := ensureUser(ctx, userRepo, *email, *password)
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}
	log.Printf("Seed user ready: %s (id=%d)", user.Email, user.ID)

	created := 0
	for _, input := range sampleTodos {
		todo, err := todoService.Create(ctx, user.ID, input)
		if err != nil {
			log.Fatalf("Failed to create todo %q: %v", input.Title, err)
		}
		if _, err := todoService.AddStep(ctx, user.ID, todo.ID, "Get started", 0); err != nil {
			log.Fatalf("Failed to add step to %q: %v", input.Title, err)
		}
		if err := seedPomodoro(ctx, pomodoroRepo, user.ID, todo.ID); err != nil {
			log.Fatalf("Failed to seed pomodoro for %q: %v", input.Title, err)
		}
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Todos created: %d", created)
	log.Printf("  - Login with %s / %s", *email, *password)
}

// ensureUser creates the demo user if it does not exist yet, so reruns of
// the script are safe.
func ensureUser(ctx context.Context, repo repository.UserRepository, email, password string) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{Email: email, PasswordHash: string(hash)}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// seedPomodoro backfills one finished session from yesterday so the
// summary endpoint has data out of the box.
func seedPomodoro(ctx context.Context, repo repository.PomodoroRepository, ownerID, todoID uint) error {
	started := time.Now().UTC().Add(-24 * time.Hour)
	ended := started.Add(25 * time.Minute)
	return repo.Create(ctx, &model.Pomodoro{
		OwnerID:         ownerID,
		TodoID:          &todoID,
		StartedAt:       started,
		EndedAt:         &ended,
		DurationMinutes: 25,
		ActualMinutes:   25,
		Note:            "seeded session",
	})
}
