package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"productivity-hub/internal/config"
	"productivity-hub/internal/repository"
	"productivity-hub/internal/service/auth"
	"productivity-hub/internal/service/course"
	"productivity-hub/internal/service/email"
	"productivity-hub/internal/service/export"
	"productivity-hub/internal/service/note"
	"productivity-hub/internal/service/notification"
	"productivity-hub/internal/service/reminder"
	"productivity-hub/internal/service/skill"
	"productivity-hub/internal/service/task"
	"productivity-hub/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Skill        skill.Service
	Note         note.Service
	Task         task.Service
	Course       course.Service
	Notification notification.Service
	Email        email.Service
	Export       export.Service
	Reminder     *reminder.Checker
}

// NewServices wires every service. redis, minioClient and nc may be nil;
// the features behind them then degrade instead of failing.
func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, nc *nats.Conn, cfg *config.Config, log *zap.Logger) *Services {
	emailService := email.NewService(cfg, log.Named("email"))
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg, log.Named("auth"))
	skillService := skill.NewService(repos.User, redis)
	userService := user.NewService(repos.User, skillService, log.Named("user"))
	noteService := note.NewService(repos.Note)

	opts := []reminder.Option{reminder.WithPolicy(cfg.ReminderWindow, cfg.ReminderHorizon)}
	if redis != nil {
		opts = append(opts,
			reminder.WithLocker(reminder.NewRedisLocker(redis, cfg.ReminderLockTTL)),
			reminder.WithLockWait(cfg.ReminderLockTTL),
		)
	}
	checker := reminder.NewChecker(repos.Task, repos.Course, repos.Notification, log.Named("reminder"), opts...)

	var trigger reminder.Trigger
	if nc != nil {
		trigger = reminder.NewNATSTrigger(nc, log.Named("reminder"))
	} else {
		trigger = reminder.NewAsyncTrigger(checker, cfg.ReminderLockTTL)
	}

	taskService := task.NewService(repos.Task)
	taskService.SetReminderTrigger(trigger)
	courseService := course.NewService(repos.Course)
	courseService.SetReminderTrigger(trigger)

	notificationService := notification.NewService(repos.Notification, checker)

	var store export.ObjectStore
	if minioClient != nil {
		store = minioClient
	}
	exportService := export.NewService(repos, store, cfg.MinIOBucket, cfg.ExportURLTTL)

	return &Services{
		Auth:         authService,
		User:         userService,
		Skill:        skillService,
		Note:         noteService,
		Task:         taskService,
		Course:       courseService,
		Notification: notificationService,
		Email:        emailService,
		Export:       exportService,
		Reminder:     checker,
	}
}
