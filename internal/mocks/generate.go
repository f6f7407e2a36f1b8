// Package mocks provides mock implementations of the skipdispatch ports for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the interfaces in internal/core.
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	jobs := mocks.NewMockSkipJobRepository(ctrl)
//	jobs.EXPECT().GetByID(gomock.Any(), id).Return(job, nil)
package mocks

// SkipJobRepository: Create, GetByID, GetByToken, List, Transition, Update, Delete, Complete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=skip_job_repository_mock.go github.com/irishmetals/skipdispatch/internal/core SkipJobRepository

// CompletionRepository: GetByID, GetByJobID, UpdateWeight, ListForTracker
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=completion_repository_mock.go github.com/irishmetals/skipdispatch/internal/core CompletionRepository

// StatusHistoryRepository: Append, ListByJob
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=status_history_repository_mock.go github.com/irishmetals/skipdispatch/internal/core StatusHistoryRepository

// ReferenceRepository: GetCustomer, GetDriver, ListCustomers, ListActiveDrivers
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=reference_repository_mock.go github.com/irishmetals/skipdispatch/internal/core ReferenceRepository

// CompletionLock: Acquire, Release
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=completion_lock_mock.go github.com/irishmetals/skipdispatch/internal/core CompletionLock

// MessageSender: Send, Channel
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=message_sender_mock.go github.com/irishmetals/skipdispatch/internal/core MessageSender

// DocketMailer: SendDocket
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=docket_mailer_mock.go github.com/irishmetals/skipdispatch/internal/core DocketMailer

// DocketRenderer: Render
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=docket_renderer_mock.go github.com/irishmetals/skipdispatch/internal/core DocketRenderer

// JobEventPublisher: Publish
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_event_publisher_mock.go github.com/irishmetals/skipdispatch/internal/core JobEventPublisher
