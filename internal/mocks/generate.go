// Package mocks provides mock implementations for testing the digest lifecycle.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the ports interfaces. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockJobs := mocks.NewMockJobStore(ctrl)
//	mockJobs.EXPECT().Get(gomock.Any(), "user-1").Return(job, nil)
package mocks

// Generate mocks for the digest lifecycle ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/pagekeep/digest-api/internal/ports JobStore,JobEnqueuer,FeatureSource,UsageLedger
