// Package mocks provides mock implementations for testing the catalog console.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// backend requester and the flash notice store.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockRequester(ctrl)
//	api.EXPECT().Do(gomock.Any(), gomock.Any()).Return(&apiclient.Response{StatusCode: 200}, nil)
package mocks

// Generate mock for Requester interface from internal/service package.
// This creates MockRequester with the single method Do.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=requester_mock.go github.com/target/catalog-console/internal/service Requester

// Generate mock for FlashStore interface from internal/ports package.
// This creates MockFlashStore with methods Push and Pop.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=flash_store_mock.go github.com/target/catalog-console/internal/ports FlashStore
