package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-signal/pkg/marketdata/provider Provider
//go:generate mockgen -destination=./mock_source.go -package=mocks github.com/rxtech-lab/argo-signal/pkg/marketdata Source
//go:generate mockgen -destination=./mock_notifier.go -package=mocks github.com/rxtech-lab/argo-signal/internal/notification Notifier
