// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания сигналов SIGINT и SIGTERM либо завершения основной работы.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM,
// до закрытия done или до отмены ctx, затем последовательно выполняет хуки
// в рамках заданного timeout. Хуки, не успевшие начаться до истечения timeout, пропускаются.
func Wait(ctx context.Context, timeout time.Duration, done <-chan struct{}, hooks ...func(context.Context) error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-done:
	case <-ctx.Done():
	}

	RunHooks(context.WithoutCancel(ctx), timeout, hooks...)
}

// RunHooks выполняет хуки по порядку, пока не истечет timeout.
func RunHooks(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for _, hook := range hooks {
		if ctx.Err() != nil {
			return
		}
		_ = hook(ctx)
	}
}
