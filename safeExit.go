package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var SafeExitInst *SafeExit

func InitSafeExit() {
	SafeExitInst = new(SafeExit)
	go SafeExitInst.ListenSignal()
}

// SafeExit runs the registered hooks once, either on the first termination
// signal or when the program finishes normally.
type SafeExit struct {
	funcs []func()
	mu    sync.Mutex
	done  bool
}

func (s *SafeExit) Register(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.funcs = append(s.funcs, f)
}

// Exit 执行所有退出任务 (只执行一次)
func (s *SafeExit) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.done = true
	for i := len(s.funcs) - 1; i >= 0; i-- {
		s.funcs[i]()
	}
}

// ListenSignal cancels the run on the first signal and exits hard on the
// second one.
func (s *SafeExit) ListenSignal() {
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	first := true
	for sig := range sigs {
		if !first {
			fmt.Fprintf(os.Stderr, "received signal %s again, exiting\n", sig)
			os.Exit(130)
		}
		first = false
		fmt.Fprintf(os.Stderr, "received signal %s, stopping task, please wait\n", sig)
		go s.Exit()
	}
}
