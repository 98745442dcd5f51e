//go:build !ebiten

package gui

import (
	"errors"
	"testing"
)

func TestRunWithoutTag(t *testing.T) {
	if _, err := Run(Options{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Run() error = %v, expected ErrUnavailable", err)
	}
}
