package appctx

import (
	"context"
	"testing"

	"github.com/lurelight/lurelight/pkg/config"
)

func TestWithConfig(t *testing.T) {
	manager := config.NewManager()
	ctx := WithConfig(context.Background(), manager)

	retrieved, ok := Config(ctx)
	if !ok {
		t.Fatal("expected to retrieve config manager")
	}
	if retrieved != manager {
		t.Error("retrieved manager does not match stored manager")
	}
}

func TestConfigMissing(t *testing.T) {
	if _, ok := Config(context.Background()); ok {
		t.Error("expected no config manager on empty context")
	}
	if _, ok := Config(nil); ok { //nolint:staticcheck
		t.Error("expected no config manager on nil context")
	}
}
