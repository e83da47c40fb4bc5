package config_test

import (
	"testing"

	"github.com/go-uvm/uvm/config"
)

func TestDebugEnabled(t *testing.T) {
	cases := map[string]bool{
		"":        false,
		"0":       false,
		"false":   false,
		"FALSE":   false,
		"  ":      false,
		"1":       true,
		"true":    true,
		"TRUE":    true,
		"yes":     true,
		"anything": true,
	}
	for value, want := range cases {
		getenv := func(string) string { return value }
		if got := config.DebugEnabled(getenv); got != want {
			t.Errorf("DebugEnabled(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestDebugEnabled_OnlyReadsUVMDebug(t *testing.T) {
	getenv := func(key string) string {
		if key != "UVM_DEBUG" {
			t.Fatalf("unexpected env lookup: %s", key)
		}
		return "1"
	}
	if !config.DebugEnabled(getenv) {
		t.Error("expected DebugEnabled to read UVM_DEBUG")
	}
}
