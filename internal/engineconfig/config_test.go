package engineconfig

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultUsesGOMAXPROCSShards(t *testing.T) {
	cfg := Default()
	if cfg.ScanShards != runtime.GOMAXPROCS(0) {
		t.Fatalf("expected %d shards, got %d", runtime.GOMAXPROCS(0), cfg.ScanShards)
	}
	if cfg.GoTool != "go" {
		t.Fatalf("expected default go_tool %q, got %q", "go", cfg.GoTool)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	yaml := "scratch_dir: /tmp/imlabdb-scratch\nparallel_scan: true\nscan_shards: 4\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ScratchDir != "/tmp/imlabdb-scratch" {
		t.Fatalf("scratch_dir not applied: %+v", cfg)
	}
	if !cfg.ParallelScan {
		t.Fatal("parallel_scan not applied")
	}
	if cfg.ScanShards != 4 {
		t.Fatalf("scan_shards not applied: %d", cfg.ScanShards)
	}
}

func TestOverrideOnlyAppliesSetFields(t *testing.T) {
	base := Config{ScratchDir: "/base", GoTool: "go", ScanShards: 2}
	overridden := base.Override("", "", 0, true, false)
	if overridden.ScratchDir != "/base" || overridden.GoTool != "go" || overridden.ScanShards != 2 {
		t.Fatalf("unset fields should not be clobbered: %+v", overridden)
	}
	if !overridden.ParallelScan {
		t.Fatal("expected parallel_scan override to apply")
	}
}
