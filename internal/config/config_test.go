package config

import "testing"

func TestLoad_ArtifactDefaults(t *testing.T) {
	// getEnv treats empty as unset, so this pins the defaults regardless of
	// the host environment.
	t.Setenv("ORG_NAME", "")
	t.Setenv("IMAGE_FETCH_TOKEN", "")
	t.Setenv("FRONTEND_URL", "")

	cfg := Load()

	if cfg.Artifact.FrontendURL == "" {
		t.Fatal("FrontendURL default missing")
	}
	if cfg.Artifact.OrgName != "Plogging Ethiopia" {
		t.Fatalf("OrgName = %q", cfg.Artifact.OrgName)
	}
	if cfg.Artifact.ImageToken != "" {
		t.Fatalf("ImageToken default = %q, want empty", cfg.Artifact.ImageToken)
	}
}

func TestLoad_ArtifactFromEnv(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://app.example.org/")
	t.Setenv("IMAGE_BASE_URL", "https://api.example.org/")
	t.Setenv("IMAGE_FETCH_TOKEN", "service-token")
	t.Setenv("FONT_DIRS", "/fonts/a, /fonts/b ,")

	cfg := Load()

	if cfg.Artifact.FrontendURL != "https://app.example.org" {
		t.Fatalf("FrontendURL = %q, want trailing slash trimmed", cfg.Artifact.FrontendURL)
	}
	if cfg.Artifact.ImageBaseURL != "https://api.example.org" {
		t.Fatalf("ImageBaseURL = %q", cfg.Artifact.ImageBaseURL)
	}
	if cfg.Artifact.ImageToken != "service-token" {
		t.Fatalf("ImageToken = %q", cfg.Artifact.ImageToken)
	}
	if len(cfg.Artifact.FontDirs) != 2 || cfg.Artifact.FontDirs[0] != "/fonts/a" || cfg.Artifact.FontDirs[1] != "/fonts/b" {
		t.Fatalf("FontDirs = %v", cfg.Artifact.FontDirs)
	}
}
