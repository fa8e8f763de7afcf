package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   vault/ (.jot)
	//     inbox/
	//       2024/
	//   loose/ (jot.yaml)
	//   empty/
	baseDir := t.TempDir()
	vaultDir := filepath.Join(baseDir, "vault")
	inboxDir := filepath.Join(vaultDir, "inbox")
	nestedDir := filepath.Join(inboxDir, "2024")
	looseDir := filepath.Join(baseDir, "loose")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, dir := range []string{nestedDir, looseDir, emptyDir, filepath.Join(vaultDir, ".jot")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(looseDir, "jot.yaml"), []byte("adapter: fs\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{name: "Start at Root", startPath: vaultDir, wantRoot: vaultDir},
		{name: "Start in Subdir", startPath: inboxDir, wantRoot: vaultDir},
		{name: "Start Nested Deeply", startPath: nestedDir, wantRoot: vaultDir},
		{name: "Config File Marker", startPath: looseDir, wantRoot: looseDir},
		{name: "No Root Found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}
