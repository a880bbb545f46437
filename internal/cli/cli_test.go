package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/envelopekit/envelope/pkg/geometry"
	"github.com/envelopekit/envelope/pkg/model"
)

func TestLoggerContext(t *testing.T) {
	logger := newLogger(os.Stderr, log.DebugLevel)
	ctx := withLogger(context.Background(), logger)
	if loggerFromContext(ctx) != logger {
		t.Error("loggerFromContext should return the attached logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to a default logger")
	}
}

func writeBoxModel(t *testing.T, dir string) string {
	t.Helper()
	room, err := model.NewRoomFromBox("box", 2, 2, 2, 0, geometry.Point3D{})
	if err != nil {
		t.Fatal(err)
	}
	m, err := model.NewModel("test_model", []*model.Room{room})
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "model.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadModel_FlagOverrides(t *testing.T) {
	path := writeBoxModel(t, t.TempDir())
	m, err := loadModel(path, "", 0.5, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if m.Tolerance() != 0.5 || m.AngleTolerance() != 2.0 {
		t.Errorf("tolerances = %g, %g", m.Tolerance(), m.AngleTolerance())
	}
}

func TestValidateCmd_CleanModel(t *testing.T) {
	path := writeBoxModel(t, t.TempDir())
	cmd := newValidateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "all checks passed") {
		t.Errorf("output = %s", out.String())
	}
}

func TestSolveAdjacencyCmd_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	a, err := model.NewRoomFromBox("solve_a", 1, 1, 1, 0, geometry.Point3D{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := model.NewRoomFromBox("solve_b", 1, 1, 1, 0, geometry.Point3D{X: 1})
	if err != nil {
		t.Fatal(err)
	}
	m, err := model.NewModel("pair_model", []*model.Room{a, b})
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "in.json")
	if err := os.WriteFile(in, data, 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.json")

	cmd := newEditCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"solve-adjacency", in, "-o", out})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("solve-adjacency failed: %v", err)
	}

	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	solved, err := model.LoadJSON(written)
	if err != nil {
		t.Fatal(err)
	}
	right := solved.RoomByIdentifier("solve_a").FaceByIdentifier("solve_a_Right")
	if right.BoundaryCondition().Name() != "Surface" {
		t.Errorf("solved face bc = %s", right.BoundaryCondition().Name())
	}
}

func TestShoeboxCmd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shoebox.json")
	cmd := newCreateCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"shoebox", "studio", "--width", "4", "--depth", "6", "--height", "3", "-o", out})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("shoebox failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	m, err := model.LoadJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Rooms()) != 1 {
		t.Fatalf("rooms = %d", len(m.Rooms()))
	}
	room := m.Rooms()[0]
	if room.Identifier() != "studio" || len(room.Faces()) != 6 {
		t.Errorf("room = %q with %d faces", room.Identifier(), len(room.Faces()))
	}
	if v := room.Volume(); v < 71.9 || v > 72.1 {
		t.Errorf("volume = %g, want 72", v)
	}
}
