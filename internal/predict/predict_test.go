package predict_test

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lafter/internal/classifier"
	"lafter/internal/predict"
	"lafter/internal/services"
	"lafter/internal/testsupport"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "video_titles_unlabeled.csv")
	body := "title,normalized_title\nコント「先生」,x\n公式配信のお知らせ,y\n,z\n"
	if err := os.WriteFile(input, []byte(body), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cls, err := classifier.New(testsupport.SampleModel(t), nil, 0.5)
	if err != nil {
		t.Fatalf("classifier.New: %v", err)
	}

	out := predict.DefaultOutputs(filepath.Join(dir, "out"))
	counts, err := predict.Run(cls, input, out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if counts.Total != 3 || counts.Positive != 1 || counts.Negative != 2 || counts.Threshold != 0.5 {
		t.Fatalf("unexpected counts %+v", counts)
	}

	all := readCSV(t, out.All)
	if len(all) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(all))
	}
	if got := all[0]; len(got) != 4 || got[0] != "title" || got[2] != "probability" || got[3] != "label" {
		t.Fatalf("unexpected header %v", got)
	}
	if all[1][0] != "コント「先生」" || all[1][3] != "1" {
		t.Fatalf("unexpected first row %v", all[1])
	}
	// sigmoid(-0.6) for the empty title
	if all[3][1] != "" || all[3][2] != "0.354344" || all[3][3] != "0" {
		t.Fatalf("unexpected empty-title row %v", all[3])
	}

	if positives := readCSV(t, out.Positive); len(positives) != 2 {
		t.Fatalf("expected one positive row, got %v", positives)
	}
	if negatives := readCSV(t, out.Negative); len(negatives) != 3 {
		t.Fatalf("expected two negative rows, got %v", negatives)
	}
}

func TestRunRequiresTitleColumn(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(input, []byte("name\nx\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cls, err := classifier.New(testsupport.SampleModel(t), nil, 0.5)
	if err != nil {
		t.Fatalf("classifier.New: %v", err)
	}
	if _, err := predict.Run(cls, input, predict.DefaultOutputs(dir)); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
