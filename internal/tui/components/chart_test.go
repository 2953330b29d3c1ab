package components

import (
	"strings"
	"testing"
)

func TestSparkline(t *testing.T) {
	out := Sparkline([]int64{0, 5, 10}, 10)

	if !strings.Contains(out, "▁") {
		t.Error("zero value should render the lowest block")
	}
	if !strings.Contains(out, "█") {
		t.Error("max value should render the highest block")
	}
}

func TestSparkline_TruncatesToWidth(t *testing.T) {
	values := make([]int64, 100)
	for i := range values {
		values[i] = int64(i)
	}

	out := Sparkline(values, 10)

	count := 0
	for _, r := range out {
		for _, sr := range sparkRunes {
			if r == sr {
				count++
				break
			}
		}
	}
	if count != 10 {
		t.Errorf("rendered %d cells, want 10 (most recent kept)", count)
	}
}

func TestSparkline_Empty(t *testing.T) {
	if out := Sparkline(nil, 10); !strings.Contains(out, "no data") {
		t.Errorf("empty input: got %q", out)
	}
}

func TestSparkline_AllZero(t *testing.T) {
	out := Sparkline([]int64{0, 0, 0}, 10)
	if strings.Count(out, "▁") != 3 {
		t.Errorf("all-zero input should render flat baseline: %q", out)
	}
}
