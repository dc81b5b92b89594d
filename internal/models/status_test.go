package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		inputs []string
		want   Status
	}{
		{[]string{"todo", "Todo", "TODO", "to-do"}, StatusTodo},
		{[]string{"in_progress", "In Progress", "progress", "in-progress", "inprogress"}, StatusInProgress},
		{[]string{"done", "Done", " done "}, StatusDone},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			is := is.New(t)
			for _, input := range tt.inputs {
				got, err := ParseStatus(input)
				is.NoErr(err)
				is.Equal(got, tt.want)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		is := is.New(t)
		for _, input := range []string{"", "blocked", "finished?"} {
			_, err := ParseStatus(input)
			is.True(errors.Is(err, ErrInvalidStatus))
		}
	})
}

func TestStatus_Next(t *testing.T) {
	is := is.New(t)
	is.Equal(StatusTodo.Next(), StatusInProgress)
	is.Equal(StatusInProgress.Next(), StatusDone)
	is.Equal(StatusDone.Next(), StatusTodo)
}

func TestStatus_JSON(t *testing.T) {
	is := is.New(t)

	data, err := json.Marshal(StatusInProgress)
	is.NoErr(err)
	is.Equal(string(data), `"in_progress"`)

	var s Status
	is.NoErr(json.Unmarshal([]byte(`"progress"`), &s)) // older spelling still loads
	is.Equal(s, StatusInProgress)

	is.True(json.Unmarshal([]byte(`"paused"`), &s) != nil)
}

func TestIDGenerator_Reserve(t *testing.T) {
	is := is.New(t)
	g := NewIDGeneratorWithSource(sequence("x"))
	g.Reserve("x1")
	g.Reserve("x2")

	is.Equal(g.New(), "x3")
	is.Equal(g.New(), "x4")
}

func TestIDGenerator_UUIDs(t *testing.T) {
	is := is.New(t)
	g := NewIDGenerator()

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := g.New()
		is.True(!seen[id])
		seen[id] = true
	}
}
