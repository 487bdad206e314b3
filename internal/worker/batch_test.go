package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/slotparse/internal/model"
	"github.com/ppiankov/slotparse/internal/slot"
)

// echoProcessor answers with the query length, slower for earlier requests so
// completion order differs from input order
type echoProcessor struct{}

func (echoProcessor) Process(ctx context.Context, req model.Request) model.Response {
	if strings.HasPrefix(req.Query, "fail") {
		return model.Response{
			ID:    req.ID,
			Query: req.Query,
			Error: &model.ErrorInfo{Type: model.ErrorParseFailure, Message: "bad query"},
		}
	}
	time.Sleep(time.Duration(10-len(req.Query)) * 2 * time.Millisecond)
	return model.Response{
		ID:     req.ID,
		Query:  req.Query,
		Values: []slot.Value{slot.NumberValue{Value: float64(len(req.Query))}},
	}
}

func TestBatchProcessor_PreservesInputOrder(t *testing.T) {
	processor := NewBatchProcessor(echoProcessor{}, 4, 0, 0)

	var requests []model.Request
	for _, q := range []string{"a", "bb", "ccc", "dddd", "eeeee", "ffffff"} {
		requests = append(requests, model.Request{ID: q, Query: q})
	}

	responses := processor.Process(context.Background(), requests)
	if len(responses) != len(requests) {
		t.Fatalf("expected %d responses, got %d", len(requests), len(responses))
	}
	for i, resp := range responses {
		if resp.ID != requests[i].ID {
			t.Errorf("position %d: expected %s, got %s", i, requests[i].ID, resp.ID)
		}
		if resp.Error != nil {
			t.Errorf("unexpected error: %v", resp.Error)
		}
	}
}

func TestBatchProcessor_Errors(t *testing.T) {
	processor := NewBatchProcessor(echoProcessor{}, 2, 0, 0)

	responses := processor.Process(context.Background(), []model.Request{{Query: "ok"}, {Query: "fail me"}})
	if responses[0].Error != nil {
		t.Errorf("unexpected error: %v", responses[0].Error)
	}
	if responses[1].Error == nil || responses[1].Error.Type != model.ErrorParseFailure {
		t.Errorf("expected parse failure, got %+v", responses[1].Error)
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	processor := NewBatchProcessor(echoProcessor{}, 2, 0, 0)
	if responses := processor.Process(context.Background(), nil); len(responses) != 0 {
		t.Errorf("expected 0 responses, got %d", len(responses))
	}
}

func TestBatchProcessor_Canceled(t *testing.T) {
	processor := NewBatchProcessor(echoProcessor{}, 1, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	requests := []model.Request{{Query: "a"}, {Query: "b"}, {Query: "c"}}
	responses := processor.Process(ctx, requests)
	if len(responses) != len(requests) {
		t.Fatalf("expected %d responses, got %d", len(requests), len(responses))
	}
	for i, resp := range responses {
		if resp.Query != requests[i].Query {
			t.Errorf("position %d: expected %q, got %q", i, requests[i].Query, resp.Query)
		}
		if resp.Error == nil {
			continue
		}
		if resp.Error.Type != model.ErrorCanceled {
			t.Errorf("expected canceled, got %s", resp.Error.Type)
		}
	}
}

func TestBatchProcessor_RateLimited(t *testing.T) {
	processor := NewBatchProcessor(echoProcessor{}, 4, 1000, 1)
	requests := []model.Request{{Lang: "en", Query: "a"}, {Lang: "fr", Query: "b"}}

	for _, resp := range processor.Process(context.Background(), requests) {
		if resp.Error != nil {
			t.Errorf("unexpected error: %v", resp.Error)
		}
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.txt")
	content := "# queries\n42\n\n{\"id\":\"x\",\"query\":\"fifty\"}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(echoProcessor{}, 2, 0, 0)
	responses, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	if responses[1].ID != "x" {
		t.Errorf("expected id x, got %q", responses[1].ID)
	}

	if _, err := processor.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing file")
	}
}
