package extract

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/slotparse/internal/model"
)

// maxLine bounds a single input line
const maxLine = 1024 * 1024

// ReadQueries reads one request per line. A line starting with '{' is a JSON
// request; any other non-empty line is a bare query. Lines starting with '#'
// are comments.
func ReadQueries(r io.Reader) ([]model.Request, error) {
	var requests []model.Request

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "{") {
			req, err := DecodeRequest([]byte(line))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			requests = append(requests, req)
			continue
		}
		requests = append(requests, model.Request{Query: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	return requests, nil
}

// ReadQueriesFromFile is ReadQueries on a file
func ReadQueriesFromFile(path string) ([]model.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadQueries(f)
}

// ReadHTMLQueries turns every sentence of an HTML document into a request
func ReadHTMLQueries(r io.Reader) ([]model.Request, error) {
	text, err := VisibleText(r)
	if err != nil {
		return nil, err
	}
	sentences := Sentences(text)
	requests := make([]model.Request, 0, len(sentences))
	for _, s := range sentences {
		requests = append(requests, model.Request{Query: s})
	}
	return requests, nil
}

// DecodeRequest decodes a JSON request, rejecting unknown fields
func DecodeRequest(data []byte) (model.Request, error) {
	var req model.Request
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return model.Request{}, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}
